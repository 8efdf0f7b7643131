package domain

type Capability string

const (
	TextToVideo    Capability = "text_to_video"
	ImageToVideo   Capability = "image_to_video"
	VideoExtension Capability = "video_extension"
	TextToImage    Capability = "text_to_image"
)

type Variant string

const (
	VariantFast Variant = "fast"
	VariantHQ   Variant = "hq"
)

type PersonPolicy string

const (
	PersonPolicyDontAllow  PersonPolicy = "dont_allow"
	PersonPolicyAllowAdult PersonPolicy = "allow_adult"
	PersonPolicyAllowAll   PersonPolicy = "allow_all"
)

type GenerationOptions struct {
	AspectRatio     string
	PersonPolicy    PersonPolicy
	DurationSeconds int
	EnhancePrompt   bool
}

type GenerationRequest struct {
	Capability     Capability
	Prompt         string
	NegativePrompt string
	SourcePath     string
	SourceLocator  string
	Options        GenerationOptions
}

type JobStatus string

const (
	JobPending JobStatus = "pending"
	JobDone    JobStatus = "done"
	JobFailed  JobStatus = "failed"
)

func (s JobStatus) IsTerminal() bool {
	return s == JobDone || s == JobFailed
}

// MediaItem is one entry of a finished job's output content collection.
// Exactly one of URI and InlineData is populated.
type MediaItem struct {
	MimeType   string
	URI        string
	InlineData string
}

func (m MediaItem) HasContent() bool {
	return m.URI != "" || m.InlineData != ""
}

// GenerationJob is the opaque handle of one remote long-running operation.
// A job is owned by a single poll loop and never shared across requests.
type GenerationJob struct {
	Operation string
	Status    JobStatus
	Error     string
	Media     []MediaItem
}

func (j *GenerationJob) FirstMedia() (MediaItem, bool) {
	for _, item := range j.Media {
		if item.HasContent() {
			return item, true
		}
	}
	return MediaItem{}, false
}

// GenerationResult is the universal connector output: either a success
// payload or a failure description, never both.
type GenerationResult struct {
	Success   bool
	LocalPath string
	Locator   string
	TraceID   string
	Error     string
}

func SuccessResult(localPath, locator, traceID string) GenerationResult {
	return GenerationResult{
		Success:   true,
		LocalPath: localPath,
		Locator:   locator,
		TraceID:   traceID,
	}
}

func FailureResult(err error) GenerationResult {
	return GenerationResult{Error: err.Error()}
}

type ToolCall struct {
	Name   string
	Output interface{}
}

type ToolInvocationRecord struct {
	Text  string
	Calls []ToolCall
}

type ExtractedArtifact struct {
	Path     string
	Strategy string
}

package domain

type PipelineState string

const (
	ImagePending   PipelineState = "image_pending"
	AudioPending   PipelineState = "audio_pending"
	MuxingPending  PipelineState = "muxing_pending"
	PublishPending PipelineState = "publish_pending"
	RunComplete    PipelineState = "complete"
	RunFailed      PipelineState = "failed"
)

type StageName string

const (
	StageImage   StageName = "image"
	StageAudio   StageName = "audio"
	StageMux     StageName = "mux"
	StagePublish StageName = "publish"
)

type StageOutcome struct {
	Stage  StageName
	Result GenerationResult
}

// PipelineRun collects per-stage outcomes for one composite request. It is
// mutated stage by stage by the orchestrator and finalized once a stage fails
// or all stages complete.
type PipelineRun struct {
	ID     string
	UserID string
	State  PipelineState
	Stages []StageOutcome
	Error  string
}

func NewPipelineRun(id, userID string) *PipelineRun {
	return &PipelineRun{
		ID:     id,
		UserID: userID,
		State:  ImagePending,
		Stages: make([]StageOutcome, 0, 4),
	}
}

func (r *PipelineRun) Record(stage StageName, result GenerationResult) {
	r.Stages = append(r.Stages, StageOutcome{Stage: stage, Result: result})
}

func (r *PipelineRun) Fail(reason string) {
	r.State = RunFailed
	r.Error = reason
}

func (r *PipelineRun) Complete() {
	r.State = RunComplete
}

func (r *PipelineRun) Finalized() bool {
	return r.State == RunComplete || r.State == RunFailed
}

func (r *PipelineRun) Outcome(stage StageName) (StageOutcome, bool) {
	for _, outcome := range r.Stages {
		if outcome.Stage == stage {
			return outcome, true
		}
	}
	return StageOutcome{}, false
}

package outbound

import (
	"context"
	"media-orchestrator/domain"
)

type SubmitVideoJobRequest struct {
	Model           string
	Prompt          string
	NegativePrompt  string
	ImageBytes      []byte
	ImageMimeType   string
	VideoURI        string
	AspectRatio     string
	PersonPolicy    string
	DurationSeconds int
	EnhancePrompt   bool
}

// VideoJobPort is the boundary to the external video generation service.
// Submit registers a long-running operation; Poll reads its current status.
type VideoJobPort interface {
	Submit(ctx context.Context, req SubmitVideoJobRequest) (*domain.GenerationJob, error)
	Poll(ctx context.Context, operation string) (*domain.GenerationJob, error)
}

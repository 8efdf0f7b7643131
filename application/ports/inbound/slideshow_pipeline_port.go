package inbound

import (
	"context"
	"media-orchestrator/domain"
)

type StartSlideshowParams struct {
	RunID       string
	UserID      string
	ImagePrompt string
	Narration   string
	Publish     bool
}

type SlideshowPipelinePort interface {
	Run(ctx context.Context, params StartSlideshowParams) *domain.PipelineRun
}

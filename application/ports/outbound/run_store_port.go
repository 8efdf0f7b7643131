package outbound

import (
	"context"
	"media-orchestrator/domain"
)

type RunStorePort interface {
	Save(ctx context.Context, run *domain.PipelineRun) error
}

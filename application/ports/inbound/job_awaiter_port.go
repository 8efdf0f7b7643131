package inbound

import (
	"context"
	"media-orchestrator/domain"
)

type JobAwaiterPort interface {
	Await(ctx context.Context, operation string) (*domain.GenerationJob, error)
}

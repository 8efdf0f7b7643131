package inbound

import (
	"context"
	"media-orchestrator/domain"
)

// GeneratorPort is the connector contract shared by every generation
// capability. Failures are folded into the result, never raised.
type GeneratorPort interface {
	Generate(ctx context.Context, req domain.GenerationRequest) domain.GenerationResult
}

package inbound

import (
	"context"
	"media-orchestrator/domain"
)

type SpeechGeneratorPort interface {
	Narrate(ctx context.Context, text string) domain.GenerationResult
}

package inbound

import (
	"media-orchestrator/domain"
)

type ArtifactExtractorPort interface {
	Extract(record *domain.ToolInvocationRecord, extension string) (domain.ExtractedArtifact, error)
}

package outbound

import (
	"context"
	"media-orchestrator/domain"
)

// ArtifactFetcherPort materializes remote or inline artifact references.
// FetchToFile streams the response body straight to disk; video payloads are
// too large to buffer in memory.
type ArtifactFetcherPort interface {
	Fetch(ctx context.Context, item domain.MediaItem) ([]byte, error)
	FetchToFile(ctx context.Context, uri string, destPath string) error
}

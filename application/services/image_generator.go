package services

import (
	"context"
	"fmt"
	"media-orchestrator/application/ports/inbound"
	"media-orchestrator/application/ports/outbound"
	"media-orchestrator/domain"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type imageGenerator struct {
	client    outbound.ImageServicePort
	logger    outbound.LoggerPort
	outputDir string

	mu        sync.Mutex
	lastStamp int64
}

func NewImageGenerator(client outbound.ImageServicePort, outputDir string, logger outbound.LoggerPort) inbound.GeneratorPort {
	return &imageGenerator{
		client:    client,
		logger:    logger,
		outputDir: outputDir,
	}
}

func (g *imageGenerator) Generate(ctx context.Context, req domain.GenerationRequest) domain.GenerationResult {
	if req.Capability != domain.TextToImage {
		return domain.FailureResult(domain.InvalidRequest("capability %s is not an image capability", req.Capability))
	}
	if req.Prompt == "" {
		return domain.FailureResult(domain.InvalidRequest("prompt is required"))
	}

	imageBytes, err := g.client.Generate(ctx, req.Prompt)
	if err != nil {
		return domain.FailureResult(err)
	}

	localPath := filepath.Join(g.outputDir, g.outputFileName())
	if err := os.WriteFile(localPath, imageBytes, 0o644); err != nil {
		return domain.FailureResult(domain.DownloadFailed("failed to write image to %s: %v", localPath, err))
	}

	g.logger.InfoWithFields("Generated image artifact", map[string]interface{}{
		"path": localPath,
	})

	return domain.SuccessResult(localPath, "", "")
}

func (g *imageGenerator) outputFileName() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	stamp := time.Now().UnixMilli()
	if stamp <= g.lastStamp {
		stamp = g.lastStamp + 1
	}
	g.lastStamp = stamp

	return fmt.Sprintf("t2i_image_%d.png", stamp)
}

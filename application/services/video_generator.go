package services

import (
	"context"
	"fmt"
	"media-orchestrator/application/ports/inbound"
	"media-orchestrator/application/ports/outbound"
	"media-orchestrator/domain"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var capabilitySuffix = map[domain.Capability]string{
	domain.TextToVideo:    "t2v",
	domain.ImageToVideo:   "i2v",
	domain.VideoExtension: "vext",
}

type videoGenerator struct {
	variant   domain.Variant
	model     string
	client    outbound.VideoJobPort
	poller    inbound.JobAwaiterPort
	fetcher   outbound.ArtifactFetcherPort
	logger    outbound.LoggerPort
	outputDir string

	mu        sync.Mutex
	lastStamp int64
}

func NewVideoGenerator(variant domain.Variant, model string, client outbound.VideoJobPort, poller inbound.JobAwaiterPort,
	fetcher outbound.ArtifactFetcherPort, outputDir string, logger outbound.LoggerPort) inbound.GeneratorPort {
	return &videoGenerator{
		variant:   variant,
		model:     model,
		client:    client,
		poller:    poller,
		fetcher:   fetcher,
		logger:    logger,
		outputDir: outputDir,
	}
}

func (g *videoGenerator) Generate(ctx context.Context, req domain.GenerationRequest) domain.GenerationResult {
	submitReq, err := g.buildSubmitRequest(req)
	if err != nil {
		return domain.FailureResult(err)
	}

	job, err := g.client.Submit(ctx, *submitReq)
	if err != nil {
		g.logger.ErrorWithFields(err, "Failed to submit generation job", map[string]interface{}{
			"capability": string(req.Capability),
			"variant":    string(g.variant),
		})
		return domain.FailureResult(err)
	}

	job, err = g.poller.Await(ctx, job.Operation)
	if err != nil {
		return domain.FailureResult(err)
	}

	media, ok := job.FirstMedia()
	if !ok {
		return domain.FailureResult(domain.ArtifactNotFound("artifact not found in output of %s", job.Operation))
	}

	localPath := filepath.Join(g.outputDir, g.outputFileName(req.Capability))
	if err := g.materialize(ctx, media, localPath); err != nil {
		return domain.FailureResult(err)
	}

	g.logger.InfoWithFields("Generated video artifact", map[string]interface{}{
		"path":      localPath,
		"operation": job.Operation,
	})

	return domain.SuccessResult(localPath, media.URI, job.Operation)
}

func (g *videoGenerator) buildSubmitRequest(req domain.GenerationRequest) (*outbound.SubmitVideoJobRequest, error) {
	if req.Prompt == "" {
		return nil, domain.InvalidRequest("prompt is required")
	}
	if req.Options.DurationSeconds != 0 && (req.Options.DurationSeconds < 5 || req.Options.DurationSeconds > 8) {
		return nil, domain.InvalidRequest("durationSeconds must be between 5 and 8")
	}

	submitReq := &outbound.SubmitVideoJobRequest{
		Model:           g.model,
		Prompt:          req.Prompt,
		NegativePrompt:  req.NegativePrompt,
		AspectRatio:     req.Options.AspectRatio,
		PersonPolicy:    string(req.Options.PersonPolicy),
		DurationSeconds: req.Options.DurationSeconds,
		EnhancePrompt:   req.Options.EnhancePrompt,
	}

	switch req.Capability {
	case domain.TextToVideo:
	case domain.ImageToVideo:
		if req.SourcePath == "" {
			return nil, domain.InvalidRequest("image path is required")
		}
		imageBytes, err := os.ReadFile(req.SourcePath)
		if err != nil {
			return nil, domain.InputNotFound("Image file not found: %s", req.SourcePath)
		}
		submitReq.ImageBytes = imageBytes
		submitReq.ImageMimeType = mimeTypeForImage(req.SourcePath)
	case domain.VideoExtension:
		if req.SourceLocator == "" {
			return nil, domain.InvalidRequest("video locator is required")
		}
		submitReq.VideoURI = req.SourceLocator
	default:
		return nil, domain.InvalidRequest("capability %s is not a video capability", req.Capability)
	}

	return submitReq, nil
}

func (g *videoGenerator) materialize(ctx context.Context, media domain.MediaItem, localPath string) error {
	if media.URI != "" {
		return g.fetcher.FetchToFile(ctx, media.URI, localPath)
	}

	payload, err := g.fetcher.Fetch(ctx, media)
	if err != nil {
		return err
	}
	if err := os.WriteFile(localPath, payload, 0o644); err != nil {
		return domain.DownloadFailed("failed to write artifact to %s: %v", localPath, err)
	}
	return nil
}

// outputFileName keeps the timestamp suffix strictly increasing so two
// sequential generations never collide on a file name.
func (g *videoGenerator) outputFileName(capability domain.Capability) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	stamp := time.Now().UnixMilli()
	if stamp <= g.lastStamp {
		stamp = g.lastStamp + 1
	}
	g.lastStamp = stamp

	return fmt.Sprintf("%s_%s_%d.mp4", capabilitySuffix[capability], g.variant, stamp)
}

func mimeTypeForImage(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}

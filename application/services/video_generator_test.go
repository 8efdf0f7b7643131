package services

import (
	"context"
	"media-orchestrator/application/ports/outbound"
	"media-orchestrator/domain"
	"media-orchestrator/infrastructure/adapters"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

type capturingVideoJobClient struct {
	submitCalls int
	lastRequest outbound.SubmitVideoJobRequest
}

func (c *capturingVideoJobClient) Submit(_ context.Context, req outbound.SubmitVideoJobRequest) (*domain.GenerationJob, error) {
	c.submitCalls++
	c.lastRequest = req
	return &domain.GenerationJob{Operation: "operations/test-1", Status: domain.JobPending}, nil
}

func (c *capturingVideoJobClient) Poll(_ context.Context, operation string) (*domain.GenerationJob, error) {
	return &domain.GenerationJob{Operation: operation, Status: domain.JobPending}, nil
}

type stubAwaiter struct {
	job *domain.GenerationJob
	err error
}

func (a *stubAwaiter) Await(_ context.Context, operation string) (*domain.GenerationJob, error) {
	if a.job != nil {
		a.job.Operation = operation
	}
	return a.job, a.err
}

type fileWritingFetcher struct {
	content []byte
}

func (f *fileWritingFetcher) Fetch(_ context.Context, item domain.MediaItem) ([]byte, error) {
	return f.content, nil
}

func (f *fileWritingFetcher) FetchToFile(_ context.Context, _ string, destPath string) error {
	return os.WriteFile(destPath, f.content, 0o644)
}

func TestVideoGenerator_GenerateSuccess(t *testing.T) {
	outputDir := t.TempDir()
	client := &capturingVideoJobClient{}
	awaiter := &stubAwaiter{job: &domain.GenerationJob{
		Status: domain.JobDone,
		Media:  []domain.MediaItem{{MimeType: "video/mp4", URI: "https://example.com/generated/v.mp4"}},
	}}
	fetcher := &fileWritingFetcher{content: []byte("video-bytes")}

	generator := NewVideoGenerator(domain.VariantFast, "video-fast-001", client, awaiter, fetcher,
		outputDir, adapters.NewZerologWrapper())

	result := generator.Generate(context.Background(), domain.GenerationRequest{
		Capability: domain.TextToVideo,
		Prompt:     "a calm lake at dawn",
		Options:    domain.GenerationOptions{AspectRatio: "16:9"},
	})

	require.True(t, result.Success)
	require.Empty(t, result.Error)
	require.Regexp(t, regexp.MustCompile(`t2v_fast_\d+\.mp4$`), result.LocalPath)
	require.Equal(t, "https://example.com/generated/v.mp4", result.Locator)
	require.Equal(t, "operations/test-1", result.TraceID)

	info, err := os.Stat(result.LocalPath)
	require.NoError(t, err)
	require.NotZero(t, info.Size())

	require.Equal(t, "a calm lake at dawn", client.lastRequest.Prompt)
	require.Equal(t, "16:9", client.lastRequest.AspectRatio)
}

func TestVideoGenerator_RemoteJobFailure(t *testing.T) {
	outputDir := t.TempDir()
	client := &capturingVideoJobClient{}
	awaiter := &stubAwaiter{err: domain.RemoteJobFailed("remote job failed: safety filter")}

	generator := NewVideoGenerator(domain.VariantFast, "video-fast-001", client, awaiter,
		&fileWritingFetcher{}, outputDir, adapters.NewZerologWrapper())

	result := generator.Generate(context.Background(), domain.GenerationRequest{
		Capability: domain.TextToVideo,
		Prompt:     "anything",
	})

	require.False(t, result.Success)
	require.Contains(t, result.Error, "safety filter")

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	require.Empty(t, entries, "no output file should be written on failure")
}

func TestVideoGenerator_MissingSourceImageSkipsRemote(t *testing.T) {
	outputDir := t.TempDir()
	client := &capturingVideoJobClient{}
	generator := NewVideoGenerator(domain.VariantFast, "video-fast-001", client,
		&stubAwaiter{}, &fileWritingFetcher{}, outputDir, adapters.NewZerologWrapper())

	missing := filepath.Join(outputDir, "nope.png")
	result := generator.Generate(context.Background(), domain.GenerationRequest{
		Capability: domain.ImageToVideo,
		Prompt:     "animate this",
		SourcePath: missing,
	})

	require.False(t, result.Success)
	require.Contains(t, result.Error, "Image file not found")
	require.Zero(t, client.submitCalls, "no job should be created when the source is missing")
}

func TestVideoGenerator_ArtifactNotFound(t *testing.T) {
	generator := NewVideoGenerator(domain.VariantHQ, "video-hq-001", &capturingVideoJobClient{},
		&stubAwaiter{job: &domain.GenerationJob{Status: domain.JobDone}}, &fileWritingFetcher{},
		t.TempDir(), adapters.NewZerologWrapper())

	result := generator.Generate(context.Background(), domain.GenerationRequest{
		Capability: domain.TextToVideo,
		Prompt:     "empty output",
	})

	require.False(t, result.Success)
	require.Contains(t, result.Error, "artifact not found in output")
}

func TestVideoGenerator_DurationOutOfRange(t *testing.T) {
	client := &capturingVideoJobClient{}
	generator := NewVideoGenerator(domain.VariantHQ, "video-hq-001", client, &stubAwaiter{},
		&fileWritingFetcher{}, t.TempDir(), adapters.NewZerologWrapper())

	result := generator.Generate(context.Background(), domain.GenerationRequest{
		Capability: domain.TextToVideo,
		Prompt:     "too long",
		Options:    domain.GenerationOptions{DurationSeconds: 12},
	})

	require.False(t, result.Success)
	require.Contains(t, result.Error, "durationSeconds must be between 5 and 8")
	require.Zero(t, client.submitCalls)
}

func TestVideoGenerator_SequentialNamesNeverCollide(t *testing.T) {
	outputDir := t.TempDir()
	awaiter := &stubAwaiter{job: &domain.GenerationJob{
		Status: domain.JobDone,
		Media:  []domain.MediaItem{{URI: "https://example.com/v.mp4"}},
	}}
	generator := NewVideoGenerator(domain.VariantFast, "video-fast-001", &capturingVideoJobClient{},
		awaiter, &fileWritingFetcher{content: []byte("x")}, outputDir, adapters.NewZerologWrapper())

	first := generator.Generate(context.Background(), domain.GenerationRequest{
		Capability: domain.TextToVideo, Prompt: "one",
	})
	second := generator.Generate(context.Background(), domain.GenerationRequest{
		Capability: domain.TextToVideo, Prompt: "two",
	})

	require.True(t, first.Success)
	require.True(t, second.Success)
	require.NotEqual(t, first.LocalPath, second.LocalPath)
}

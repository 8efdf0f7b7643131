package services

import (
	"context"
	"media-orchestrator/application/ports/inbound"
	"media-orchestrator/application/ports/outbound"
	"media-orchestrator/domain"
	"media-orchestrator/infrastructure/adapters"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	result domain.GenerationResult
	calls  int
}

func (g *stubGenerator) Generate(_ context.Context, _ domain.GenerationRequest) domain.GenerationResult {
	g.calls++
	return g.result
}

type stubSpeech struct {
	result domain.GenerationResult
	calls  int
}

func (s *stubSpeech) Narrate(_ context.Context, _ string) domain.GenerationResult {
	s.calls++
	return s.result
}

type stubMuxer struct {
	path  string
	err   error
	calls int
}

func (m *stubMuxer) Combine(_ string, _ string) (string, error) {
	m.calls++
	return m.path, m.err
}

type stubPublisher struct {
	calls int
	key   string
}

func (p *stubPublisher) Publish(_ context.Context, req outbound.PublishVideoRequest) (*outbound.PublishVideoResponse, error) {
	p.calls++
	return &outbound.PublishVideoResponse{VideoKey: p.key, StoreRegion: "eu-west-1"}, nil
}

type recordingRunStore struct {
	saves []domain.PipelineRun
}

func (s *recordingRunStore) Save(_ context.Context, run *domain.PipelineRun) error {
	s.saves = append(s.saves, *run)
	return nil
}

func newTestPipeline(image *stubGenerator, speech *stubSpeech, muxer *stubMuxer,
	publisher *stubPublisher, store *recordingRunStore) inbound.SlideshowPipelinePort {
	return NewSlideshowPipeline(image, speech, muxer, publisher, store, adapters.NewZerologWrapper())
}

func TestSlideshowPipeline_AudioFailureShortCircuits(t *testing.T) {
	image := &stubGenerator{result: domain.SuccessResult("/out/t2i_image_1.png", "", "")}
	speech := &stubSpeech{result: domain.FailureResult(domain.ExtractionFailed("could not extract artifact from tool output"))}
	muxer := &stubMuxer{path: "/out/combined.mp4"}
	publisher := &stubPublisher{key: "user/u/run/r/combined.mp4"}
	store := &recordingRunStore{}

	run := newTestPipeline(image, speech, muxer, publisher, store).Run(context.Background(), inbound.StartSlideshowParams{
		RunID:       "run-1",
		UserID:      "user-1",
		ImagePrompt: "a lighthouse",
		Narration:   "storm warning",
		Publish:     true,
	})

	require.Equal(t, domain.RunFailed, run.State)
	require.Contains(t, run.Error, "could not extract artifact")

	imageOutcome, ok := run.Outcome(domain.StageImage)
	require.True(t, ok)
	require.True(t, imageOutcome.Result.Success)
	require.Equal(t, "/out/t2i_image_1.png", imageOutcome.Result.LocalPath)

	audioOutcome, ok := run.Outcome(domain.StageAudio)
	require.True(t, ok)
	require.False(t, audioOutcome.Result.Success)

	_, muxRecorded := run.Outcome(domain.StageMux)
	require.False(t, muxRecorded, "mux stage must not be attempted after audio failure")
	_, publishRecorded := run.Outcome(domain.StagePublish)
	require.False(t, publishRecorded, "publish stage must not be attempted after audio failure")
	require.Zero(t, muxer.calls)
	require.Zero(t, publisher.calls)
}

func TestSlideshowPipeline_CompleteWithoutPublish(t *testing.T) {
	image := &stubGenerator{result: domain.SuccessResult("/out/frame.png", "", "")}
	speech := &stubSpeech{result: domain.SuccessResult("/out/narration.mp3", "", "")}
	muxer := &stubMuxer{path: "/out/combined.mp4"}
	publisher := &stubPublisher{}
	store := &recordingRunStore{}

	run := newTestPipeline(image, speech, muxer, publisher, store).Run(context.Background(), inbound.StartSlideshowParams{
		RunID:       "run-2",
		UserID:      "user-1",
		ImagePrompt: "a lighthouse",
		Narration:   "clear skies",
	})

	require.Equal(t, domain.RunComplete, run.State)
	require.Len(t, run.Stages, 3)
	require.Zero(t, publisher.calls, "publish must be skipped entirely when not requested")

	muxOutcome, ok := run.Outcome(domain.StageMux)
	require.True(t, ok)
	require.Equal(t, "/out/combined.mp4", muxOutcome.Result.LocalPath)
}

func TestSlideshowPipeline_PublishRecordedWithLocator(t *testing.T) {
	image := &stubGenerator{result: domain.SuccessResult("/out/frame.png", "", "")}
	speech := &stubSpeech{result: domain.SuccessResult("/out/narration.mp3", "", "")}
	muxer := &stubMuxer{path: "/out/combined.mp4"}
	publisher := &stubPublisher{key: "user/user-1/run/run-3/combined.mp4"}
	store := &recordingRunStore{}

	run := newTestPipeline(image, speech, muxer, publisher, store).Run(context.Background(), inbound.StartSlideshowParams{
		RunID:       "run-3",
		UserID:      "user-1",
		ImagePrompt: "a lighthouse",
		Narration:   "fog rolling in",
		Publish:     true,
	})

	require.Equal(t, domain.RunComplete, run.State)
	require.Equal(t, 1, publisher.calls)

	publishOutcome, ok := run.Outcome(domain.StagePublish)
	require.True(t, ok)
	require.Equal(t, "user/user-1/run/run-3/combined.mp4", publishOutcome.Result.Locator)
}

func TestSlideshowPipeline_EveryStageRecordedBeforeNext(t *testing.T) {
	image := &stubGenerator{result: domain.SuccessResult("/out/frame.png", "", "")}
	speech := &stubSpeech{result: domain.SuccessResult("/out/narration.mp3", "", "")}
	muxer := &stubMuxer{err: domain.MuxingFailed("ffmpeg exploded")}
	publisher := &stubPublisher{}
	store := &recordingRunStore{}

	run := newTestPipeline(image, speech, muxer, publisher, store).Run(context.Background(), inbound.StartSlideshowParams{
		RunID:       "run-4",
		UserID:      "user-1",
		ImagePrompt: "a lighthouse",
		Narration:   "gale force",
		Publish:     true,
	})

	require.Equal(t, domain.RunFailed, run.State)
	require.Contains(t, run.Error, "ffmpeg exploded")
	require.Len(t, run.Stages, 3)
	require.NotEmpty(t, store.saves)

	final := store.saves[len(store.saves)-1]
	require.Equal(t, domain.RunFailed, final.State)
}

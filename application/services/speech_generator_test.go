package services

import (
	"context"
	"media-orchestrator/domain"
	"media-orchestrator/infrastructure/adapters"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubAgentHost struct {
	record *domain.ToolInvocationRecord
	err    error
	calls  int
}

func (a *stubAgentHost) Invoke(_ context.Context, _ string) (*domain.ToolInvocationRecord, error) {
	a.calls++
	return a.record, a.err
}

func TestSpeechGenerator_NarrateSuccess(t *testing.T) {
	agent := &stubAgentHost{record: &domain.ToolInvocationRecord{
		Text: "Done.",
		Calls: []domain.ToolCall{
			{Name: "synthesize_speech", Output: "wrote /var/media/narration_9.mp3"},
		},
	}}
	extractor := NewResultExtractor(t.TempDir(), adapters.NewZerologWrapper())
	generator := NewSpeechGenerator(agent, extractor, adapters.NewZerologWrapper())

	result := generator.Narrate(context.Background(), "storm warning for the coast")
	require.True(t, result.Success)
	require.Equal(t, "/var/media/narration_9.mp3", result.LocalPath)
}

func TestSpeechGenerator_ExtractionFailure(t *testing.T) {
	agent := &stubAgentHost{record: &domain.ToolInvocationRecord{Text: "nothing happened"}}
	extractor := NewResultExtractor(t.TempDir(), adapters.NewZerologWrapper())
	generator := NewSpeechGenerator(agent, extractor, adapters.NewZerologWrapper())

	result := generator.Narrate(context.Background(), "storm warning")
	require.False(t, result.Success)
	require.Contains(t, result.Error, "could not extract artifact")
}

func TestSpeechGenerator_EmptyText(t *testing.T) {
	agent := &stubAgentHost{}
	extractor := NewResultExtractor(t.TempDir(), adapters.NewZerologWrapper())
	generator := NewSpeechGenerator(agent, extractor, adapters.NewZerologWrapper())

	result := generator.Narrate(context.Background(), "")
	require.False(t, result.Success)
	require.Zero(t, agent.calls, "the agent host must not be invoked for empty narration text")
}

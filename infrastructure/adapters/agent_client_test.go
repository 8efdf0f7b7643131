package adapters

import (
	"context"
	"media-orchestrator/config"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/stretchr/testify/require"
)

func newAgentTestConfig(apiUrl string) *config.AgentConfig {
	return &config.AgentConfig{
		ApiUrl: apiUrl,
		ApiKey: "test-key",
		Model:  "agent-001",
	}
}

func sseHandler(t *testing.T, lines []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models/agent-001:streamInvoke", r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		for _, line := range lines {
			_, _ = w.Write([]byte("data: " + line + "\n\n"))
			flusher.Flush()
		}
		<-r.Context().Done()
	}
}

func TestAgentClient_InvokeCollectsTextAndCalls(t *testing.T) {
	server := httptest.NewServer(sseHandler(t, []string{
		`{"text":"Saved the narration to "}`,
		`{"text":"/var/media/narration_1.mp3"}`,
		`{"toolCall":{"name":"synthesize_speech","output":"/var/media/narration_1.mp3"}}`,
		`[DONE]`,
	}))
	defer server.Close()

	workerPool, err := ants.NewPool(4)
	require.NoError(t, err)
	defer workerPool.Release()

	client := NewAgentClient(newAgentTestConfig(server.URL), workerPool, NewZerologWrapper())

	record, err := client.Invoke(context.Background(), "narrate this")
	require.NoError(t, err)
	require.Equal(t, "Saved the narration to /var/media/narration_1.mp3", record.Text)
	require.Len(t, record.Calls, 1)
	require.Equal(t, "synthesize_speech", record.Calls[0].Name)
	require.Equal(t, "/var/media/narration_1.mp3", record.Calls[0].Output)
}

func TestAgentClient_InvokeReleasesStream(t *testing.T) {
	released := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		_, _ = w.Write([]byte("data: {\"text\":\"done\"}\n\ndata: [DONE]\n\n"))
		flusher.Flush()
		<-r.Context().Done()
		close(released)
	}))
	defer server.Close()

	workerPool, err := ants.NewPool(4)
	require.NoError(t, err)
	defer workerPool.Release()

	client := NewAgentClient(newAgentTestConfig(server.URL), workerPool, NewZerologWrapper())

	record, err := client.Invoke(context.Background(), "narrate this")
	require.NoError(t, err)
	require.Equal(t, "done", record.Text)

	select {
	case <-released:
	case <-time.After(5 * time.Second):
		t.Fatal("stream connection was not torn down after the invocation finished")
	}
}

func TestAgentClient_InvokeHonorsContextCancel(t *testing.T) {
	server := httptest.NewServer(sseHandler(t, []string{
		`{"text":"partial answer"}`,
	}))
	defer server.Close()

	workerPool, err := ants.NewPool(4)
	require.NoError(t, err)
	defer workerPool.Release()

	client := NewAgentClient(newAgentTestConfig(server.URL), workerPool, NewZerologWrapper())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err = client.Invoke(ctx, "narrate this")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAgentClient_InvokeWithoutCredential(t *testing.T) {
	cfg := newAgentTestConfig("http://localhost")
	cfg.ApiKey = ""

	workerPool, err := ants.NewPool(4)
	require.NoError(t, err)
	defer workerPool.Release()

	client := NewAgentClient(cfg, workerPool, NewZerologWrapper())

	_, err = client.Invoke(context.Background(), "narrate this")
	require.Error(t, err)
}

package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"media-orchestrator/application/ports/outbound"
	"media-orchestrator/config"
	"media-orchestrator/domain"
	"net/http"
	"strings"

	"github.com/donovanhide/eventsource"
)

const agentDoneSignal = "[DONE]"
const agentMaxRetries = 3

type agentInvokeRequest struct {
	Instruction string `json:"instruction"`
}

type agentStreamChunk struct {
	Text     string `json:"text,omitempty"`
	ToolCall *struct {
		Name   string      `json:"name"`
		Output interface{} `json:"output"`
	} `json:"toolCall,omitempty"`
}

type agentClient struct {
	logger      outbound.LoggerPort
	agentConfig *config.AgentConfig
	workerPool  outbound.TaskDispatcher
}

func NewAgentClient(agentConfig *config.AgentConfig, workerPool outbound.TaskDispatcher, logger outbound.LoggerPort) outbound.AgentHostPort {
	return &agentClient{
		logger:      logger,
		agentConfig: agentConfig,
		workerPool:  workerPool,
	}
}

// Invoke streams the host's response and accumulates the textual answer plus
// every tool call it reports. The stream is drained to completion before the
// record is returned; partial answers are never surfaced. The request runs on
// a derived context that is canceled on return so the transport tears the
// stream down once the record is collected.
func (a *agentClient) Invoke(ctx context.Context, instruction string) (*domain.ToolInvocationRecord, error) {
	if a.agentConfig.ApiKey == "" {
		return nil, domain.MissingCredential("agent API key is not configured")
	}

	newCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	req, err := a.createRequest(newCtx, instruction)
	if err != nil {
		a.logger.Error(err, "Failed to create agent invoke request")
		return nil, err
	}

	stream, err := eventsource.SubscribeWithRequest("", req)
	if err != nil {
		a.logger.Error(err, "Failed to subscribe to agent response stream")
		return nil, err
	}
	defer stream.Close()

	type outcome struct {
		record *domain.ToolInvocationRecord
		err    error
	}
	done := make(chan outcome, 1)

	err = a.workerPool.Submit(func() {
		record, collectErr := a.collect(newCtx, stream)
		done <- outcome{record: record, err: collectErr}
	})
	if err != nil {
		a.logger.Error(err, "Failed to submit agent stream reader to worker pool")
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-done:
		return res.record, res.err
	}
}

func (a *agentClient) collect(ctx context.Context, stream *eventsource.Stream) (*domain.ToolInvocationRecord, error) {
	record := &domain.ToolInvocationRecord{}
	var text strings.Builder
	retryCount := 0

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case ev := <-stream.Events:
			if ev.Data() == agentDoneSignal {
				record.Text = text.String()
				return record, nil
			}
			chunk, err := a.extractChunk(ev)
			if err != nil {
				return nil, err
			}
			text.WriteString(chunk.Text)
			if chunk.ToolCall != nil {
				record.Calls = append(record.Calls, domain.ToolCall{
					Name:   chunk.ToolCall.Name,
					Output: chunk.ToolCall.Output,
				})
			}
			retryCount = 0
		case err := <-stream.Errors:
			if err == io.EOF {
				record.Text = text.String()
				return record, nil
			}
			if retryCount < agentMaxRetries {
				a.logger.ErrorWithFields(err, "Error on agent stream, retrying", map[string]interface{}{
					"retry_count": retryCount,
				})
				retryCount++
				continue
			}
			a.logger.Error(err, "Error on agent stream, max retries reached")
			return nil, err
		}
	}
}

func (a *agentClient) extractChunk(event eventsource.Event) (agentStreamChunk, error) {
	var chunk agentStreamChunk
	if err := json.Unmarshal([]byte(event.Data()), &chunk); err != nil {
		a.logger.Error(err, "Failed to unmarshal agent stream event")
		return agentStreamChunk{}, err
	}
	return chunk, nil
}

func (a *agentClient) createRequest(ctx context.Context, instruction string) (*http.Request, error) {
	jsonPayload, err := json.Marshal(agentInvokeRequest{Instruction: instruction})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:streamInvoke", a.agentConfig.ApiUrl, a.agentConfig.Model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}

	req.Header.Add("Authorization", "Bearer "+a.agentConfig.ApiKey)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "text/event-stream")

	return req, nil
}

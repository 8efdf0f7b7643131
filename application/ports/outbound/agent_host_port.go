package outbound

import (
	"context"
	"media-orchestrator/domain"
)

// AgentHostPort is the tool-invocation host: it takes a natural-language
// instruction and reports back the textual answer plus whichever tools it
// actually invoked. The response shape is not contractually guaranteed.
type AgentHostPort interface {
	Invoke(ctx context.Context, instruction string) (*domain.ToolInvocationRecord, error)
}

package services

import (
	"context"
	"fmt"
	"media-orchestrator/application/ports/inbound"
	"media-orchestrator/application/ports/outbound"
	"media-orchestrator/domain"
)

const speechInstructionTemplate = "Generate a speech audio file narrating the following text and reply with the saved file path: %s"

type speechGenerator struct {
	agent     outbound.AgentHostPort
	extractor inbound.ArtifactExtractorPort
	logger    outbound.LoggerPort
}

// NewSpeechGenerator narrates text through the tool-invocation host. Speech
// synthesis has no direct typed API here, so the artifact path is recovered
// from the host's free-form response.
func NewSpeechGenerator(agent outbound.AgentHostPort, extractor inbound.ArtifactExtractorPort, logger outbound.LoggerPort) inbound.SpeechGeneratorPort {
	return &speechGenerator{
		agent:     agent,
		extractor: extractor,
		logger:    logger,
	}
}

func (s *speechGenerator) Narrate(ctx context.Context, text string) domain.GenerationResult {
	if text == "" {
		return domain.FailureResult(domain.InvalidRequest("narration text is required"))
	}

	record, err := s.agent.Invoke(ctx, fmt.Sprintf(speechInstructionTemplate, text))
	if err != nil {
		s.logger.Error(err, "Failed to invoke speech synthesis through the agent host")
		return domain.FailureResult(err)
	}

	artifact, err := s.extractor.Extract(record, ".mp3")
	if err != nil {
		return domain.FailureResult(err)
	}

	s.logger.InfoWithFields("Generated narration audio", map[string]interface{}{
		"path":     artifact.Path,
		"strategy": artifact.Strategy,
	})

	return domain.SuccessResult(artifact.Path, "", "")
}

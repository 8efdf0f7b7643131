package config

import (
	"fmt"
	"os"
)

type AgentConfig struct {
	ApiUrl string
	ApiKey string
	Model  string
}

func GetAgentConfig() (*AgentConfig, error) {
	apiUrl := os.Getenv("AGENT_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("AGENT_API_URL must be set")
	}
	apiKey := os.Getenv("AGENT_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("AGENT_API_KEY must be set")
	}
	model := os.Getenv("AGENT_MODEL")
	if model == "" {
		return nil, fmt.Errorf("AGENT_MODEL must be set")
	}

	return &AgentConfig{
		ApiUrl: apiUrl,
		ApiKey: apiKey,
		Model:  model,
	}, nil
}

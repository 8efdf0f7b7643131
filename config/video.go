package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultFastPollSeconds = 5
	defaultHQPollSeconds   = 15
	defaultMaxWaitSeconds  = 600
)

type VideoConfig struct {
	ApiUrl       string
	ApiKey       string
	FastModel    string
	HQModel      string
	FastInterval time.Duration
	HQInterval   time.Duration
	MaxWait      time.Duration
}

func GetVideoConfig() (*VideoConfig, error) {
	apiUrl := os.Getenv("VIDEO_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("VIDEO_API_URL must be set")
	}
	apiKey := os.Getenv("VIDEO_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("VIDEO_API_KEY must be set")
	}
	fastModel := os.Getenv("VIDEO_FAST_MODEL")
	if fastModel == "" {
		return nil, fmt.Errorf("VIDEO_FAST_MODEL must be set")
	}
	hqModel := os.Getenv("VIDEO_HQ_MODEL")
	if hqModel == "" {
		return nil, fmt.Errorf("VIDEO_HQ_MODEL must be set")
	}

	fastPoll, err := secondsEnv("VIDEO_FAST_POLL_SECONDS", defaultFastPollSeconds)
	if err != nil {
		return nil, err
	}
	hqPoll, err := secondsEnv("VIDEO_HQ_POLL_SECONDS", defaultHQPollSeconds)
	if err != nil {
		return nil, err
	}
	maxWait, err := secondsEnv("VIDEO_MAX_WAIT_SECONDS", defaultMaxWaitSeconds)
	if err != nil {
		return nil, err
	}

	return &VideoConfig{
		ApiUrl:       apiUrl,
		ApiKey:       apiKey,
		FastModel:    fastModel,
		HQModel:      hqModel,
		FastInterval: fastPoll,
		HQInterval:   hqPoll,
		MaxWait:      maxWait,
	}, nil
}

func secondsEnv(name string, fallback int) (time.Duration, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return time.Duration(fallback) * time.Second, nil
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s", name)
	}
	return time.Duration(seconds) * time.Second, nil
}

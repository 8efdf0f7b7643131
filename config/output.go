package config

import (
	"fmt"
	"os"
)

type OutputConfig struct {
	Dir string
}

func GetOutputConfig() (*OutputConfig, error) {
	dir := os.Getenv("OUTPUT_DIR")
	if dir == "" {
		return nil, fmt.Errorf("OUTPUT_DIR must be set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	return &OutputConfig{
		Dir: dir,
	}, nil
}

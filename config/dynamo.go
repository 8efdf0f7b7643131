package config

import (
	"fmt"
	"os"
	"strconv"
)

type DynamoConfig struct {
	TableName  string
	TtlMinutes int
}

func GetDynamoConfig() (*DynamoConfig, error) {
	tableName := os.Getenv("RUNS_TABLE_NAME")
	if tableName == "" {
		return nil, fmt.Errorf("RUNS_TABLE_NAME must be set")
	}

	ttlMinutes := os.Getenv("RUNS_TTL_MINUTES")
	if ttlMinutes == "" {
		return nil, fmt.Errorf("RUNS_TTL_MINUTES must be set")
	}
	ttlVal, err := strconv.Atoi(ttlMinutes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse runs ttl minutes")
	}

	return &DynamoConfig{
		TableName:  tableName,
		TtlMinutes: ttlVal,
	}, nil
}

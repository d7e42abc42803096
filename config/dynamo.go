package config

import (
	"fmt"
	"os"
	"strconv"
)

const defaultRunCacheTtlMinutes = 1440

type DynamoConfig struct {
	TableName  string
	TtlMinutes int
}

func GetDynamoConfig() (*DynamoConfig, error) {
	tableName := os.Getenv("DYNAMO_TABLE_NAME")
	if tableName == "" {
		return nil, fmt.Errorf("DYNAMO_TABLE_NAME must be set")
	}

	ttlMinutes := defaultRunCacheTtlMinutes
	if raw := os.Getenv("DYNAMO_TTL_MINUTES"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DYNAMO_TTL_MINUTES")
		}
		ttlMinutes = parsed
	}

	return &DynamoConfig{
		TableName:  tableName,
		TtlMinutes: ttlMinutes,
	}, nil
}

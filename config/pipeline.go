package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultPollIntervalSeconds = 30
	defaultMaxPollAttempts     = 40
)

// PipelineConfig tunes the async-job polling loop.
type PipelineConfig struct {
	PollInterval    time.Duration
	MaxPollAttempts int
}

func GetPipelineConfig() (*PipelineConfig, error) {
	intervalSeconds := defaultPollIntervalSeconds
	if raw := os.Getenv("POLL_INTERVAL_SECONDS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse POLL_INTERVAL_SECONDS")
		}
		intervalSeconds = parsed
	}

	maxAttempts := defaultMaxPollAttempts
	if raw := os.Getenv("MAX_POLL_ATTEMPTS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse MAX_POLL_ATTEMPTS")
		}
		if parsed < 1 {
			return nil, fmt.Errorf("MAX_POLL_ATTEMPTS must be at least 1")
		}
		maxAttempts = parsed
	}

	return &PipelineConfig{
		PollInterval:    time.Duration(intervalSeconds) * time.Second,
		MaxPollAttempts: maxAttempts,
	}, nil
}

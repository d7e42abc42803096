package config

import (
	"fmt"
	"os"
)

type DeepfakeConfig struct {
	Host string
}

func GetDeepfakeConfig() (*DeepfakeConfig, error) {
	host := os.Getenv("DEEPFAKE_HOST")
	if host == "" {
		return nil, fmt.Errorf("DEEPFAKE_HOST must be set")
	}

	return &DeepfakeConfig{
		Host: host,
	}, nil
}

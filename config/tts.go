package config

import (
	"fmt"
	"os"
)

type TtsConfig struct {
	Host string
}

func GetTtsConfig() (*TtsConfig, error) {
	host := os.Getenv("TTS_HOST")
	if host == "" {
		return nil, fmt.Errorf("TTS_HOST must be set")
	}

	return &TtsConfig{
		Host: host,
	}, nil
}

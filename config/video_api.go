package config

import (
	"fmt"
	"os"
)

// VideoApiConfig points at the account backend that records finished
// videos and stores presentation metadata.
type VideoApiConfig struct {
	ApiUrl string
}

func GetVideoApiConfig() (*VideoApiConfig, error) {
	apiUrl := os.Getenv("VIDEO_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("VIDEO_API_URL must be set")
	}

	return &VideoApiConfig{
		ApiUrl: apiUrl,
	}, nil
}

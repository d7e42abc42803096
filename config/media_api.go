package config

import (
	"fmt"
	"os"
)

// MediaApiConfig points at the media backend that hosts slide
// composition, video concatenation and deepfake status endpoints.
type MediaApiConfig struct {
	ApiUrl string
}

func GetMediaApiConfig() (*MediaApiConfig, error) {
	apiUrl := os.Getenv("MEDIA_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("MEDIA_API_URL must be set")
	}

	return &MediaApiConfig{
		ApiUrl: apiUrl,
	}, nil
}

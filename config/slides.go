package config

import (
	"fmt"
	"os"
)

type SlidesConfig struct {
	ApiUrl string
}

func GetSlidesConfig() (*SlidesConfig, error) {
	apiUrl := os.Getenv("SLIDES_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("SLIDES_API_URL must be set")
	}

	return &SlidesConfig{
		ApiUrl: apiUrl,
	}, nil
}

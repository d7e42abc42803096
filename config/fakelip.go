package config

import (
	"fmt"
	"os"
)

type FakelipConfig struct {
	Host string
}

func GetFakelipConfig() (*FakelipConfig, error) {
	host := os.Getenv("FAKELIP_HOST")
	if host == "" {
		return nil, fmt.Errorf("FAKELIP_HOST must be set")
	}

	return &FakelipConfig{
		Host: host,
	}, nil
}

package main

import (
	"fmt"
	"time"

	"github.com/glosso-dev/glosso/internal/config"
	"github.com/glosso-dev/glosso/internal/glossary/api"
)

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func newAPIClient(cfg *config.Config) *api.HTTPClient {
	return api.NewHTTPClient(
		cfg.API.BaseURL,
		time.Duration(cfg.API.TimeoutSeconds)*time.Second,
		cfg.API.RetryAttempts,
	)
}

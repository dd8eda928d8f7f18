package app

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	CallsPath    string   // .hcl call blocks or a .json array of calls
	CatalogPaths []string // .hcl operation blocks, files or directories
	NoDefaults   bool     // start from an empty catalog

	OutputFormat string
	LogFormat    string
	LogLevel     string

	PublishURL       string
	PublishNamespace string
	PublishEvent     string
	PublishAckEvent  string
	PublishTimeout   time.Duration

	// PublishInsecureSkipVerify disables TLS certificate checks on the publish endpoint.
	PublishInsecureSkipVerify bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.CallsPath == "" {
		return nil, errors.New("CallsPath is a required configuration field and cannot be empty")
	}

	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "text"
	}
	if cfg.OutputFormat != "text" && cfg.OutputFormat != "json" {
		return nil, fmt.Errorf("invalid output format %q: must be 'text' or 'json'", cfg.OutputFormat)
	}
	if cfg.PublishTimeout < 0 {
		return nil, fmt.Errorf("publish timeout must not be negative, got %s", cfg.PublishTimeout)
	}

	return &cfg, nil
}

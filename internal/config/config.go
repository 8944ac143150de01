// Package config loads service settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the serve command's settings.
//
// render_flush_wait in the YAML file is integer nanoseconds; use the
// SCANPREP_FLUSH_WAIT env var for duration strings like "250ms".
type Config struct {
	Port            string        `yaml:"port"`
	InferenceURL    string        `yaml:"inference_url"`
	JPEGQuality     int           `yaml:"jpeg_quality"`
	RenderFlushWait time.Duration `yaml:"render_flush_wait"`
	UploadLimitMB   int           `yaml:"upload_limit_mb"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Port:            "8888",
		JPEGQuality:     95,
		RenderFlushWait: 500 * time.Millisecond,
		UploadLimitMB:   50,
	}
}

// Load reads settings from path (optional, may be empty) and then applies
// environment overrides: SCANPREP_PORT, INFERENCE_URL,
// SCANPREP_JPEG_QUALITY, SCANPREP_FLUSH_WAIT, SCANPREP_UPLOAD_LIMIT_MB.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if v := os.Getenv("SCANPREP_PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("INFERENCE_URL"); v != "" {
		cfg.InferenceURL = v
	}
	if v := os.Getenv("SCANPREP_JPEG_QUALITY"); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SCANPREP_JPEG_QUALITY: %w", err)
		}
		cfg.JPEGQuality = q
	}
	if v := os.Getenv("SCANPREP_FLUSH_WAIT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SCANPREP_FLUSH_WAIT: %w", err)
		}
		cfg.RenderFlushWait = d
	}
	if v := os.Getenv("SCANPREP_UPLOAD_LIMIT_MB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SCANPREP_UPLOAD_LIMIT_MB: %w", err)
		}
		cfg.UploadLimitMB = n
	}

	return cfg, nil
}

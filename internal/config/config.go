// Package config holds the typed application configuration loaded through
// viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	Batch BatchConfig `mapstructure:"batch"`
	NATS  NATSConfig  `mapstructure:"nats"`
	Log   LogConfig   `mapstructure:"log"`
}

// BatchConfig holds the default batch processing settings. A batch manifest
// may override any of them per job.
type BatchConfig struct {
	OutputDirectory     string   `mapstructure:"output_directory"`
	ConcurrentJobs      int      `mapstructure:"concurrent_jobs"`
	RetryFailed         bool     `mapstructure:"retry_failed"`
	MaxRetries          int      `mapstructure:"max_retries"`
	ExportFormats       []string `mapstructure:"export_formats"`
	EnableAIAnalysis    bool     `mapstructure:"enable_ai_analysis"`
	EnableTranscript    bool     `mapstructure:"enable_transcript"`
	EnableSocialFormats bool     `mapstructure:"enable_social_formats"`
}

// NATSConfig holds NATS configuration for batch event publishing.
type NATSConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	URL           string        `mapstructure:"url"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
	TestMode      bool          `mapstructure:"test_mode"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New creates a new Config instance from Viper.
func New(v *viper.Viper) *Config {
	var config Config

	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("unable to decode config: %w", err))
	}

	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("invalid configuration: %w", err))
	}

	return &config
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Batch.ConcurrentJobs < 1 {
		return errors.New("batch.concurrent_jobs must be at least 1")
	}
	if c.Batch.MaxRetries < 0 {
		return errors.New("batch.max_retries cannot be negative")
	}
	if c.Batch.OutputDirectory == "" {
		return errors.New("batch.output_directory is required")
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		return errors.New("nats.url is required when nats is enabled")
	}
	return nil
}

// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel     string         `mapstructure:"LOG_LEVEL"`
	LogFormat    string         `mapstructure:"LOG_FORMAT"`
	GithubToken  string         `mapstructure:"GITHUB_TOKEN"`
	GithubAPIURL string         `mapstructure:"GITHUB_API_URL"`
	ListenAddr   string         `mapstructure:"LISTEN_ADDR"`
	TimeZone     string         `mapstructure:"TIME_ZONE"`
	Location     *time.Location `mapstructure:"-"`
}

// LoadConfig reads configuration from file and/or environment variables.
func LoadConfig() (*Config, error) {
	// Set default values. Every key needs one so AutomaticEnv picks it up on Unmarshal.
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("GITHUB_TOKEN", "")
	viper.SetDefault("GITHUB_API_URL", "")
	viper.SetDefault("LISTEN_ADDR", ":8080")
	viper.SetDefault("TIME_ZONE", "Local")

	// Load from .env file if it exists
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig() // Ignore error if file not found

	// Bind environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("TIME_ZONE %q is not a known time zone: %w", cfg.TimeZone, err)
	}
	cfg.Location = loc

	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, errors.New("LOG_FORMAT must be either 'json' or 'text'")
	}

	if cfg.GithubAPIURL != "" {
		u, err := url.Parse(cfg.GithubAPIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, errors.New("GITHUB_API_URL must be an absolute URL (e.g. https://github.example.com/api/v3)")
		}
	}
	if cfg.ListenAddr == "" {
		return nil, errors.New("LISTEN_ADDR must not be empty")
	}

	return &cfg, nil
}

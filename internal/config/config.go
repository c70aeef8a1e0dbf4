// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultDBPath          = "./laser.db"
	defaultServiceName     = "laser-compare"
	defaultShutdownTimeout = 5 * time.Second
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Port            string
	DBPath          string
	AdminToken      string
	LogFormat       string
	ServiceName     string
	OTLPEndpoint    string
	PublicBaseURL   string
	ShutdownTimeout time.Duration
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load() (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment, applying defaults.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:          getenv("PORT", defaultPort),
		DBPath:        getenv("DB_PATH", defaultDBPath),
		AdminToken:    os.Getenv("ADMIN_TOKEN"),
		LogFormat:     strings.ToLower(getenv("LOG_FORMAT", "json")),
		ServiceName:   getenv("OTEL_SERVICE_NAME", defaultServiceName),
		OTLPEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		PublicBaseURL: strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
	}

	cfg.ShutdownTimeout = defaultShutdownTimeout
	if raw := os.Getenv("SHUTDOWN_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("parse SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	switch cfg.LogFormat {
	case "json", "console":
	default:
		return Config{}, fmt.Errorf("LOG_FORMAT must be json or console, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// TelemetryEnabled reports whether OTLP exporters should be started.
func (c Config) TelemetryEnabled() bool {
	return c.OTLPEndpoint != ""
}

// AdminEnabled reports whether the admin API accepts any token.
func (c Config) AdminEnabled() bool {
	return c.AdminToken != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadDotEnv loads environment variables from path when present.
// Existing process environment variables are not overridden.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load %s: %w", path, err)
}

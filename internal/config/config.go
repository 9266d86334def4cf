package config

import (
	"errors"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the API server.
type Config struct {
	AppName   string        `envconfig:"APP_NAME" default:"StockFlow Inventory v1.0"`
	Port      string        `envconfig:"PORT" default:"3000"`
	JWTSecret string        `envconfig:"JWT_SECRET" default:"stockflow-local-session-secret"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	// Empty DATABASE_URL keeps the theme preference in memory as well
	DatabaseURL string `envconfig:"DATABASE_URL"`

	SeedDemoData bool `envconfig:"SEED_DEMO_DATA" default:"true"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("could not read .env file", slog.Any("error", err))
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET must not be empty")
	}
	return &cfg, nil
}

// NewLogger builds the process logger from LOG_FORMAT and LOG_LEVEL.
func (c *Config) NewLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

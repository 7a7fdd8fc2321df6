// Package config resolves runtime settings from the environment. A .env file
// in the working directory is loaded first when present; variables already
// set in the environment win over it.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv.
const (
	EnvDB        = "MATHGEN_DB"
	EnvTemplates = "MATHGEN_TEMPLATES"
	EnvSeed      = "MATHGEN_SEED"
	EnvLogLevel  = "MATHGEN_LOG_LEVEL"
	EnvLogFormat = "MATHGEN_LOG_FORMAT"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds the settings shared by every command.
type Config struct {
	// DBPath is the generation log database. Empty means the default
	// data-directory location.
	DBPath string

	// TemplatesDir is an extra catalog directory loaded after the builtin one.
	TemplatesDir string

	// Seed makes runs reproducible when set.
	Seed string

	LogLevel  slog.Level
	LogFormat string
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		LogLevel:  slog.LevelWarn,
		LogFormat: FormatText,
	}
}

// FromEnv loads .env (if any) and overlays the MATHGEN_* variables on
// DefaultConfig.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	cfg.DBPath = os.Getenv(EnvDB)
	cfg.TemplatesDir = os.Getenv(EnvTemplates)
	cfg.Seed = os.Getenv(EnvSeed)

	if v := os.Getenv(EnvLogLevel); v != "" {
		level, err := ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		format, err := ParseFormat(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: %s: %w", EnvLogFormat, err)
		}
		cfg.LogFormat = format
	}
	return cfg, nil
}

// ParseLevel accepts debug, info, warn (or warning) and error, or a numeric
// slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return slog.Level(n), nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// ParseFormat accepts text or json.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown log format %q (want text or json)", s)
}

// NewLogger builds a slog.Logger writing to stderr in the configured format.
func (c Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == FormatJSON {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

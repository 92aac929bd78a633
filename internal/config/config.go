// Package config loads the datacat settings file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aigotowork/datasrc/internal/spool"
	"github.com/aigotowork/datasrc/internal/textenc"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings shared by all datacat commands.
type Config struct {
	// Encoding is the instance encoding for every input.
	// Default: "utf8"
	Encoding string `yaml:"encoding"`

	// ChunkSize is the copy buffer size in bytes for saves.
	// Default: 64KB
	ChunkSize int `yaml:"chunk_size"`

	// TempDir is where the temp command creates files.
	// Default: "" (os.TempDir())
	TempDir string `yaml:"temp_dir"`

	// Atomic makes save replace destinations only once complete.
	// Default: false
	Atomic bool `yaml:"atomic"`

	// MaxSize caps each saved file in bytes. 0 means unlimited.
	// Default: 0
	MaxSize int64 `yaml:"max_size"`

	// LogLevel is one of debug, info, warn, error.
	// Default: "warn"
	LogLevel string `yaml:"log_level"`

	// Concurrency bounds how many inputs save handles at once.
	// Default: 4
	Concurrency int `yaml:"concurrency"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		Encoding:    textenc.DefaultName,
		ChunkSize:   spool.DefaultChunkSize,
		LogLevel:    "warn",
		Concurrency: 4,
	}
}

// Load reads a YAML config file over the defaults and applies DATASRC_*
// environment overrides. An empty path or a missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := ApplyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides maps DATASRC_* env vars to config fields.
func ApplyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("DATASRC_ENCODING"); v != "" {
		cfg.Encoding = v
	}
	if v := os.Getenv("DATASRC_TEMP_DIR"); v != "" {
		cfg.TempDir = v
	}
	if v := os.Getenv("DATASRC_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DATASRC_ATOMIC"); v == "true" {
		cfg.Atomic = true
	}
	if v := os.Getenv("DATASRC_MAX_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("DATASRC_MAX_SIZE: %w", err)
		}
		cfg.MaxSize = n
	}
	if v := os.Getenv("DATASRC_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("DATASRC_CONCURRENCY: %w", err)
		}
		cfg.Concurrency = n
	}
	return nil
}

// Merge copies every field that is set in src onto c. Command line flags
// are merged last so they win over the file and the environment.
func (c *Config) Merge(src Config) {
	if src.Encoding != "" {
		c.Encoding = src.Encoding
	}
	if src.ChunkSize != 0 {
		c.ChunkSize = src.ChunkSize
	}
	if src.TempDir != "" {
		c.TempDir = src.TempDir
	}
	if src.Atomic {
		c.Atomic = true
	}
	if src.MaxSize != 0 {
		c.MaxSize = src.MaxSize
	}
	if src.LogLevel != "" {
		c.LogLevel = src.LogLevel
	}
	if src.Concurrency != 0 {
		c.Concurrency = src.Concurrency
	}
}

// Validate checks if the configuration is valid.
func Validate(c *Config) error {
	if _, err := textenc.Lookup(c.Encoding); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive", ErrInvalidConfig)
	}
	if c.MaxSize < 0 {
		return fmt.Errorf("%w: max_size must not be negative", ErrInvalidConfig)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1", ErrInvalidConfig)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log_level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, s)
}

// Level returns the configured slog level, falling back to warn.
func (c *Config) Level() slog.Level {
	l, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return l
}

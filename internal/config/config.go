// Package config loads and validates sitewatch configuration from a TOML
// file, falling back to repository defaults when the file is absent.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Paths contains directory configuration.
type Paths struct {
	FramesDir string `toml:"frames_dir"`
	CacheDir  string `toml:"cache_dir"`
	OutputDir string `toml:"output_dir"`
}

// Model contains connection and generation settings for the vision model.
type Model struct {
	Name            string  `toml:"name"`
	BaseURL         string  `toml:"base_url"`
	Port            int     `toml:"port"`
	Temperature     float64 `toml:"temperature"`
	MaxOutputTokens int     `toml:"max_output_tokens"`
	EmbeddingModel  string  `toml:"embedding_model"`
}

// Pipeline contains chunking and rate-limit cadence settings.
type Pipeline struct {
	FramesPerChunk   int `toml:"frames_per_chunk"`
	FrameIntervalSec int `toml:"frame_interval_sec"`
	// RequestDelaySec is the fixed pause after every chunk, cache hit or not.
	// The external service enforces a rolling per-minute quota.
	RequestDelaySec   int `toml:"request_delay_sec"`
	MaxAttempts       int `toml:"max_attempts"`
	DefaultBackoffSec int `toml:"default_backoff_sec"`
}

// Postgres contains configuration for the optional timeline index.
type Postgres struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"dbname"`
}

// Config is the full sitewatch configuration. It is passed explicitly to the
// components that need it; there is no process-wide mutable state.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Model    Model    `toml:"model"`
	Pipeline Pipeline `toml:"pipeline"`
	Postgres Postgres `toml:"postgres"`
}

// ConnString renders a pgx connection string for the configured database.
func (p Postgres) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", p.User, p.Password, p.Host, p.Port, p.DBName)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return "~/.config/sitewatch/config.toml"
}

// Load reads the config file at path (or the default location when path is
// empty). A missing file yields the defaults. Returns the loaded config, the
// resolved path, and whether the file existed.
func Load(path string) (Config, string, bool, error) {
	if path == "" {
		path = DefaultPath()
	}
	resolved, err := ExpandPath(path)
	if err != nil {
		return Config{}, "", false, err
	}

	cfg := Default()
	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		applyEnv(&cfg)
		return cfg, resolved, false, nil
	case err != nil:
		return Config{}, resolved, false, fmt.Errorf("read config %s: %w", resolved, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, resolved, true, fmt.Errorf("parse config %s: %w", resolved, err)
	}
	applyEnv(&cfg)
	return cfg, resolved, true, nil
}

// applyEnv overlays secrets that are commonly supplied via the environment.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SITEWATCH_PG_PASSWORD"); v != "" {
		cfg.Postgres.Password = v
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		cfg.Model.BaseURL = v
	}
}

// ExpandPath resolves a leading ~ against the current user's home directory
// and returns an absolute path.
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", path, err)
	}
	return abs, nil
}

// Validate checks the invariants the pipeline relies on.
func (c Config) Validate() error {
	if c.Pipeline.FramesPerChunk < 1 {
		return fmt.Errorf("pipeline.frames_per_chunk must be at least 1, got %d", c.Pipeline.FramesPerChunk)
	}
	if c.Pipeline.FrameIntervalSec < 1 {
		return fmt.Errorf("pipeline.frame_interval_sec must be at least 1, got %d", c.Pipeline.FrameIntervalSec)
	}
	if c.Pipeline.RequestDelaySec < 0 {
		return fmt.Errorf("pipeline.request_delay_sec must not be negative, got %d", c.Pipeline.RequestDelaySec)
	}
	if c.Pipeline.MaxAttempts < 1 {
		return fmt.Errorf("pipeline.max_attempts must be at least 1, got %d", c.Pipeline.MaxAttempts)
	}
	if c.Model.Name == "" {
		return errors.New("model.name must not be empty")
	}
	if c.Model.Temperature < 0 || c.Model.Temperature > 1 {
		return fmt.Errorf("model.temperature must be in [0, 1], got %g", c.Model.Temperature)
	}
	if c.Model.MaxOutputTokens < 1 {
		return fmt.Errorf("model.max_output_tokens must be at least 1, got %d", c.Model.MaxOutputTokens)
	}
	if c.Postgres.Enabled {
		if c.Postgres.Host == "" || c.Postgres.DBName == "" {
			return errors.New("postgres.host and postgres.dbname are required when postgres.enabled is true")
		}
	}
	return nil
}

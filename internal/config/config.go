// Package config loads folio's settings from a YAML file with FOLIO_*
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nested keys: FOLIO_PREVIEW__WIDTH sets preview.width.
const EnvPrefix = "FOLIO_"

// Config is the top-level configuration, corresponding to folio.yml.
type Config struct {
	Addr           string        `yaml:"addr" koanf:"addr"`
	ContentDir     string        `yaml:"content_dir" koanf:"content_dir"`
	StaticDir      string        `yaml:"static_dir" koanf:"static_dir"`
	SiteURL        string        `yaml:"site_url" koanf:"site_url"` // linked from the CV
	WatchContent   bool          `yaml:"watch_content" koanf:"watch_content"`
	CORSOrigins    []string      `yaml:"cors_origins" koanf:"cors_origins"`
	RequestTimeout time.Duration `yaml:"request_timeout" koanf:"request_timeout"`
	LogLevel       string        `yaml:"log_level" koanf:"log_level"`
	Preview        PreviewConfig `yaml:"preview" koanf:"preview"`
}

// PreviewConfig holds the preview window settings.
type PreviewConfig struct {
	ContentURL    string `yaml:"content_url" koanf:"content_url"`
	Width         int    `yaml:"width" koanf:"width"`
	Height        int    `yaml:"height" koanf:"height"`
	ShowFPS       bool   `yaml:"show_fps" koanf:"show_fps"`
	SnapshotDir   string `yaml:"snapshot_dir" koanf:"snapshot_dir"`
	StateFile     string `yaml:"state_file" koanf:"state_file"`
	ReducedMotion bool   `yaml:"reduced_motion" koanf:"reduced_motion"`
	Script        string `yaml:"script" koanf:"script"`
	Debug         bool   `yaml:"debug" koanf:"debug"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:           ":8080",
		ContentDir:     "content",
		StaticDir:      "static",
		WatchContent:   true,
		CORSOrigins:    []string{"*"},
		RequestTimeout: 10 * time.Second,
		LogLevel:       "info",
		Preview: PreviewConfig{
			ContentURL:  "http://localhost:8080",
			Width:       1280,
			Height:      720,
			SnapshotDir: "snapshots",
			StateFile:   ".folio/state.yml",
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (FOLIO_*). A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

// envKey maps FOLIO_PREVIEW__SHOW_FPS to preview.show_fps.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must be non-negative")
	}
	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}
	if c.Preview.Width <= 0 || c.Preview.Height <= 0 {
		return fmt.Errorf("preview width and height must be positive")
	}
	if c.Preview.ContentURL == "" {
		return fmt.Errorf("preview.content_url is required")
	}
	return nil
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "DEALCTL_"

type Config struct {
	BaseURL     string          `koanf:"base_url"`
	SessionFile string          `koanf:"session_file"`
	Timeout     time.Duration   `koanf:"timeout"`
	CacheTTL    time.Duration   `koanf:"cache_ttl"`
	Backend     string          `koanf:"backend"`
	PostgREST   PostgRESTConfig `koanf:"postgrest"`
	Log         LogConfig       `koanf:"log"`
}

type PostgRESTConfig struct {
	URL string `koanf:"url"`
	Key string `koanf:"key"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "dealctl", "session.json")
}

// LoadConfig layers defaults, then the YAML file if path is set, then
// DEALCTL_* variables. DEALCTL_POSTGREST_URL sets postgrest.url.
func LoadConfig(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		"base_url":     "http://localhost:8080/api",
		"session_file": defaultSessionFile(),
		"timeout":      "15s",
		"cache_ttl":    "30s",
		"backend":      "api",
		"log.level":    "warn",
	}
	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("set default %s: %w", key, err)
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// envKey maps DEALCTL_POSTGREST_URL to postgrest.url. Only the first
// underscore after a known section name becomes a dot.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, section := range []string{"postgrest", "log"} {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest
		}
	}
	return key
}

func (c *Config) validate() error {
	switch c.Backend {
	case "api":
	case "postgrest":
		if c.PostgREST.URL == "" {
			return fmt.Errorf("postgrest.url is required when backend is postgrest")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	return nil
}

func (c LogConfig) slogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelWarn
	}
	return lvl
}

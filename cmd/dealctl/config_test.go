//go:build unit

package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "api", cfg.Backend)
	assert.Equal(t, slog.LevelWarn, cfg.Log.slogLevel())
	assert.Equal(t, "session.json", filepath.Base(cfg.SessionFile))
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dealctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url: https://deals.example.com/api
timeout: 5s
backend: postgrest
postgrest:
  url: https://db.example.com/rest/v1
  key: from-file
log:
  level: debug
`), 0o600))
	t.Setenv("DEALCTL_POSTGREST_KEY", "from-env")
	t.Setenv("DEALCTL_CACHE_TTL", "1m")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://deals.example.com/api", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, "postgrest", cfg.Backend)
	assert.Equal(t, "https://db.example.com/rest/v1", cfg.PostgREST.URL)
	assert.Equal(t, "from-env", cfg.PostgREST.Key)
	assert.Equal(t, slog.LevelDebug, cfg.Log.slogLevel())
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "未知のバックエンド", env: map[string]string{"DEALCTL_BACKEND": "firebase"}},
		{name: "PostgREST URLなし", env: map[string]string{"DEALCTL_BACKEND": "postgrest"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig("")
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "postgrest.url", envKey("DEALCTL_POSTGREST_URL"))
	assert.Equal(t, "log.level", envKey("DEALCTL_LOG_LEVEL"))
	assert.Equal(t, "session_file", envKey("DEALCTL_SESSION_FILE"))
}

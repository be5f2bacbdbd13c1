package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
source:
  kind: csv
  csv:
    constituents_path: "in/constituents.csv"
    emails_path: "in/emails.csv"
    donations_path: "in/donations.csv"

tagmap:
  base_url: "https://tags.example.com"
  api_key: "test-key"
  timeout_seconds: 5
  max_retries: 1

output:
  dir: "results"

log:
  level: DEBUG
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Source.Kind)
	assert.Equal(t, "in/constituents.csv", cfg.Source.CSV.ConstituentsPath)
	assert.Equal(t, "https://tags.example.com", cfg.TagMap.BaseURL)
	assert.Equal(t, "test-key", cfg.TagMap.APIKey)
	assert.Equal(t, 5, cfg.TagMap.TimeoutSeconds)
	assert.Equal(t, 1, cfg.TagMap.MaxRetries)
	assert.Equal(t, "results", cfg.Output.Dir)
	assert.Equal(t, "DEBUG", cfg.Log.Level)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.Source.Kind)
	assert.Equal(t, "data/constituents.csv", cfg.Source.CSV.ConstituentsPath)
	assert.Equal(t, 10, cfg.TagMap.TimeoutSeconds)
	assert.Equal(t, 2, cfg.TagMap.MaxRetries)
	assert.Equal(t, 24*60, cfg.TagMap.CacheTTLMinutes)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "INFO", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("TAGMAP_BASE_URL", "https://override.example.com")
	t.Setenv("TAGMAP_API_KEY", "env-key")
	t.Setenv("TAGMAP_REDIS_ADDR", "localhost:6379")
	t.Setenv("TAGMAP_REDIS_DB", "3")
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("LOG_LEVEL", "WARN")

	cfg, err := LoadFromEnv(writeConfig(t, `
tagmap:
  base_url: "https://file.example.com"
`))
	require.NoError(t, err)

	assert.Equal(t, "https://override.example.com", cfg.TagMap.BaseURL)
	assert.Equal(t, "env-key", cfg.TagMap.APIKey)
	assert.Equal(t, "localhost:6379", cfg.TagMap.RedisAddr)
	assert.Equal(t, 3, cfg.TagMap.RedisDB)
	assert.Equal(t, "postgres://env", cfg.Source.Postgres.DSN)
	assert.Equal(t, "WARN", cfg.Log.Level)
}

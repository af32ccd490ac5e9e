package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"URLINFO_CONFIG",
		"URLINFO_API_BASE_URL",
		"URLINFO_DB_PATH",
		"URLINFO_TIMEOUT",
		"URLINFO_LOG_LEVEL",
		"URLINFO_LOG_FILE",
		"URLINFO_INLINE_IMAGE_PREVIEW",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_UsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, defaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, "urlinfo.db", cfg.DBPath)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadFromEnv_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("URLINFO_API_BASE_URL", "http://localhost:8080/api/v1")
	t.Setenv("URLINFO_TIMEOUT", "5s")
	t.Setenv("URLINFO_LOG_LEVEL", "debug")
	t.Setenv("URLINFO_INLINE_IMAGE_PREVIEW", "0")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api/v1", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.InlineImages)
}

func TestLoadFromEnv_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "urlinfo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api_base_url: http://file.example/api/v1
db_path: /tmp/from-file.db
timeout: 12s
inline_images: false
`), 0o644))
	t.Setenv("URLINFO_CONFIG", path)
	t.Setenv("URLINFO_DB_PATH", "/tmp/from-env.db")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://file.example/api/v1", cfg.APIBaseURL)
	assert.Equal(t, "/tmp/from-env.db", cfg.DBPath)
	assert.Equal(t, 12*time.Second, cfg.Timeout)
	assert.False(t, cfg.InlineImages)
}

func TestLoadFromEnv_BadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "urlinfo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timeout: [oops"), 0o644))
	t.Setenv("URLINFO_CONFIG", path)

	_, err := LoadFromEnv()
	require.Error(t, err)
}

func TestLoadFromEnv_BadTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("URLINFO_TIMEOUT", "soon")

	_, err := LoadFromEnv()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "trailing slash", mutate: func(c *Config) { c.APIBaseURL = "https://example.com/api/v1/" }},
		{name: "not http", mutate: func(c *Config) { c.APIBaseURL = "ftp://example.com" }},
		{name: "empty db", mutate: func(c *Config) { c.DBPath = "" }},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Defaults().Validate())
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	cfg := Defaults()
	cfg.LogLevel = "warn"
	var buf bytes.Buffer
	logger := cfg.NewLogger(&buf)

	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "k=v")
}

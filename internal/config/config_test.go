package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://x.com/i/api", cfg.API.BaseURL)
	assert.Equal(t, 100, cfg.Thread.ScanLimit)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atc.toml")
	content := `
cookies = ["auth_token=abc; Domain=x.com; Path=/"]

[api]
base_url = "http://localhost:9999"

[thread]
scan_limit = 25
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999", cfg.API.BaseURL)
	assert.Equal(t, 25, cfg.Thread.ScanLimit)
	require.Len(t, cfg.Cookies, 1)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ATC_LOG_LEVEL", "debug")
	t.Setenv("ATC_COOKIES", "auth_token=a; Domain=x.com; Path=/ || ct0=b; Domain=x.com; Path=/")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	require.Len(t, cfg.Cookies, 2)
	assert.Equal(t, "auth_token=a; Domain=x.com; Path=/", cfg.Cookies[0])
}

func TestEnvOverridesKeysWithUnderscores(t *testing.T) {
	// Only the first underscore splits off the section; the remainder is
	// the key itself, underscores and all.
	t.Setenv("ATC_STORAGE_DATABASE_URL", "postgres://localhost/atc")
	t.Setenv("ATC_THREAD_SCAN_LIMIT", "7")
	t.Setenv("ATC_API_BASE_URL", "http://localhost:8080")
	t.Setenv("ATC_TELEGRAM_CHAT_ID", "12345")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/atc", cfg.Storage.DatabaseURL)
	assert.Equal(t, 7, cfg.Thread.ScanLimit)
	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, "12345", cfg.Telegram.ChatID)
}

func TestEnvOverridesBeatFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atc.toml")
	require.NoError(t, os.WriteFile(path, []byte("[thread]\nscan_limit = 25\n"), 0644))
	t.Setenv("ATC_THREAD_SCAN_LIMIT", "3")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Thread.ScanLimit)
}

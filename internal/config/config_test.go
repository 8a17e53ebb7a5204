package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, []string{"gemini-2.5-flash-lite"}, cfg.Gemini.FallbackModels)
	assert.False(t, cfg.Admin.Enabled())
}

func TestBareEnvironmentNames(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://render/db")
	t.Setenv("PORT", "10000")
	t.Setenv("GEMINI_API_KEY", "key-from-platform")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "postgres://render/db", cfg.DatabaseURL)
	assert.Equal(t, "10000", cfg.Port)
	assert.Equal(t, "key-from-platform", cfg.Gemini.APIKey)
}

func TestPrefixedEnvironmentWins(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "10000")
	t.Setenv("BOARD_PORT", "9090")
	t.Setenv("BOARD_ADMIN_USER", "editor")
	t.Setenv("BOARD_ADMIN_PASSWORD", "secret")
	t.Setenv("BOARD_FETCH_TIMEOUT", "3s")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.Admin.Enabled())
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("refresh_interval: 1m\ngemini:\n  model: gemini-2.5-pro\n"), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, time.Minute, cfg.RefreshInterval)
	assert.Equal(t, "gemini-2.5-pro", cfg.Gemini.Model)
}

func TestMissingNamedConfigFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(BaseURLEnv, "")
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, "verified", cfg.API.StatusField)
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.NotEmpty(t, cfg.Session.TokenPath)
}

func TestLoad_File(t *testing.T) {
	t.Setenv(BaseURLEnv, "")
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", `
api:
  base_url: http://localhost:3000/
  token_field: token
session:
  token_path: /tmp/cms-token
server:
  port: "9000"
  read_timeout: 2s
log:
  level: debug
  json: true
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.API.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, "token", cfg.API.TokenField)
	assert.Equal(t, "verified", cfg.API.StatusField, "unset fields keep defaults")
	assert.Equal(t, "/tmp/cms-token", cfg.Session.TokenPath)
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "api:\n  base_url: http://from-file\n")

	t.Run("environment wins over file", func(t *testing.T) {
		t.Setenv(BaseURLEnv, "http://from-env/")
		cfg, err := Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "http://from-env", cfg.API.BaseURL)
	})

	t.Run(".env file is read", func(t *testing.T) {
		t.Setenv(BaseURLEnv, "")
		require.NoError(t, os.Unsetenv(BaseURLEnv))
		envDir := t.TempDir()
		writeFile(t, envDir, ".env", BaseURLEnv+"=http://from-dotenv\n")

		cfg, err := Load(envDir)
		require.NoError(t, err)
		assert.Equal(t, "http://from-dotenv", cfg.API.BaseURL)
	})
}

func TestMustLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.yaml", "api: [unterminated\n")

	assert.Panics(t, func() { MustLoad(dir) })
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "ws://localhost:19380", cfg.Server.URL)
	assert.Equal(t, 10, cfg.Server.ConnectTimeout)
	assert.Equal(t, "warn", cfg.UI.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokercli.hcl")
	content := `
server {
  url = "ws://example.test:1234"
}

player {
  name       = "alice"
  auto_login = false
}

ui {
  log_level = "debug"
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ws://example.test:1234", cfg.Server.URL)
	assert.Equal(t, "alice", cfg.Player.Name)
	assert.False(t, cfg.Player.AutoLogin)
	assert.Equal(t, "debug", cfg.UI.LogLevel)
	// Unset attributes fall back to defaults.
	assert.Equal(t, 10, cfg.Server.ConnectTimeout)
	assert.Equal(t, "pokercli.log", cfg.UI.LogFile)
	assert.NoError(t, cfg.Validate())
}

func TestLoadBadSyntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pokercli.hcl")
	require.NoError(t, os.WriteFile(path, []byte("server {"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.UI.LogLevel = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.URL = ""
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Server.ConnectTimeout = -1
	assert.Error(t, cfg.Validate())
}

func TestLoadCredentials(t *testing.T) {
	t.Setenv("POKERCLI_USERNAME", "alice")
	t.Setenv("POKERCLI_PASSWORD", "secret")
	creds := LoadCredentials()
	assert.Equal(t, "alice", creds.Username)
	assert.Equal(t, "secret", creds.Password)
}

func TestLoadCredentialsDefaults(t *testing.T) {
	t.Setenv("POKERCLI_USERNAME", "")
	t.Setenv("POKERCLI_PASSWORD", "")
	creds := LoadCredentials()
	assert.Equal(t, "testuser", creds.Username)
	assert.Equal(t, "testpass", creds.Password)
}

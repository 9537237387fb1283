package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("POMODOOM_CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, "pomodoom.db", cfg.DB.Path)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.Equal(t, "discard", cfg.Session.ReplacePolicy)
	require.Equal(t, time.Second, cfg.Timer.TickInterval)
	require.False(t, cfg.Auth.Enabled)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  host: 127.0.0.1
  port: 9000
db:
  path: /tmp/focus.db
session:
  replace_policy: complete
timer:
  tick_interval: 250ms
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	t.Setenv("POMODOOM_CONFIG_PATH", path)
	t.Setenv("POMODOOM_SERVER_PORT", "9100")
	t.Setenv("POMODOOM_AUTH_TOKEN", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "/tmp/focus.db", cfg.DB.Path)
	require.Equal(t, "complete", cfg.Session.ReplacePolicy)
	require.Equal(t, 250*time.Millisecond, cfg.Timer.TickInterval)
	require.True(t, cfg.Auth.Enabled)
	require.Equal(t, "secret", cfg.Auth.Token)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("POMODOOM_SERVER_PORT", "abc")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("POMODOOM_SERVER_PORT", "")
	t.Setenv("POMODOOM_TRANSPORT_MODE", "carrier-pigeon")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("POMODOOM_TRANSPORT_MODE", "stdio")
	t.Setenv("POMODOOM_SESSION_REPLACE_POLICY", "queue")
	_, err = Load()
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("POMODOOM_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	require.Error(t, err)
}

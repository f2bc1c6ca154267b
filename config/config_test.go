package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "mochizuki.local", cfg.Server.Name)
	assert.Equal(t, "127.0.0.1:6667", cfg.ListenAddress())
	assert.Equal(t, 60, cfg.Timeouts.Registration)
	assert.Equal(t, 180, cfg.Timeouts.KeepalivePeriod)
	assert.Equal(t, 60, cfg.Timeouts.KeepaliveTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := writeTemp(t, "config.yaml", `
server:
  name: irc.example.org
  host: 0.0.0.0
  port: 6697

timeouts:
  registration: 30
  keepalive_period: 120
  keepalive_timeout: 45

admin:
  enabled: true
  port: 9090
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "irc.example.org", cfg.Server.Name)
	assert.Equal(t, "0.0.0.0:6697", cfg.ListenAddress())
	assert.Equal(t, 30, cfg.Timeouts.Registration)
	assert.Equal(t, 120, cfg.Timeouts.KeepalivePeriod)
	assert.Equal(t, 45, cfg.Timeouts.KeepaliveTimeout)
	assert.True(t, cfg.Admin.Enabled)
	assert.Equal(t, "127.0.0.1:9090", cfg.AdminListenAddress())
	assert.Equal(t, path, cfg.Source)
}

func TestLoadTOML(t *testing.T) {
	path := writeTemp(t, "config.toml", `
[server]
name = "irc.example.org"
host = "127.0.0.1"
port = 6660

[timeouts]
registration = 15
keepalive_period = 90
keepalive_timeout = 20
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "irc.example.org", cfg.Server.Name)
	assert.Equal(t, 6660, cfg.Server.Port)
	assert.Equal(t, 90, cfg.Timeouts.KeepalivePeriod)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MOCHIZUKI_SERVER_NAME", "env.example.org")
	t.Setenv("MOCHIZUKI_PORT", "7000")
	t.Setenv("MOCHIZUKI_DEBUG", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env.example.org", cfg.Server.Name)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.True(t, cfg.Debug)
}

func TestValidateRejectsTimeoutNotLessThanPeriod(t *testing.T) {
	cfg := Default()
	cfg.Timeouts.KeepalivePeriod = 60
	cfg.Timeouts.KeepaliveTimeout = 60
	assert.Error(t, cfg.Validate(), "keepalive timeout must be strictly less than the period")

	cfg.Timeouts.KeepaliveTimeout = 61
	assert.Error(t, cfg.Validate())

	cfg.Timeouts.KeepaliveTimeout = 59
	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsZeroTimers(t *testing.T) {
	cfg := Default()
	cfg.Timeouts.Registration = 0
	assert.Error(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

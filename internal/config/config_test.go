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
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Log.ToFile)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, "/", cfg.SysDB.Root)
	assert.False(t, cfg.Output.Quote)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  to_file: true
sysdb:
  root: /srv/chroot
output:
  quote: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.ToFile)
	assert.Equal(t, "/srv/chroot", cfg.SysDB.Root)
	assert.True(t, cfg.Output.Quote)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")
	t.Setenv("COMPY_LOG_LEVEL", "error")
	t.Setenv("COMPY_LOG_TO_FILE", "true")
	t.Setenv("COMPY_LOG_FILE", "/tmp/compy-test.log")
	t.Setenv("COMPY_OUTPUT_QUOTE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level)
	assert.True(t, cfg.Log.ToFile)
	assert.Equal(t, "/tmp/compy-test.log", cfg.Log.File)
	assert.True(t, cfg.Output.Quote)
}

func TestLoadInvalidFile(t *testing.T) {
	path := writeConfig(t, "log: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "log.level", envKey("COMPY_LOG_LEVEL"))
	assert.Equal(t, "log.to_file", envKey("COMPY_LOG_TO_FILE"))
	assert.Equal(t, "sysdb.root", envKey("COMPY_SYSDB_ROOT"))
}

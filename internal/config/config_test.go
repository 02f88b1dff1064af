package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-eml/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "eml.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// Tests in this file set environment variables, so they do not run in
// parallel.

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "", cfg.Log.File)
	assert.Equal(t, 64, cfg.Parse.MaxDepth)
	assert.Equal(t, 1<<20, cfg.Parse.MaxLineLength)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  file: /tmp/eml.log
parse:
  max_depth: 8
output:
  format: yaml
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/eml.log", cfg.Log.File)
	assert.Equal(t, 8, cfg.Parse.MaxDepth)
	assert.Equal(t, 1<<20, cfg.Parse.MaxLineLength)
	assert.Equal(t, "yaml", cfg.Output.Format)
}

func TestLoad_Env(t *testing.T) {
	path := writeConfig(t, "parse:\n  max_depth: 8\n")
	t.Setenv("EML_PARSE_MAX_DEPTH", "3")
	t.Setenv("EML_LOG_LEVEL", "error")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Parse.MaxDepth)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = config.Load(writeConfig(t, "output:\n  format: xml\n"))
	assert.ErrorContains(t, err, "output.format")
}

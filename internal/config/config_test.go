package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for config:
// - Missing config file loads pure defaults
// - A config file overrides defaults and keeps the rest
// - Environment variables override the config file
// - Validation rejects impossible values
// Env override tests mutate the process environment, so they do not run in
// parallel.

// Test: a directory without .symgold loads defaults
func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Contains(t, cfg.Paths.Code, "**/*.rs")
	assert.Contains(t, cfg.Paths.Ignore, "node_modules/**")
	assert.Equal(t, ".symbols", cfg.Golden.Suffix)
	assert.Equal(t, 4, cfg.Verify.Workers)
	assert.Equal(t, 1024, cfg.Verify.CacheSize)
	assert.Equal(t, 500, cfg.Verify.DebounceMs)
}

// Test: a partial config file overrides only what it sets
func TestLoad_ConfigFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
paths:
  code:
    - "src/**/*.rs"
golden:
  suffix: ".golden"
verify:
  workers: 8
`)

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, []string{"src/**/*.rs"}, cfg.Paths.Code)
	assert.Equal(t, ".golden", cfg.Golden.Suffix)
	assert.Equal(t, 8, cfg.Verify.Workers)
	assert.Equal(t, 1024, cfg.Verify.CacheSize)
}

// Test: environment variables beat the config file
func TestLoad_EnvOverride(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `
verify:
  workers: 8
`)

	t.Setenv("SYMGOLD_VERIFY_WORKERS", "2")
	t.Setenv("SYMGOLD_GOLDEN_SUFFIX", ".expected")

	cfg, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Verify.Workers)
	assert.Equal(t, ".expected", cfg.Golden.Suffix)
}

// Test: malformed YAML is fatal
func TestLoad_MalformedFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "paths: [not: closed\n")

	_, err := Load(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())

	noCode := Default()
	noCode.Paths.Code = nil
	assert.Error(t, noCode.Validate())

	noGolden := Default()
	noGolden.Golden.Suffix = ""
	assert.Error(t, noGolden.Validate())

	badWorkers := Default()
	badWorkers.Verify.Workers = 0
	assert.Error(t, badWorkers.Validate())

	badDebounce := Default()
	badDebounce.Verify.DebounceMs = -1
	assert.Error(t, badDebounce.Validate())
}

func writeConfig(t *testing.T, root, content string) {
	t.Helper()
	dir := filepath.Join(root, ".symgold")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(content), 0o644))
}

package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, path, err := LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, "generic", cfg.Dialect)
	assert.Nil(t, cfg.QuoteIdentifiers)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel())
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, `
dialect: postgres
quote_identifiers: false
database:
  url: postgres://u:p@localhost/app
log:
  level: debug
`)

	cfg, got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, "postgres", cfg.Dialect)
	require.NotNil(t, cfg.QuoteIdentifiers)
	assert.False(t, *cfg.QuoteIdentifiers)
	assert.Equal(t, "postgres://u:p@localhost/app", cfg.Database.URL)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gosequel.yaml")
	writeFile(t, path, "dialect: mysql\n")
	t.Setenv("GOSEQUEL_DIALECT", "sqlite")
	t.Setenv("GOSEQUEL_DATABASE_URL", ":memory:")
	t.Setenv("GOSEQUEL_QUOTE_IDENTIFIERS", "true")

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Dialect)
	assert.Equal(t, ":memory:", cfg.Database.URL)
	require.NotNil(t, cfg.QuoteIdentifiers)
	assert.True(t, *cfg.QuoteIdentifiers)
}

func TestWalkForConfig(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Empty(t, walkForConfig(nested))

	writeFile(t, filepath.Join(root, "a", "gosequel.yml"), "dialect: sqlite\n")
	assert.Equal(t, filepath.Join(root, "a", "gosequel.yml"), walkForConfig(nested))

	// A repository boundary below the file stops the walk.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "b", ".git"), 0o755))
	assert.Empty(t, walkForConfig(nested))
}

func TestLogLevelFallback(t *testing.T) {
	t.Parallel()
	cfg := &Config{Log: LogConfig{Level: "chatty"}}
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel())
}

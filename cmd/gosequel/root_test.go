package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the command tree against an isolated config file.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gosequel.yaml")
	writeFile(t, path, "dialect: generic\n")

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", path}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	t.Parallel()
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "gosequel", cmd.Use)

	for _, name := range []string{"sql", "repl", "config"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "command %s should exist", name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	dialect := cmd.PersistentFlags().Lookup("dialect")
	require.NotNil(t, dialect)
	assert.Equal(t, "d", dialect.Shorthand)

	for _, name := range []string{"config", "quote", "db"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}
}

func TestUnknownDialectFails(t *testing.T) {
	t.Parallel()
	_, err := runCLI(t, "--dialect", "oracle", "sql", "--from", "items")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dialect")
}

func TestConfigShow(t *testing.T) {
	t.Parallel()
	out, err := runCLI(t, "--dialect", "sqlite", "--db", "postgres://u:secret@h/app", "config", "show", "--source")
	require.NoError(t, err)
	assert.Contains(t, out, "Config file: ")
	assert.Contains(t, out, "dialect: sqlite")
	assert.Contains(t, out, "url: postgres://u:****@h/app")
	assert.NotContains(t, out, "secret")
}

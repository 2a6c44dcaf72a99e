package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	cmd := rootCmd()
	for _, path := range [][]string{
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "drop"},
		{"migrate", "version"},
		{"purge"},
	} {
		found, _, err := cmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], found.Name())
	}
}

func TestPurge_RequiresConfirmation(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "purge", "--config", "does-not-exist.yaml")
	assert.ErrorIs(t, err, errPurgeNotConfirmed)
}

func TestPurge_ReportsConfigError(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "purge", "--yes", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

func TestMigrate_ReportsInvalidConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))

	_, err := execute(t, "migrate", "version", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}

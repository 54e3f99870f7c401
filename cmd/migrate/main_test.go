package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestMigrateCommands(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_DSN", filepath.Join(t.TempDir(), "migrate.db"))
	t.Setenv("LOG_LEVEL", "")

	assert.Contains(t, execute(t, "up", "--log-level", "error"), "Migrations applied successfully")
	assert.Contains(t, execute(t, "status", "--log-level", "error"), "Schema version: 2")
	assert.Contains(t, execute(t, "down", "--log-level", "error"), "Migrations rolled back successfully")
	assert.Contains(t, execute(t, "status", "--log-level", "error"), "Schema version: 1")
}

func TestMigrateCommands_InvalidConfig(t *testing.T) {
	t.Setenv("DB_DRIVER", "oracle")

	rootCmd.SetArgs([]string{"up", "--log-level", "error"})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DBDriver")
}

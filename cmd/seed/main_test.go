package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"bookstore/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSeed_Idempotent(t *testing.T) {
	cfg := config.Config{
		DBDriver:  "sqlite",
		DBDSN:     filepath.Join(t.TempDir(), "Data", "seed.db"),
		DBTimeout: time.Second,
		BaseID:    3001,
		LogLevel:  "info",
	}
	logger := zaptest.NewLogger(t)

	total, err := seed(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, 5, total)

	total, err = seed(context.Background(), cfg, logger)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
}

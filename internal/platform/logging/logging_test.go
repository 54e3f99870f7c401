package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesToFileAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookstore.log")

	logger, err := New("info", path)
	require.NoError(t, err)

	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))

	logger.Debug("hidden")
	logger.Info("book added")
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, `"msg":"book added"`)
	assert.Contains(t, out, `"app":"bookstore"`)
	assert.NotContains(t, out, "hidden")
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New("loud", "")
	require.Error(t, err)
}

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWithWriter(t *testing.T) {
	t.Setenv("PORTAL_DEBUG", "")

	t.Run("should write json at or above the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewWithWriter(Config{Level: "info", Encoding: "json"}, &buf)
		require.NoError(t, err)

		logger.Debug("hidden")
		logger.Info("task persisted", zap.String("task_id", "t1"))
		require.NoError(t, logger.Sync())

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
		assert.Equal(t, "task persisted", entry["msg"])
		assert.Equal(t, "t1", entry["task_id"])
		assert.Contains(t, entry, "timestamp")
		assert.NotContains(t, buf.String(), "hidden")
	})

	t.Run("should fall back to warn for an unknown level", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := NewWithWriter(Config{Level: "loud", Encoding: "console"}, &buf)
		require.NoError(t, err)

		logger.Info("quiet")
		logger.Warn("noisy")
		assert.NotContains(t, buf.String(), "quiet")
		assert.Contains(t, buf.String(), "noisy")
	})

	t.Run("should force debug when PORTAL_DEBUG is set", func(t *testing.T) {
		t.Setenv("PORTAL_DEBUG", "1")
		var buf bytes.Buffer
		logger, err := NewWithWriter(Config{Level: "error", Encoding: "console"}, &buf)
		require.NoError(t, err)

		logger.Debug("details")
		assert.Contains(t, buf.String(), "details")
	})
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	logger := zap.NewExample()
	assert.Same(t, logger, OrNop(logger))
}

// -- internal/observability/logger_test.go --
package observability

import (
	"path/filepath"
	"testing"

	"github.com/kynelabs/graphscope/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerFallsBackOnBadLevel(t *testing.T) {
	logger := NewLogger(config.LoggerConfig{Level: "nonsense", Format: "console", ServiceName: "test"})
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(-1), "debug must stay disabled on the info fallback")
	assert.True(t, logger.Core().Enabled(0))
}

func TestNewLoggerWithFileSink(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "graphscope.log")
	logger := NewLogger(config.LoggerConfig{
		Level:       "debug",
		Format:      "json",
		ServiceName: "test",
		LogFile:     logFile,
		MaxSize:     1,
	})
	require.NotNil(t, logger)

	logger.Info("file sink smoke")

	assert.FileExists(t, logFile)
}

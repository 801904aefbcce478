package logutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/status-im/arcadia/params"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, zapcore.InfoLevel, lvl)

	lvl, err = ParseLevel("DEBUG")
	require.NoError(t, err)
	require.Equal(t, zapcore.DebugLevel, lvl)

	_, err = ParseLevel("loud")
	require.Error(t, err)
}

func TestNewLoggerWritesRotatedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "arcadia.log")

	logger, err := NewLogger(params.LogConfig{
		Enabled:       true,
		Level:         "info",
		File:          file,
		MaxSize:       1,
		MaxBackups:    1,
		DisableStderr: true,
	})
	require.NoError(t, err)

	logger.Info("gallery started", zap.String("origin", "arcadia"))
	logger.Debug("not written")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"gallery started"`)
	require.Contains(t, string(data), `"origin":"arcadia"`)
	require.NotContains(t, string(data), "not written")
}

func TestNewLoggerDisabled(t *testing.T) {
	logger, err := NewLogger(params.LogConfig{Enabled: false, Level: "nonsense"})
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestOverrideRootLog(t *testing.T) {
	original := ZapLogger()
	defer OverrideRootLog(original)

	nop := zap.NewNop()
	OverrideRootLog(nop)
	require.Same(t, nop, ZapLogger())
}

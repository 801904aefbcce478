package logutils

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/status-im/arcadia/params"
)

var (
	zapLogger     *zap.Logger
	zapLoggerOnce sync.Once
	zapLoggerMu   sync.RWMutex
)

// ZapLogger returns the process-wide logger. Until OverrideRootLog is called
// it is a production logger writing to stderr.
func ZapLogger() *zap.Logger {
	zapLoggerOnce.Do(func() {
		zapLoggerMu.Lock()
		defer zapLoggerMu.Unlock()
		if zapLogger == nil {
			zapLogger = newStderrLogger(zapcore.InfoLevel)
		}
	})

	zapLoggerMu.RLock()
	defer zapLoggerMu.RUnlock()
	return zapLogger
}

// OverrideRootLog replaces the process-wide logger.
func OverrideRootLog(logger *zap.Logger) {
	zapLoggerOnce.Do(func() {})
	zapLoggerMu.Lock()
	defer zapLoggerMu.Unlock()
	zapLogger = logger
}

// ParseLevel converts a config level name into a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// NewLogger builds a logger from the log config. Output always goes to stderr
// unless disabled; when a file is configured it is rotated with lumberjack.
func NewLogger(cfg params.LogConfig) (*zap.Logger, error) {
	if !cfg.Enabled {
		return zap.NewNop(), nil
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encoder := newEncoder(cfg.Format)

	var cores []zapcore.Core
	if !cfg.DisableStderr {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level))
	}
	if cfg.File != "" {
		syncer := ZapSyncerWithRotation(FileOptions{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			Compress:   cfg.CompressRotated,
		})
		cores = append(cores, zapcore.NewCore(newEncoder("json"), syncer, level))
	}
	if len(cores) == 0 {
		return zap.NewNop(), nil
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func newEncoder(format string) zapcore.Encoder {
	if format == "json" {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func newStderrLogger(level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(newEncoder("console"), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

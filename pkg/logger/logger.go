// Package logger provides the shared logger for the location server binaries.
//
// Logs are structured JSON by default; setting UNSTRUCTURED_LOGS=true switches
// to a human-readable console format for local development.
package logger

import (
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu  sync.Mutex
	log *zap.SugaredLogger
)

// Initialize configures the process-wide logger. It is safe to call more
// than once; later calls replace the previous logger.
func Initialize() {
	mu.Lock()
	defer mu.Unlock()
	log = newLogger()
}

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if unstructuredLogs() {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if debugEnabled() {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	zl, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// zap only fails on an invalid config; fall back to a no-op logger.
		zl = zap.NewNop()
	}
	return zl.Sugar()
}

func unstructuredLogs() bool {
	v, err := strconv.ParseBool(os.Getenv("UNSTRUCTURED_LOGS"))
	return err == nil && v
}

func debugEnabled() bool {
	v, err := strconv.ParseBool(os.Getenv("DEBUG"))
	return err == nil && v
}

func get() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		log = newLogger()
	}
	return log
}

// Debugf logs a formatted message at debug level
func Debugf(format string, args ...any) { get().Debugf(format, args...) }

// Infof logs a formatted message at info level
func Infof(format string, args ...any) { get().Infof(format, args...) }

// Warnf logs a formatted message at warn level
func Warnf(format string, args ...any) { get().Warnf(format, args...) }

// Errorf logs a formatted message at error level
func Errorf(format string, args ...any) { get().Errorf(format, args...) }

// Fatalf logs a formatted message at fatal level and exits
func Fatalf(format string, args ...any) { get().Fatalf(format, args...) }

// Debug logs a message at debug level
func Debug(args ...any) { get().Debug(args...) }

// Info logs a message at info level
func Info(args ...any) { get().Info(args...) }

// Warn logs a message at warn level
func Warn(args ...any) { get().Warn(args...) }

// Error logs a message at error level
func Error(args ...any) { get().Error(args...) }

// Sync flushes any buffered log entries
func Sync() error {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		return nil
	}
	return log.Sync()
}

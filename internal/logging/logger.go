package logging

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger is silent until Initialize installs a real one
var logger = zap.NewNop()

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "MPDSWITCH_LOG_LEVEL"

// LogFileEnvVar redirects log output to a file. The TUI owns stdout, so
// interactive sessions should log here.
const LogFileEnvVar = "MPDSWITCH_LOG_FILE"

// Initialize creates a new logger with the specified level writing to path.
// Empty arguments fall back to MPDSWITCH_LOG_LEVEL and MPDSWITCH_LOG_FILE.
// With no level at all, logging is disabled (silent mode). With no path,
// output goes to stderr.
func Initialize(level, path string) error {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if path == "" {
		path = os.Getenv(LogFileEnvVar)
	}

	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		// Unknown level - use info when explicitly set to something
		zapLevel = zapcore.InfoLevel
	}

	output := "stderr"
	if path != "" {
		output = path
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if path == "" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	built, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built

	return nil
}

// InitializeFromEnv initializes the logger from the environment only
func InitializeFromEnv() error {
	return Initialize("", "")
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	return logger
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogRequest logs an outgoing backend request
func LogRequest(requestID, method, path string) {
	Debug("Backend request",
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
	)
}

// LogResponse logs a backend response
func LogResponse(requestID, path string, statusCode, size int, elapsed time.Duration) {
	Debug("Backend response",
		zap.String("request_id", requestID),
		zap.String("path", path),
		zap.Int("status_code", statusCode),
		zap.Int("length", size),
		zap.Duration("elapsed", elapsed),
	)
}

// LogTransition logs one applied session event
func LogTransition(event, current, status string, busy bool) {
	Info("Session event",
		zap.String("event", event),
		zap.String("current", current),
		zap.Bool("busy", busy),
		zap.String("status", status),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

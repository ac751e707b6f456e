// Package log provides functionality for logging commands and errors
package log

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"astroscope/pkg/model"
)

// Fields carries structured key/value pairs attached to a log entry.
type Fields map[string]interface{}

// Logger writes structured entries to command, error, and info log files.
// Commands issued by the user, failures, and general application flow each
// get their own file so they can be inspected independently.
type Logger struct {
	commandLogger *zap.Logger
	errorLogger   *zap.Logger
	infoLogger    *zap.Logger
	commandFile   *os.File
	errorFile     *os.File
	infoFile      *os.File
	level         LogLevel
}

// NewLogger creates a new Logger instance writing to the log folder and file
// names from the configuration. Messages above the given level are dropped.
func NewLogger(cfg *model.Config, level LogLevel) (*Logger, error) {
	// Create log directory if it doesn't exist
	if err := os.MkdirAll(cfg.LogFolder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	commandFile, err := openLogFile(filepath.Join(cfg.LogFolder, cfg.CommandLog))
	if err != nil {
		return nil, fmt.Errorf("failed to open command log file: %w", err)
	}

	errorFile, err := openLogFile(filepath.Join(cfg.LogFolder, cfg.ErrorLog))
	if err != nil {
		commandFile.Close()
		return nil, fmt.Errorf("failed to open error log file: %w", err)
	}

	infoFile, err := openLogFile(filepath.Join(cfg.LogFolder, cfg.InfoLog))
	if err != nil {
		commandFile.Close()
		errorFile.Close()
		return nil, fmt.Errorf("failed to open info log file: %w", err)
	}

	return &Logger{
		commandLogger: newZapLogger(commandFile, zapcore.InfoLevel),
		errorLogger:   newZapLogger(errorFile, zapcore.WarnLevel),
		infoLogger:    newZapLogger(infoFile, zapcore.DebugLevel),
		commandFile:   commandFile,
		errorFile:     errorFile,
		infoFile:      infoFile,
		level:         level,
	}, nil
}

// openLogFile opens a log file for appending, creating it if necessary.
func openLogFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

// newZapLogger builds a JSON-encoding zap logger writing to the given file.
func newZapLogger(file *os.File, level zapcore.Level) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(file),
		level,
	)
	return zap.New(core)
}

// Command logs a user command to the command log file.
func (l *Logger) Command(_ context.Context, message string, fields Fields) {
	l.commandLogger.Info(message, fieldsToZap(fields)...)
}

// Error logs an error message to the error log file.
func (l *Logger) Error(_ context.Context, message string, fields Fields) {
	if l.level < LevelError {
		return
	}
	l.errorLogger.Error(message, fieldsToZap(fields)...)
}

// Warn logs a warning message to the error log file.
func (l *Logger) Warn(_ context.Context, message string, fields Fields) {
	if l.level < LevelWarn {
		return
	}
	l.errorLogger.Warn(message, fieldsToZap(fields)...)
}

// Info logs an informational message to the info log file.
func (l *Logger) Info(_ context.Context, message string, fields Fields) {
	if l.level < LevelInfo {
		return
	}
	l.infoLogger.Info(message, fieldsToZap(fields)...)
}

// Debug logs a debug message to the info log file.
func (l *Logger) Debug(_ context.Context, message string, fields Fields) {
	if l.level < LevelDebug {
		return
	}
	l.infoLogger.Debug(message, fieldsToZap(fields)...)
}

// Close flushes buffered entries and closes all log files.
func (l *Logger) Close() error {
	_ = l.commandLogger.Sync()
	_ = l.errorLogger.Sync()
	_ = l.infoLogger.Sync()

	if err := l.commandFile.Close(); err != nil {
		return fmt.Errorf("failed to close command log file: %w", err)
	}
	if err := l.errorFile.Close(); err != nil {
		return fmt.Errorf("failed to close error log file: %w", err)
	}
	if err := l.infoFile.Close(); err != nil {
		return fmt.Errorf("failed to close info log file: %w", err)
	}
	return nil
}

// fieldsToZap converts Fields into zap fields.
func fieldsToZap(fields Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	zapFields := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		zapFields = append(zapFields, zap.Any(key, value))
	}
	return zapFields
}

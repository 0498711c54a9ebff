// Package logger provides structured logging for the calibration pipeline.
// The Logger interface decouples callers from the underlying implementation;
// the default implementation is backed by zap with a JSON encoder.
package logger

import (
	"context"

	"github.com/vaultrisk/calibration/pkg/constants"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields is a set of key-value pairs attached to a log entry.
type Fields map[string]interface{}

// Logger defines the interface for structured logging.
type Logger interface {
	// Debug logs a debug message
	Debug(ctx context.Context, message string, fields ...Fields)

	// Info logs an informational message
	Info(ctx context.Context, message string, fields ...Fields)

	// Warn logs a warning message
	Warn(ctx context.Context, message string, fields ...Fields)

	// Error logs an error message
	Error(ctx context.Context, message string, err error, fields ...Fields)

	// Fatal logs a fatal message and exits the application
	Fatal(ctx context.Context, message string, err error, fields ...Fields)

	// WithComponent creates a child logger for a specific component
	WithComponent(component string) Logger
}

// ================================================================================
// Zap Implementation
// ================================================================================

type zapLogger struct {
	*zap.Logger
}

// NewZapLogger creates a Logger backed by zap. Level is one of
// debug|info|warn|error; unknown values fall back to info.
func NewZapLogger(level string) (Logger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig = encoderConfig
	cfg.Level = zap.NewAtomicLevelAt(parsed)

	base, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, err
	}

	return &zapLogger{base}, nil
}

// NewDefaultLogger creates a logger with default settings (stdout, info level).
func NewDefaultLogger() Logger {
	l, err := NewZapLogger("info")
	if err != nil {
		return NewNoopLogger()
	}
	return l
}

func (l *zapLogger) Debug(ctx context.Context, msg string, fields ...Fields) {
	l.Logger.Debug(msg, l.convertFields(ctx, fields...)...)
}

func (l *zapLogger) Info(ctx context.Context, msg string, fields ...Fields) {
	l.Logger.Info(msg, l.convertFields(ctx, fields...)...)
}

func (l *zapLogger) Warn(ctx context.Context, msg string, fields ...Fields) {
	l.Logger.Warn(msg, l.convertFields(ctx, fields...)...)
}

func (l *zapLogger) Error(ctx context.Context, msg string, err error, fields ...Fields) {
	allFields := append(fields, Fields{"error": err})
	l.Logger.Error(msg, l.convertFields(ctx, allFields...)...)
}

func (l *zapLogger) Fatal(ctx context.Context, msg string, err error, fields ...Fields) {
	allFields := append(fields, Fields{"error": err})
	l.Logger.Fatal(msg, l.convertFields(ctx, allFields...)...)
}

func (l *zapLogger) WithComponent(component string) Logger {
	return &zapLogger{l.Logger.With(zap.String("component", component))}
}

func (l *zapLogger) convertFields(ctx context.Context, fields ...Fields) []zap.Field {
	zapFields := make([]zap.Field, 0)
	if ctx != nil {
		if runID, ok := ctx.Value(constants.ContextKeyRunID).(string); ok {
			zapFields = append(zapFields, zap.String("run_id", runID))
		}
	}

	for _, f := range fields {
		for k, v := range f {
			if err, ok := v.(error); ok {
				zapFields = append(zapFields, zap.NamedError(k, err))
				continue
			}
			zapFields = append(zapFields, zap.Any(k, v))
		}
	}

	return zapFields
}

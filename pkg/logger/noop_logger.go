package logger

import "context"

// noopLogger discards all log entries. Used in tests and as a safe fallback.
type noopLogger struct{}

// NewNoopLogger returns a Logger that does nothing.
func NewNoopLogger() Logger {
	return &noopLogger{}
}

func (n *noopLogger) Debug(ctx context.Context, message string, fields ...Fields)            {}
func (n *noopLogger) Info(ctx context.Context, message string, fields ...Fields)             {}
func (n *noopLogger) Warn(ctx context.Context, message string, fields ...Fields)             {}
func (n *noopLogger) Error(ctx context.Context, message string, err error, fields ...Fields) {}
func (n *noopLogger) Fatal(ctx context.Context, message string, err error, fields ...Fields) {}
func (n *noopLogger) WithComponent(component string) Logger                                  { return n }

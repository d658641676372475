package logger

import (
	"sync/atomic"

	"github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
)

// NoopLogger discards every entry. Used by tests and the migrate tool's quiet mode.
type NoopLogger struct {
	level atomic.Int32
}

// NewNoopLogger creates a new no-op logger
func NewNoopLogger() core.Logger {
	l := &NoopLogger{}
	l.level.Store(int32(core.LogLevelInfo))
	return l
}

// SetLevel sets the minimum log level to output
func (l *NoopLogger) SetLevel(level core.LogLevel) {
	l.level.Store(int32(level))
}

// GetLevel gets the current log level
func (l *NoopLogger) GetLevel() core.LogLevel {
	return core.LogLevel(l.level.Load())
}

func (l *NoopLogger) Debug(string, map[string]any) {}

func (l *NoopLogger) Info(string, map[string]any) {}

func (l *NoopLogger) Warn(string, map[string]any) {}

func (l *NoopLogger) Error(string, map[string]any) {}

// Flush is a no-op
func (l *NoopLogger) Flush() error {
	return nil
}

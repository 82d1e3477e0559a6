// Package logging is a thin, leveled logging interface threaded through
// every credential provider, backed by logrus the way the rest of the host
// SDK logs.
package logging

import (
	"github.com/sirupsen/logrus"
)

// Level is a logging severity.
type Level int

const (
	// Debug is the most verbose level: per-request metadata fetches,
	// cache hits, single-flight joins.
	Debug Level = iota
	// Info covers provider selection and lifecycle events.
	Info
	// Warn covers recoverable conditions, e.g. an IMDSv2 token request
	// falling back to IMDSv1.
	Warn
	// Error covers provider failures.
	Error
)

// Logger is the logging interface used throughout this module. Fields
// attached via WithFields are carried by every subsequent call on the
// returned Logger.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	WithFields(fields map[string]any) Logger
}

// StandardLogger is the default Logger implementation, backed by logrus.
type StandardLogger struct {
	entry *logrus.Entry
}

// New returns a StandardLogger writing to logrus's standard logger.
func New() *StandardLogger {
	return &StandardLogger{entry: logrus.NewEntry(logrus.StandardLogger())}
}

// NewWithLogger wraps an existing *logrus.Logger, so callers that already
// configure logrus (output, formatter, level) for the rest of their process
// can share that configuration with this module.
func NewWithLogger(l *logrus.Logger) *StandardLogger {
	return &StandardLogger{entry: logrus.NewEntry(l)}
}

// Debug implements Logger.
func (l *StandardLogger) Debug(format string, args ...any) { l.entry.Debugf(format, args...) }

// Info implements Logger.
func (l *StandardLogger) Info(format string, args ...any) { l.entry.Infof(format, args...) }

// Warn implements Logger.
func (l *StandardLogger) Warn(format string, args ...any) { l.entry.Warnf(format, args...) }

// Error implements Logger.
func (l *StandardLogger) Error(format string, args ...any) { l.entry.Errorf(format, args...) }

// WithFields implements Logger.
func (l *StandardLogger) WithFields(fields map[string]any) Logger {
	return &StandardLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// NoOpLogger discards everything. It is the default Logger in a
// provider.Context that was not given one explicitly.
type NoOpLogger struct{}

// NewNoOpLogger returns a Logger that discards all output.
func NewNoOpLogger() NoOpLogger { return NoOpLogger{} }

func (NoOpLogger) Debug(string, ...any)           {}
func (NoOpLogger) Info(string, ...any)            {}
func (NoOpLogger) Warn(string, ...any)            {}
func (NoOpLogger) Error(string, ...any)           {}
func (n NoOpLogger) WithFields(map[string]any) Logger { return n }

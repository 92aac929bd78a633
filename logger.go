package datasrc

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
)

// Logger is the interface for logging in datasrc.
// Users can provide custom logger implementations.
type Logger interface {
	// Debug logs a debug message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error message with optional fields
	Error(msg string, fields ...Field)
}

// defaultLogger is the default logger implementation using standard library log.
type defaultLogger struct {
	logger *log.Logger
}

// NewDefaultLogger creates a new default logger that writes to stderr.
func NewDefaultLogger() Logger {
	return &defaultLogger{
		logger: log.New(os.Stderr, "[datasrc] ", log.LstdFlags),
	}
}

func (l *defaultLogger) Debug(msg string, fields ...Field) {
	l.logger.Printf("[DEBUG] %s %s", msg, formatFields(fields))
}

func (l *defaultLogger) Info(msg string, fields ...Field) {
	l.logger.Printf("[INFO] %s %s", msg, formatFields(fields))
}

func (l *defaultLogger) Warn(msg string, fields ...Field) {
	l.logger.Printf("[WARN] %s %s", msg, formatFields(fields))
}

func (l *defaultLogger) Error(msg string, fields ...Field) {
	l.logger.Printf("[ERROR] %s %s", msg, formatFields(fields))
}

// noopLogger is a logger that does nothing. It is the default for Data.
type noopLogger struct{}

// NewNoopLogger creates a logger that discards all log messages.
func NewNoopLogger() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(msg string, fields ...Field) {}
func (l *noopLogger) Info(msg string, fields ...Field)  {}
func (l *noopLogger) Warn(msg string, fields ...Field)  {}
func (l *noopLogger) Error(msg string, fields ...Field) {}

// slogLogger forwards to a *slog.Logger, turning fields into attributes.
type slogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger adapts a *slog.Logger. A nil logger uses slog.Default().
func NewSlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return &slogLogger{logger: logger}
}

func (l *slogLogger) log(level slog.Level, msg string, fields []Field) {
	attrs := make([]slog.Attr, 0, len(fields))
	for _, f := range fields {
		attrs = append(attrs, slog.Any(f.Key, f.Value))
	}
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

func (l *slogLogger) Debug(msg string, fields ...Field) { l.log(slog.LevelDebug, msg, fields) }
func (l *slogLogger) Info(msg string, fields ...Field)  { l.log(slog.LevelInfo, msg, fields) }
func (l *slogLogger) Warn(msg string, fields ...Field)  { l.log(slog.LevelWarn, msg, fields) }
func (l *slogLogger) Error(msg string, fields ...Field) { l.log(slog.LevelError, msg, fields) }

// formatFields formats fields for logging.
func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("{")
	for i, field := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", field.Key, field.Value)
	}
	b.WriteString("}")

	return b.String()
}

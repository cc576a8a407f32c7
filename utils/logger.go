// Package utils holds small cross-cutting helpers shared by the kernel
// packages — currently just structured logging, in the teacher's style.
package utils

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger with the kernel's default configuration.
type Logger struct {
	*logrus.Logger
}

// Fields represents structured log fields.
type Fields map[string]interface{}

var defaultLogger *Logger

func init() {
	defaultLogger = NewLogger()
}

// NewLogger creates a new logger instance writing JSON to stdout, level
// configured via LOG_LEVEL (default info).
func NewLogger() *Logger {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	logger.SetOutput(os.Stdout)

	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	return &Logger{Logger: logger}
}

// GetLogger returns the process-wide default logger.
func GetLogger() *Logger { return defaultLogger }

func (l *Logger) WithFields(fields Fields) *logrus.Entry {
	return l.Logger.WithFields(logrus.Fields(fields))
}

func (l *Logger) WithContext(ctx context.Context) *logrus.Entry {
	return l.Logger.WithContext(ctx)
}

func (l *Logger) WithError(err error) *logrus.Entry {
	return l.Logger.WithError(err)
}

func Debug(args ...interface{}) { defaultLogger.Debug(args...) }
func Info(args ...interface{})  { defaultLogger.Info(args...) }
func Warn(args ...interface{})  { defaultLogger.Warn(args...) }
func Error(args ...interface{}) { defaultLogger.Error(args...) }

func Infof(format string, args ...interface{})  { defaultLogger.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { defaultLogger.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { defaultLogger.Errorf(format, args...) }

func WithFields(fields Fields) *logrus.Entry        { return defaultLogger.WithFields(fields) }
func WithContext(ctx context.Context) *logrus.Entry { return defaultLogger.WithContext(ctx) }
func WithError(err error) *logrus.Entry             { return defaultLogger.WithError(err) }

// Audit logs a kernel audit event: what action, on what resource, plus
// caller-supplied context fields (company, period, user).
func Audit(action, resource string, resourceID interface{}, fields Fields) {
	merged := Fields{
		"action":      action,
		"resource":    resource,
		"resource_id": resourceID,
	}
	for k, v := range fields {
		merged[k] = v
	}
	WithFields(merged).Info("audit event")
}

// Performance logs a slow-operation warning once duration crosses 1s,
// otherwise a debug-level timing entry.
func Performance(operation string, duration time.Duration, fields Fields) {
	merged := Fields{
		"operation":   operation,
		"duration_ms": duration.Milliseconds(),
	}
	for k, v := range fields {
		merged[k] = v
	}
	if duration > time.Second {
		WithFields(merged).Warn("slow operation")
	} else {
		WithFields(merged).Debug("operation timing")
	}
}

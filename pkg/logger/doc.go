// Package logger builds log/slog loggers with environment-aware
// defaults: human-readable text in development, JSON in production.
package logger

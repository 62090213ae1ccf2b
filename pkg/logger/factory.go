package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/guideshare/guideshare/pkg/environment"
)

// Format represents logger output format.
type Format string

const (
	// FormatJSON outputs structured logs for production aggregation.
	FormatJSON Format = "json"
	// FormatText outputs human-readable logs for development.
	FormatText Format = "text"
)

type config struct {
	level   slog.Level
	format  Format
	output  io.Writer
	service string
}

// Option configures logger creation.
type Option func(*config)

func WithLevel(l slog.Level) Option {
	return func(c *config) { c.level = l }
}

func WithFormat(f Format) Option {
	return func(c *config) {
		if f == FormatJSON || f == FormatText {
			c.format = f
		}
	}
}

// WithOutput sets a custom output destination, ignoring nil writers.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithService tags every record with the service name.
func WithService(name string) Option {
	return func(c *config) { c.service = name }
}

// WithEnvironment applies environment-appropriate defaults: text and
// debug level for development, JSON and info level otherwise.
func WithEnvironment(env environment.Environment) Option {
	return func(c *config) {
		if env == environment.Development {
			c.level = slog.LevelDebug
			c.format = FormatText
			return
		}
		c.level = slog.LevelInfo
		c.format = FormatJSON
	}
}

// New creates a configured slog.Logger. Defaults are production-safe:
// JSON output at info level.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		format: FormatJSON,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}

	var handler slog.Handler
	if cfg.format == FormatText {
		handler = slog.NewTextHandler(cfg.output, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(cfg.output, handlerOpts)
	}

	if cfg.service != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("service", cfg.service)})
	}

	return slog.New(handler)
}

// SetAsDefault installs the logger as the process-wide default.
func SetAsDefault(l *slog.Logger) {
	slog.SetDefault(l)
}

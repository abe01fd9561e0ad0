// Package observability provides structured logging, metrics and health
// checks for the todo application.
package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ServiceName is attached to every log record.
const ServiceName = "todo"

// LogFormat selects the slog handler.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"
)

// LogLevel is the minimum level written.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogConfig configures NewLogger.
type LogConfig struct {
	Level  LogLevel
	Format LogFormat
	// Output defaults to os.Stderr.
	Output         io.Writer
	AddSource      bool
	ServiceVersion string
}

// DefaultLogConfig is used for local runs.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:          LogLevelInfo,
		Format:         LogFormatText,
		Output:         os.Stderr,
		ServiceVersion: "dev",
	}
}

// NewLogger builds a slog logger that stamps service, version and the
// correlation id carried in the record's context.
func NewLogger(cfg LogConfig) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{
		Level:     cfg.Level.slogLevel(),
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	switch cfg.Format {
	case LogFormatJSON:
		handler = slog.NewJSONHandler(cfg.Output, opts)
	default:
		handler = slog.NewTextHandler(cfg.Output, opts)
	}

	attrs := []slog.Attr{slog.String("service", ServiceName)}
	if cfg.ServiceVersion != "" {
		attrs = append(attrs, slog.String("version", cfg.ServiceVersion))
	}
	return slog.New(&scopeHandler{Handler: handler, fixed: attrs})
}

// LoggerFromEnv builds a logger from base, overridden by the environment:
//
//	APP_ENV=production  JSON output with source locations
//	TODO_LOG_LEVEL      debug, info, warn, error
//	TODO_LOG_FORMAT     text, json
func LoggerFromEnv(base LogConfig) *slog.Logger {
	cfg := base
	if os.Getenv("APP_ENV") == "production" {
		cfg.Format = LogFormatJSON
		cfg.AddSource = true
	}
	if level := os.Getenv("TODO_LOG_LEVEL"); level != "" {
		cfg.Level = LogLevel(strings.ToLower(level))
	}
	if format := os.Getenv("TODO_LOG_FORMAT"); format != "" {
		cfg.Format = LogFormat(strings.ToLower(format))
	}
	return NewLogger(cfg)
}

// slogLevel maps l onto a slog level, falling back to info for unknown names.
func (l LogLevel) slogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// scopeHandler stamps fixed service attributes and the Scope of the record's
// context onto every record.
type scopeHandler struct {
	slog.Handler
	fixed []slog.Attr
}

func (h *scopeHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(h.fixed...)
	r.AddAttrs(ScopeFrom(ctx).attrs()...)
	return h.Handler.Handle(ctx, r)
}

func (h *scopeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &scopeHandler{Handler: h.Handler.WithAttrs(attrs), fixed: h.fixed}
}

func (h *scopeHandler) WithGroup(name string) slog.Handler {
	return &scopeHandler{Handler: h.Handler.WithGroup(name), fixed: h.fixed}
}

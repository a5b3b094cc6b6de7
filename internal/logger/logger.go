package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
)

type Config struct {
	debug  bool
	format string
	writer io.Writer
	quiet  bool
}

type Option func(*Config)

// WithDebug sets the level of the logger to debug.
func WithDebug() Option {
	return func(o *Config) {
		o.debug = true
	}
}

// WithFormat sets the format of the logger (text or json).
func WithFormat(format string) Option {
	return func(o *Config) {
		o.format = format
	}
}

// WithWriter adds a second destination, usually a log file.
func WithWriter(w io.Writer) Option {
	return func(o *Config) {
		o.writer = w
	}
}

// WithQuiet suppresses output to stderr. The TUI owns the terminal.
func WithQuiet() Option {
	return func(o *Config) {
		o.quiet = true
	}
}

// New builds a logger fanning out to stderr and the optional writer.
// With neither, records are discarded.
func New(opts ...Option) *slog.Logger {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}

	level := slog.LevelInfo
	if cfg.debug {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.debug,
	}

	var handlers []slog.Handler
	if !cfg.quiet {
		handlers = append(handlers, newHandler(os.Stderr, cfg.format, handlerOpts))
	}
	if cfg.writer != nil {
		handlers = append(handlers, newHandler(cfg.writer, cfg.format, handlerOpts))
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

func newHandler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

type contextKey struct{}

var defaultLogger = New(WithQuiet())

// WithLogger returns a new context with the given logger.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger stored in ctx, or a discarding logger.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return l
	}
	return defaultLogger
}

// WithValues returns a context whose logger carries the given attributes.
func WithValues(ctx context.Context, keyvals ...any) context.Context {
	if len(keyvals)%2 != 0 {
		keyvals = append(keyvals, "MISSING_VALUE")
	}
	return WithLogger(ctx, FromContext(ctx).With(keyvals...))
}

func Debug(ctx context.Context, msg string, tags ...any) {
	FromContext(ctx).DebugContext(ctx, msg, tags...)
}

func Info(ctx context.Context, msg string, tags ...any) {
	FromContext(ctx).InfoContext(ctx, msg, tags...)
}

func Warn(ctx context.Context, msg string, tags ...any) {
	FromContext(ctx).WarnContext(ctx, msg, tags...)
}

func Error(ctx context.Context, msg string, tags ...any) {
	FromContext(ctx).ErrorContext(ctx, msg, tags...)
}

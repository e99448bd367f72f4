package logger

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"time"

	"github.com/jrazmi/tasker/sdk/environment"
)

// TraceIDFn returns the trace id stored in a context.
type TraceIDFn func(ctx context.Context) string

// Logger is a wrapper around the standard slog.Logger.
type Logger struct {
	*slog.Logger
}

// options holds all configurable settings for the logger.
type options struct {
	level      slog.Level
	output     io.Writer
	addSource  bool
	format     string // "json" or "text"
	timeFormat string // "RFC3339", "Unix", "UnixMilli", or custom format
	traceIDFn  TraceIDFn
}

// Options is the exportable configuration struct
type Options struct {
	Level      string `env:"LOG_LEVEL" default:"INFO"`
	Output     string `env:"LOG_OUTPUT" default:"STDOUT"`
	Format     string `env:"LOG_FORMAT" default:"json"`
	TimeFormat string `env:"LOG_TIME_FORMAT" default:"RFC3339"`
	AddSource  bool   `env:"LOG_ADD_SOURCE" default:"false"`
}

// Option takes config option and returns formatted config
type Option func(*options)

func WithLevel(level string) Option {
	return func(o *options) {
		o.level = parseLevel(level)
	}
}

func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

func WithFormat(format string) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithTraceIDFn adds a trace_id attribute to every record logged with a
// context that carries one.
func WithTraceIDFn(fn TraceIDFn) Option {
	return func(o *options) {
		o.traceIDFn = fn
	}
}

func NewDefault(opts ...Option) *Logger {
	options := Options{
		Level:      "INFO",
		Output:     "STDOUT",
		Format:     "json",
		TimeFormat: time.RFC3339,
	}
	return newLogger(options, opts...)
}

// NewStdLogger adapts the logger for APIs that want a *log.Logger, such as
// http.Server.ErrorLog.
func NewStdLogger(logger *Logger, level slog.Level) *log.Logger {
	return slog.NewLogLogger(logger.Logger.Handler(), level)
}

func NewFromEnv(prefix string, opts ...Option) (*Logger, error) {
	var options Options
	if err := environment.ParseEnvTags(prefix, &options); err != nil {
		return nil, fmt.Errorf("parsing logger config: %w", err)
	}
	return newLogger(options, opts...), nil
}

func newLogger(cfg Options, opts ...Option) *Logger {
	options := &options{
		level:      parseLevel(cfg.Level),
		output:     parseOutput(cfg.Output),
		addSource:  cfg.AddSource,
		timeFormat: cfg.TimeFormat,
		format:     cfg.Format,
	}
	for _, opt := range opts {
		opt(options)
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     options.level,
		AddSource: options.addSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 && options.timeFormat != "" {
				return formatTime(a, options.timeFormat)
			}
			return a
		},
	}

	var handler slog.Handler
	switch options.format {
	case "text":
		handler = slog.NewTextHandler(options.output, handlerOpts)
	default:
		handler = slog.NewJSONHandler(options.output, handlerOpts)
	}

	if options.traceIDFn != nil {
		handler = &traceHandler{Handler: handler, traceIDFn: options.traceIDFn}
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

func formatTime(a slog.Attr, format string) slog.Attr {
	t := a.Value.Time()
	switch format {
	case "Unix":
		return slog.Int64(slog.TimeKey, t.Unix())
	case "UnixMilli":
		return slog.Int64(slog.TimeKey, t.UnixMilli())
	case "RFC3339Nano":
		return slog.String(slog.TimeKey, t.Format(time.RFC3339Nano))
	case "RFC3339":
		return slog.String(slog.TimeKey, t.Format(time.RFC3339))
	default:
		return slog.String(slog.TimeKey, t.Format(format))
	}
}

// traceHandler decorates records with the trace id found in the context.
type traceHandler struct {
	slog.Handler
	traceIDFn TraceIDFn
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if tid := h.traceIDFn(ctx); tid != "" {
			r.AddAttrs(slog.String("trace_id", tid))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithAttrs(attrs), traceIDFn: h.traceIDFn}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{Handler: h.Handler.WithGroup(name), traceIDFn: h.traceIDFn}
}

// InfoContextf logs an info message with formatting
func (l *Logger) InfoContextf(ctx context.Context, format string, args ...any) {
	l.InfoContext(ctx, fmt.Sprintf(format, args...))
}

// ErrorContextf logs an error message with formatting
func (l *Logger) ErrorContextf(ctx context.Context, format string, args ...any) {
	l.ErrorContext(ctx, fmt.Sprintf(format, args...))
}

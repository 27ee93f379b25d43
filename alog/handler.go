package alog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// LoggerOpt allows to initialise a logger with custom options.
type LoggerOpt func(h *multiHandler)

// WithHandler adds a slog.Handler to be logged to.
// You can set as many as you want.
func WithHandler(h slog.Handler) LoggerOpt {
	return func(m *multiHandler) {
		m.handlers = append(m.handlers, h)
	}
}

// WithLevel initialises the logger with a starting level.
// To change the level at runtime use Unwrap(logger).SetLevel(LevelInfo).
func WithLevel(level slog.Level) LoggerOpt {
	return func(m *multiHandler) {
		m.level.Set(level)
	}
}

// New returns a production ready logger.
//
// If no options are given it creates a default handler, logging JSON to Stderr.
// Otherwise, use WithHandler to set your own handlers.
func New(opts ...LoggerOpt) *slog.Logger {
	return slog.New(newMultiHandler(opts...))
}

// NewDevelopment returns a logger writing human-readable, colourised lines to Stderr.
func NewDevelopment() *slog.Logger {
	return New(
		WithLevel(slog.LevelDebug),
		WithHandler(newConsoleHandler(os.Stderr)),
	)
}

// NewNoop returns a logger that discards everything.
// Ideal as dependency in tests.
func NewNoop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newConsoleHandler(w io.Writer) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:       LevelDebug, // ignored, the level of multiHandler is used
		TimeFormat:  time.TimeOnly,
		ReplaceAttr: MapLogLevelsToName,
	})
}

// ParseLevel maps a configured level name to a slog.Level.
// Next to the slog names it knows the application's own levels.
func ParseLevel(name string) (slog.Level, error) {
	for level, levelName := range levelNames {
		if levelName == name {
			return level, nil
		}
	}

	var level slog.Level

	err := level.UnmarshalText([]byte(name))
	if err != nil {
		return slog.LevelInfo, errors.Join(ErrUnknownLevel, err)
	}

	return level, nil
}

var ErrUnknownLevel = errors.New("unknown log level")

func newMultiHandler(opts ...LoggerOpt) *multiHandler {
	handler := &multiHandler{
		level:    &slog.LevelVar{},
		handlers: []slog.Handler{},
	}
	handler.level.Set(slog.LevelInfo)

	for _, opt := range opts {
		opt(handler)
	}

	if len(handler.handlers) == 0 {
		handler.handlers = []slog.Handler{slog.NewJSONHandler(os.Stderr, getDefaultHandlerOptions())}
	}

	return handler
}

// multiHandler does not output anything itself.
// It enriches each record with trace information and the attributes from the context
// and passes it on to all its handlers.
type multiHandler struct {
	// level is the one level for all handlers.
	// The levels of individual handlers set via WithHandler are ignored.
	// It is shared with all copies made by WithAttrs and WithGroup.
	level *slog.LevelVar

	handlers []slog.Handler
}

var (
	_ slog.Handler    = (*multiHandler)(nil)
	_ LevelController = (*multiHandler)(nil)
)

func (h *multiHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	span := trace.SpanFromContext(ctx)

	record = record.Clone()
	record = addTraceAndSpanIDs(span, record)
	record.AddAttrs(FromContext(ctx)...)

	addRecordToSpan(span, record)

	var errs error

	for _, handler := range h.handlers {
		errs = errors.Join(errs, handler.Handle(ctx, record))
	}

	return errs
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}

	return &multiHandler{level: h.level, handlers: handlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}

	return &multiHandler{level: h.level, handlers: handlers}
}

// SetLevel changes the level for all handlers.
// Even the ones "copied" via any WithX method.
func (h *multiHandler) SetLevel(level slog.Level) {
	h.level.Set(level)
}

func (h *multiHandler) Level() slog.Level {
	return h.level.Level()
}

func addTraceAndSpanIDs(span trace.Span, record slog.Record) slog.Record {
	sCtx := span.SpanContext()

	if sCtx.HasTraceID() {
		record.AddAttrs(slog.String("traceID", sCtx.TraceID().String()))
	}

	if sCtx.HasSpanID() {
		record.AddAttrs(slog.String("spanID", sCtx.SpanID().String()))
	}

	return record
}

// addRecordToSpan makes the log line visible in the trace as an event.
func addRecordToSpan(span trace.Span, record slog.Record) {
	if !span.IsRecording() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("log.severity", record.Level.String()),
		attribute.String("log.message", record.Message),
	}

	record.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, attribute.String(a.Key, a.Value.String()))

		return true
	})

	span.AddEvent("log", trace.WithAttributes(attrs...))

	if record.Level >= slog.LevelError {
		span.SetStatus(codes.Error, record.Message)
	}
}

// LevelController offers control over the level of a logger at run time.
// Unwrap a logger to get access to it.
type LevelController interface {
	SetLevel(level slog.Level)
	Level() slog.Level
}

// Unwrap returns the LevelController of the given logger.
// In case the logger was not created by this package, it returns nil.
func Unwrap(logger Logger) LevelController { //nolint:ireturn // TestLogger and multiHandler are both valid
	if l, ok := logger.(*TestLogger); ok {
		return l
	}

	l, ok := logger.(*slog.Logger)
	if !ok {
		return nil
	}

	if h, ok := l.Handler().(*multiHandler); ok {
		return h
	}

	return nil
}

func getDefaultHandlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource:   true,
		Level:       nil, // ignored, the level of multiHandler is used
		ReplaceAttr: MapLogLevelsToName,
	}
}

// getDebugHandlerOptions keeps the output readable by dropping the source.
func getDebugHandlerOptions() *slog.HandlerOptions {
	opt := getDefaultHandlerOptions()
	opt.AddSource = false

	return opt
}

package alog_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

const (
	applicationMsg = "application message"
)

var (
	ctx          = context.Background()
	errSomething = errors.New("some error")
)

// newRecordedSpan starts a real span, which records all events added by the logger.
func newRecordedSpan(t *testing.T) (context.Context, func() sdktrace.ReadOnlySpan) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	newCtx, span := provider.Tracer("test").Start(ctx, "test")

	return newCtx, func() sdktrace.ReadOnlySpan {
		span.End()

		return recorder.Ended()[0]
	}
}

type failingHandler struct{}

var _ slog.Handler = (*failingHandler)(nil)

func (f failingHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (f failingHandler) Handle(_ context.Context, _ slog.Record) error {
	return errSomething
}

func (f failingHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return f
}

func (f failingHandler) WithGroup(_ string) slog.Handler {
	return f
}

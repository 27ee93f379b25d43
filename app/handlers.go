// Package app provides the use case pattern of the application layer
// and common decorators for use cases.
package app

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-arrower/classic-comedians/alog"
)

// Request can produce side effects and return data.
type Request[Req any, Res any] interface {
	H(ctx context.Context, req Req) (Res, error)
}

// Command produces side effects, e.g. mutate state.
type Command[C any] interface {
	H(ctx context.Context, cmd C) error
}

// Query does not produce side effects and returns data.
type Query[Q any, Res any] interface {
	H(ctx context.Context, query Q) (Res, error)
}

// RequestFunc is an adapter to use an ordinary function as Request or Query.
type RequestFunc[In any, Out any] func(ctx context.Context, in In) (Out, error)

func (f RequestFunc[In, Out]) H(ctx context.Context, in In) (Out, error) { //nolint:ireturn // valid use of generics
	return f(ctx, in)
}

// CommandFunc is an adapter to use an ordinary function as Command.
type CommandFunc[C any] func(ctx context.Context, cmd C) error

func (f CommandFunc[C]) H(ctx context.Context, cmd C) error {
	return f(ctx, cmd)
}

// Instrumentation bundles what the decorators need,
// so a context can decorate all its use cases the same way.
type Instrumentation struct {
	TraceProvider trace.TracerProvider
	MeterProvider metric.MeterProvider
	Logger        alog.Logger
	Validate      *validator.Validate
}

// NewInstrumentedRequest is a convenience helper for easy dependency setup.
// The order of decorators represents the order of calling:
// tracing, metrics, logging, validation and then the request itself.
func NewInstrumentedRequest[Req any, Res any](in Instrumentation, req Request[Req, Res]) Request[Req, Res] {
	return NewTracedRequest(in.TraceProvider,
		NewMeteredRequest(in.MeterProvider,
			NewLoggedRequest(in.Logger,
				NewValidatedRequest(in.Validate, req),
			),
		),
	)
}

// NewInstrumentedCommand is a convenience helper for easy dependency setup.
// The order of decorators is the same as for NewInstrumentedRequest.
func NewInstrumentedCommand[C any](in Instrumentation, cmd Command[C]) Command[C] {
	return NewTracedCommand(in.TraceProvider,
		NewMeteredCommand(in.MeterProvider,
			NewLoggedCommand(in.Logger,
				NewValidatedCommand(in.Validate, cmd),
			),
		),
	)
}

// NewInstrumentedQuery is a convenience helper for easy dependency setup.
// The order of decorators is the same as for NewInstrumentedRequest.
func NewInstrumentedQuery[Q any, Res any](in Instrumentation, query Query[Q, Res]) Query[Q, Res] {
	return NewTracedQuery(in.TraceProvider,
		NewMeteredQuery(in.MeterProvider,
			NewLoggedQuery(in.Logger,
				NewValidatedQuery(in.Validate, query),
			),
		),
	)
}

// useCaseName extracts a printable name from the input of a use case.
//
// For inputs defined in a Context the format is: contextName.packageName.structName,
// e.g. comedian.application.CreateComedianRequest.
// Otherwise, it falls back to packageName.structName.
func useCaseName(in any) string {
	typ := reflect.TypeOf(in)
	if typ == nil {
		return "<nil>"
	}

	// example: github.com/go-arrower/classic-comedians/contexts/comedian/internal/application
	// take string after /contexts/ and then take string before /internal/
	_, afterContexts, hasContext := strings.Cut(typ.PkgPath(), "/contexts/")
	if hasContext {
		if contextName, _, ok := strings.Cut(afterContexts, "/internal/"); ok {
			return fmt.Sprintf("%s.%T", contextName, in)
		}
	}

	return fmt.Sprintf("%T", in)
}

package app

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "comedians.application"

func NewTracedRequest[Req any, Res any](traceProvider trace.TracerProvider, req Request[Req, Res]) Request[Req, Res] {
	tracer := traceProvider.Tracer(tracerName)

	return RequestFunc[Req, Res](func(ctx context.Context, in Req) (Res, error) {
		var res Res

		err := traced(ctx, tracer, in, func(ctx context.Context) error {
			var err error
			res, err = req.H(ctx, in)

			return err //nolint:wrapcheck // decorate but not change anything
		})

		return res, err
	})
}

func NewTracedCommand[C any](traceProvider trace.TracerProvider, cmd Command[C]) Command[C] {
	tracer := traceProvider.Tracer(tracerName)

	return CommandFunc[C](func(ctx context.Context, in C) error {
		return traced(ctx, tracer, in, func(ctx context.Context) error {
			return cmd.H(ctx, in) //nolint:wrapcheck // decorate but not change anything
		})
	})
}

func NewTracedQuery[Q any, Res any](traceProvider trace.TracerProvider, query Query[Q, Res]) Query[Q, Res] {
	tracer := traceProvider.Tracer(tracerName)

	return RequestFunc[Q, Res](func(ctx context.Context, in Q) (Res, error) {
		var res Res

		err := traced(ctx, tracer, in, func(ctx context.Context) error {
			var err error
			res, err = query.H(ctx, in)

			return err //nolint:wrapcheck // decorate but not change anything
		})

		return res, err
	})
}

// traced runs the use case in its own span named "usecase".
func traced(ctx context.Context, tracer trace.Tracer, in any, run func(ctx context.Context) error) error {
	newCtx, span := tracer.Start(ctx, "usecase",
		trace.WithAttributes(attribute.String("command", useCaseName(in))),
	)
	defer span.End()

	err := run(newCtx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

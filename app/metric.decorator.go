package app

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "comedians.application"

func NewMeteredRequest[Req any, Res any](meterProvider metric.MeterProvider, req Request[Req, Res]) Request[Req, Res] {
	m := newUseCaseMeter(meterProvider)

	return RequestFunc[Req, Res](func(ctx context.Context, in Req) (Res, error) {
		var res Res

		err := m.measure(ctx, in, func() error {
			var err error
			res, err = req.H(ctx, in)

			return err //nolint:wrapcheck // decorate but not change anything
		})

		return res, err
	})
}

func NewMeteredCommand[C any](meterProvider metric.MeterProvider, cmd Command[C]) Command[C] {
	m := newUseCaseMeter(meterProvider)

	return CommandFunc[C](func(ctx context.Context, in C) error {
		return m.measure(ctx, in, func() error {
			return cmd.H(ctx, in) //nolint:wrapcheck // decorate but not change anything
		})
	})
}

func NewMeteredQuery[Q any, Res any](meterProvider metric.MeterProvider, query Query[Q, Res]) Query[Q, Res] {
	m := newUseCaseMeter(meterProvider)

	return RequestFunc[Q, Res](func(ctx context.Context, in Q) (Res, error) {
		var res Res

		err := m.measure(ctx, in, func() error {
			var err error
			res, err = query.H(ctx, in)

			return err //nolint:wrapcheck // decorate but not change anything
		})

		return res, err
	})
}

// useCaseMeter counts the calls of a use case and records their duration,
// labelled by the use case and whether it succeeded.
type useCaseMeter struct {
	counter  metric.Int64Counter
	duration metric.Float64Histogram
}

func newUseCaseMeter(meterProvider metric.MeterProvider) useCaseMeter {
	meter := meterProvider.Meter(meterName)

	// errors are ignored: the instruments returned are always usable, worst case no-op
	counter, _ := meter.Int64Counter("usecases", metric.WithDescription("number of executed use cases"))
	duration, _ := meter.Float64Histogram("usecases_duration_seconds", metric.WithDescription("duration of executed use cases"))

	return useCaseMeter{counter: counter, duration: duration}
}

func (m useCaseMeter) measure(ctx context.Context, in any, run func() error) error {
	start := time.Now()

	err := run()

	status := "success"
	if err != nil {
		status = "failure"
	}

	opt := metric.WithAttributes(
		attribute.String("command", useCaseName(in)),
		attribute.String("status", status),
	)

	m.counter.Add(ctx, 1, opt)
	m.duration.Record(ctx, time.Since(start).Seconds(), opt)

	return err
}

package app_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	noopMetric "go.opentelemetry.io/otel/metric/noop"

	"github.com/go-arrower/classic-comedians/alog"
	"github.com/go-arrower/classic-comedians/app"
)

func TestNewInstrumentedRequest(t *testing.T) {
	t.Parallel()

	t.Run("all decorators are called", func(t *testing.T) {
		t.Parallel()

		logger := alog.Test(t)
		traceProvider, recorder := newRecordingProvider()
		meterProvider, registry := newTestMeterProvider(t)

		handler := app.NewInstrumentedRequest(app.Instrumentation{
			TraceProvider: traceProvider,
			MeterProvider: meterProvider,
			Logger:        logger,
			Validate:      validator.New(),
		}, app.TestRequestHandler(func(ctx context.Context, _ structWithValidationTags) (response, error) {
			assert.True(t, app.PassedValidation(ctx))

			return response{Value: "done"}, nil
		}))

		res, err := handler.H(ctx, passingValidationValue)
		assert.NoError(t, err)
		assert.Equal(t, "done", res.Value)

		logger.Contains("request executed successfully")
		assert.Len(t, recorder.Ended(), 1)

		families, err := registry.Gather()
		require.NoError(t, err)
		assert.NotEmpty(t, families)
	})

	t.Run("validation errors are traced", func(t *testing.T) {
		t.Parallel()

		logger := alog.Test(t)
		traceProvider, recorder := newRecordingProvider()

		handler := app.NewInstrumentedRequest(app.Instrumentation{
			TraceProvider: traceProvider,
			MeterProvider: noopMetric.NewMeterProvider(),
			Logger:        logger,
		}, app.TestSuccessRequestHandler[structWithValidationTags, response]())

		_, err := handler.H(ctx, structWithValidationTags{})
		assert.Error(t, err)

		logger.Contains("failed to execute request")
		require.Len(t, recorder.Ended(), 1)
	})
}

func TestNewInstrumentedCommand(t *testing.T) {
	t.Parallel()

	logger := alog.Test(t)
	traceProvider, _ := newRecordingProvider()

	handler := app.NewInstrumentedCommand(app.Instrumentation{
		TraceProvider: traceProvider,
		MeterProvider: noopMetric.NewMeterProvider(),
		Logger:        logger,
	}, app.TestSuccessCommandHandler[request]())

	err := handler.H(ctx, request{})
	assert.NoError(t, err)
	logger.Contains("command executed successfully")
}

func TestNewInstrumentedQuery(t *testing.T) {
	t.Parallel()

	logger := alog.Test(t)
	traceProvider, _ := newRecordingProvider()

	handler := app.NewInstrumentedQuery(app.Instrumentation{
		TraceProvider: traceProvider,
		MeterProvider: noopMetric.NewMeterProvider(),
		Logger:        logger,
	}, app.TestFailureQueryHandler[request, response]())

	_, err := handler.H(ctx, request{})
	assert.ErrorIs(t, err, app.ErrUseCaseFailed)
	logger.Contains("failed to execute query")
}

package app

import (
	"context"
	"log/slog"

	"github.com/go-arrower/classic-comedians/alog"
)

func NewLoggedRequest[Req any, Res any](logger alog.Logger, req Request[Req, Res]) Request[Req, Res] {
	return RequestFunc[Req, Res](func(ctx context.Context, in Req) (Res, error) {
		var res Res

		err := logged(ctx, logger, "request", in, func(ctx context.Context) error {
			var err error
			res, err = req.H(ctx, in)

			return err //nolint:wrapcheck // decorate but not change anything
		})

		return res, err
	})
}

func NewLoggedCommand[C any](logger alog.Logger, cmd Command[C]) Command[C] {
	return CommandFunc[C](func(ctx context.Context, in C) error {
		return logged(ctx, logger, "command", in, func(ctx context.Context) error {
			return cmd.H(ctx, in) //nolint:wrapcheck // decorate but not change anything
		})
	})
}

func NewLoggedQuery[Q any, Res any](logger alog.Logger, query Query[Q, Res]) Query[Q, Res] {
	return RequestFunc[Q, Res](func(ctx context.Context, in Q) (Res, error) {
		var res Res

		err := logged(ctx, logger, "query", in, func(ctx context.Context) error {
			var err error
			res, err = query.H(ctx, in)

			return err //nolint:wrapcheck // decorate but not change anything
		})

		return res, err
	})
}

// logged writes a debug line before and after the use case of the given kind runs.
func logged(ctx context.Context, logger alog.Logger, kind string, in any, run func(ctx context.Context) error) error {
	name := slog.String("command", useCaseName(in))

	logger.DebugContext(ctx, "executing "+kind, name)

	err := run(ctx)
	if err != nil {
		logger.DebugContext(ctx, "failed to execute "+kind, name, alog.Error(err))

		return err
	}

	logger.DebugContext(ctx, kind+" executed successfully", name)

	return nil
}

package app

import (
	"context"

	"github.com/go-playground/validator/v10"

	ctx2 "github.com/go-arrower/classic-comedians/ctx"
)

const CtxValidated ctx2.CTXKey = "comedians.validated"

// PassedValidation is a helper giving you feedback, if a request passed validation of this decorator.
// Use it in case you want to ensure that this decorator was called before continuing with your business logic.
func PassedValidation(ctx context.Context) bool {
	if v, ok := ctx.Value(CtxValidated).(bool); ok {
		return v
	}

	return false
}

// NewValidatedRequest validates req by its struct tags before it reaches the request.
// The error returned on invalid input is of type validator.ValidationErrors.
// If validate is nil, a default validator is used.
func NewValidatedRequest[Req any, Res any](validate *validator.Validate, req Request[Req, Res]) Request[Req, Res] {
	validate = orDefaultValidator(validate)

	return RequestFunc[Req, Res](func(ctx context.Context, in Req) (Res, error) {
		if err := validate.Struct(in); err != nil {
			return *new(Res), err //nolint:wrapcheck // validation error is returned on purpose
		}

		return req.H(validated(ctx), in) //nolint:wrapcheck // decorate but not change anything
	})
}

func NewValidatedCommand[C any](validate *validator.Validate, cmd Command[C]) Command[C] {
	validate = orDefaultValidator(validate)

	return CommandFunc[C](func(ctx context.Context, in C) error {
		if err := validate.Struct(in); err != nil {
			return err //nolint:wrapcheck // validation error is returned on purpose
		}

		return cmd.H(validated(ctx), in) //nolint:wrapcheck // decorate but not change anything
	})
}

func NewValidatedQuery[Q any, Res any](validate *validator.Validate, query Query[Q, Res]) Query[Q, Res] {
	validate = orDefaultValidator(validate)

	return RequestFunc[Q, Res](func(ctx context.Context, in Q) (Res, error) {
		if err := validate.Struct(in); err != nil {
			return *new(Res), err //nolint:wrapcheck // validation error is returned on purpose
		}

		return query.H(validated(ctx), in) //nolint:wrapcheck // decorate but not change anything
	})
}

func orDefaultValidator(validate *validator.Validate) *validator.Validate {
	if validate == nil {
		return validator.New(validator.WithRequiredStructEnabled())
	}

	return validate
}

func validated(ctx context.Context) context.Context {
	return context.WithValue(ctx, CtxValidated, true)
}

package app

import (
	"context"
	"errors"
)

//
// This file contains convenience helpers you can use to easier test
// your calling code relying on this use case pattern.
//

var ErrUseCaseFailed = errors.New("usecase failed")

// TestRequestHandler turns f into a Request, e.g. to assert on the incoming request.
func TestRequestHandler[Req any, Res any](f func(ctx context.Context, req Req) (Res, error)) Request[Req, Res] {
	return RequestFunc[Req, Res](f)
}

// TestQueryHandler turns f into a Query.
func TestQueryHandler[Q any, Res any](f func(ctx context.Context, query Q) (Res, error)) Query[Q, Res] {
	return RequestFunc[Q, Res](f)
}

// TestCommandHandler turns f into a Command.
func TestCommandHandler[C any](f func(ctx context.Context, cmd C) error) Command[C] {
	return CommandFunc[C](f)
}

func TestSuccessRequestHandler[Req any, Res any]() Request[Req, Res] {
	return RequestFunc[Req, Res](func(context.Context, Req) (Res, error) {
		return *new(Res), nil
	})
}

func TestFailureRequestHandler[Req any, Res any]() Request[Req, Res] {
	return RequestFunc[Req, Res](func(context.Context, Req) (Res, error) {
		return *new(Res), ErrUseCaseFailed
	})
}

func TestSuccessCommandHandler[C any]() Command[C] {
	return CommandFunc[C](func(context.Context, C) error {
		return nil
	})
}

func TestFailureCommandHandler[C any]() Command[C] {
	return CommandFunc[C](func(context.Context, C) error {
		return ErrUseCaseFailed
	})
}

func TestSuccessQueryHandler[Q any, Res any]() Query[Q, Res] {
	return RequestFunc[Q, Res](func(context.Context, Q) (Res, error) {
		return *new(Res), nil
	})
}

func TestFailureQueryHandler[Q any, Res any]() Query[Q, Res] {
	return RequestFunc[Q, Res](func(context.Context, Q) (Res, error) {
		return *new(Res), ErrUseCaseFailed
	})
}

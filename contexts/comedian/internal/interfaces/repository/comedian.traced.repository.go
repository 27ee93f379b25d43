package repository

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/domain"
)

func NewTracedRepository(repo domain.Repository) *TracedRepository {
	return &TracedRepository{repo: repo}
}

// TracedRepository starts a span for each call, using the TracerProvider of the span in ctx.
type TracedRepository struct {
	repo domain.Repository
}

var _ domain.Repository = (*TracedRepository)(nil)

func (repo *TracedRepository) All(ctx context.Context) ([]domain.Comedian, error) {
	ctx, span := start(ctx, "All")
	defer span.End()

	comedians, err := repo.repo.All(ctx)

	return comedians, recordErr(span, err)
}

func (repo *TracedRepository) FindByID(ctx context.Context, id domain.ComedianID) (domain.Comedian, error) {
	ctx, span := start(ctx, "FindByID", attribute.Int("comedian_id", int(id)))
	defer span.End()

	comedian, err := repo.repo.FindByID(ctx, id)

	return comedian, recordErr(span, err)
}

func (repo *TracedRepository) Add(ctx context.Context, comedian domain.Comedian) (domain.Comedian, error) {
	ctx, span := start(ctx, "Add")
	defer span.End()

	comedian, err := repo.repo.Add(ctx, comedian)
	span.SetAttributes(attribute.Int("comedian_id", int(comedian.ID)))

	return comedian, recordErr(span, err)
}

func (repo *TracedRepository) Update(ctx context.Context, comedian domain.Comedian) error {
	ctx, span := start(ctx, "Update", attribute.Int("comedian_id", int(comedian.ID)))
	defer span.End()

	return recordErr(span, repo.repo.Update(ctx, comedian))
}

func (repo *TracedRepository) DeleteByID(ctx context.Context, id domain.ComedianID) error {
	ctx, span := start(ctx, "DeleteByID", attribute.Int("comedian_id", int(id)))
	defer span.End()

	return recordErr(span, repo.repo.DeleteByID(ctx, id))
}

func (repo *TracedRepository) Count(ctx context.Context) (int, error) {
	ctx, span := start(ctx, "Count")
	defer span.End()

	count, err := repo.repo.Count(ctx)

	return count, recordErr(span, err)
}

func (repo *TracedRepository) Groups(ctx context.Context) ([]domain.Group, error) {
	ctx, span := start(ctx, "Groups")
	defer span.End()

	groups, err := repo.repo.Groups(ctx)

	return groups, recordErr(span, err)
}

func start(ctx context.Context, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return trace.SpanFromContext(ctx).TracerProvider().Tracer("comedians.comedian").
		Start(ctx, "repo", trace.WithAttributes(append(attrs, attribute.String("method", method))...))
}

// recordErr marks the span as failed, except for ErrNotFound which is a valid answer.
func recordErr(span trace.Span, err error) error {
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		span.SetStatus(codes.Error, err.Error())
	}

	return err //nolint:wrapcheck // this is decorator
}

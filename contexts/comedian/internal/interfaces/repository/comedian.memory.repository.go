// Package repository contains the implementations of domain.Repository.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/classic-comedians/arepo"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/domain"
)

var ErrSeedFailed = errors.New("could not seed repository")

// NewMemoryRepository returns an empty repository.
// Use WithGroups and WithComedians to fill it, e.g. with SeedGroups and SeedComedians.
func NewMemoryRepository(opts ...Option) (*MemoryRepository, error) {
	repo := &MemoryRepository{
		comedians: arepo.NewMemoryRepository[domain.Comedian, domain.ComedianID](),
		groups:    arepo.NewMemoryRepository[domain.Group, domain.GroupID](),
	}

	for _, opt := range opts {
		if err := opt(repo); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSeedFailed, err)
		}
	}

	return repo, nil
}

// MemoryRepository keeps all data for the lifetime of the process.
// It is safe for concurrent use.
type MemoryRepository struct {
	comedians *arepo.MemoryRepository[domain.Comedian, domain.ComedianID]
	groups    *arepo.MemoryRepository[domain.Group, domain.GroupID]
}

var _ domain.Repository = (*MemoryRepository)(nil)

type Option func(repo *MemoryRepository) error

func WithGroups(groups ...domain.Group) Option {
	return func(repo *MemoryRepository) error {
		return repo.groups.AddAll(context.Background(), groups)
	}
}

func WithComedians(comedians ...domain.Comedian) Option {
	return func(repo *MemoryRepository) error {
		return repo.comedians.AddAll(context.Background(), comedians)
	}
}

func (repo *MemoryRepository) All(ctx context.Context) ([]domain.Comedian, error) {
	return repo.comedians.All(ctx) //nolint:wrapcheck // in memory, never fails
}

func (repo *MemoryRepository) FindByID(ctx context.Context, id domain.ComedianID) (domain.Comedian, error) {
	comedian, err := repo.comedians.FindByID(ctx, id)
	if err != nil {
		return domain.Comedian{}, mapErr(err)
	}

	return comedian, nil
}

func (repo *MemoryRepository) Add(ctx context.Context, comedian domain.Comedian) (domain.Comedian, error) {
	comedian, err := repo.comedians.Create(ctx, comedian)
	if err != nil {
		return domain.Comedian{}, fmt.Errorf("could not add comedian: %w", err)
	}

	return comedian, nil
}

func (repo *MemoryRepository) Update(ctx context.Context, comedian domain.Comedian) error {
	return mapErr(repo.comedians.Update(ctx, comedian))
}

func (repo *MemoryRepository) DeleteByID(ctx context.Context, id domain.ComedianID) error {
	return repo.comedians.DeleteByID(ctx, id) //nolint:wrapcheck // in memory, never fails
}

func (repo *MemoryRepository) Count(ctx context.Context) (int, error) {
	return repo.comedians.Count(ctx) //nolint:wrapcheck // in memory, never fails
}

func (repo *MemoryRepository) Groups(ctx context.Context) ([]domain.Group, error) {
	return repo.groups.All(ctx) //nolint:wrapcheck // in memory, never fails
}

func mapErr(err error) error {
	if errors.Is(err, arepo.ErrNotFound) {
		return fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}

	return err
}

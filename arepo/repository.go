// Package arepo offers a generic repository for entities kept in memory.
//
// Embed MemoryRepository into a context's own repository to get all basic
// operations and add the domain specific ones next to it.
package arepo

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("exists already")
	ErrSaveFailed    = errors.New("save failed")
)

// Repository documents the methods available by the generic MemoryRepository.
// ID is the primary key and needs to be of one of the underlying types.
type Repository[E any, ID id] interface {
	NextID(ctx context.Context) (ID, error)

	Add(ctx context.Context, entity E) error
	AddAll(ctx context.Context, entities []E) error
	Create(ctx context.Context, entity E) (E, error)
	Update(ctx context.Context, entity E) error
	Save(ctx context.Context, entity E) error

	All(ctx context.Context) ([]E, error)
	FindByID(ctx context.Context, id ID) (E, error)
	ExistsByID(ctx context.Context, id ID) (bool, error)
	Count(ctx context.Context) (int, error)

	DeleteByID(ctx context.Context, id ID) error
	DeleteAll(ctx context.Context) error
}

// id are the types allowed as a primary key used in the generic Repository.
type id interface {
	~string |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Option configures a MemoryRepository.
type Option func(config *repoConfig)

type repoConfig struct {
	idFieldName string
}

// WithIDField sets the name of the field that is used as an id or primary key.
// If not set, it is assumed that the entity struct has a field with the name "ID".
func WithIDField(idFieldName string) Option {
	return func(config *repoConfig) {
		config.idFieldName = idFieldName
	}
}

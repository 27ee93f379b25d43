package domain

import "context"

// Repository stores comedians and the read-only groups.
// All methods returning collections return copies in insertion order.
type Repository interface {
	All(ctx context.Context) ([]Comedian, error)
	// FindByID returns ErrNotFound if no comedian has the id.
	FindByID(ctx context.Context, id ComedianID) (Comedian, error)
	// Add stores the comedian under the next free id: the highest id plus one.
	Add(ctx context.Context, comedian Comedian) (Comedian, error)
	// Update overwrites all fields but the id. It returns ErrNotFound if the comedian does not exist.
	Update(ctx context.Context, comedian Comedian) error
	// DeleteByID removes the comedian. Deleting a not existing comedian is not an error.
	DeleteByID(ctx context.Context, id ComedianID) error
	Count(ctx context.Context) (int, error)

	Groups(ctx context.Context) ([]Group, error)
}

package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/domain"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/interfaces/repository"
)

var ctx = context.Background()

var (
	solo   = domain.Group{ID: 1, Name: "None (solo comedian)"}
	marx   = domain.Group{ID: 2, Name: "The Marx Brothers"}
	laurel = domain.Group{ID: 5, Name: "Laurel and Hardy"}

	groucho = domain.Comedian{
		ID:        1,
		FirstName: "Groucho",
		LastName:  "Marx",
		BirthDate: time.Date(1890, 10, 2, 0, 0, 0, 0, time.UTC),
		DeathDate: time.Date(1977, 8, 19, 0, 0, 0, 0, time.UTC),
		GroupID:   marx.ID,
	}
	orphan = domain.Comedian{ID: 2, FirstName: "Buster", LastName: "Keaton", GroupID: 42}
)

func newRepository(t *testing.T, comedians ...domain.Comedian) *repository.MemoryRepository {
	t.Helper()

	repo, err := repository.NewMemoryRepository(
		repository.WithGroups(solo, marx, laurel),
		repository.WithComedians(comedians...),
	)
	require.NoError(t, err)

	return repo
}

package application

import (
	"context"
	"fmt"

	"github.com/go-arrower/classic-comedians/app"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/domain"
)

func NewListGroupsQueryHandler(repo domain.Repository) app.Query[ListGroupsQuery, ListGroupsResponse] {
	return app.RequestFunc[ListGroupsQuery, ListGroupsResponse](func(ctx context.Context, _ ListGroupsQuery) (ListGroupsResponse, error) {
		groups, err := repo.Groups(ctx)
		if err != nil {
			return ListGroupsResponse{}, fmt.Errorf("could not get groups: %w", err)
		}

		return ListGroupsResponse{Groups: groups}, nil
	})
}

type (
	ListGroupsQuery    struct{}
	ListGroupsResponse struct {
		Groups []domain.Group
	}
)

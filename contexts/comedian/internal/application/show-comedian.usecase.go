package application

import (
	"context"
	"fmt"

	"github.com/go-arrower/classic-comedians/app"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/domain"
)

func NewShowComedianQueryHandler(repo domain.Repository) app.Query[ShowComedianQuery, ShowComedianResponse] {
	return &showComedianQueryHandler{repo: repo}
}

type showComedianQueryHandler struct {
	repo domain.Repository
}

type (
	ShowComedianQuery struct {
		ID domain.ComedianID
	}
	ShowComedianResponse struct {
		Comedian domain.Comedian
		Groups   []domain.Group
	}
)

// H returns domain.ErrNotFound if the comedian does not exist.
func (h *showComedianQueryHandler) H(ctx context.Context, query ShowComedianQuery) (ShowComedianResponse, error) {
	comedian, err := h.repo.FindByID(ctx, query.ID)
	if err != nil {
		return ShowComedianResponse{}, fmt.Errorf("could not get comedian: %w", err)
	}

	groups, err := h.repo.Groups(ctx)
	if err != nil {
		return ShowComedianResponse{}, fmt.Errorf("could not get groups: %w", err)
	}

	return ShowComedianResponse{Comedian: comedian, Groups: groups}, nil
}

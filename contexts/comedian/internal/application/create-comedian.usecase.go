package application

import (
	"context"
	"fmt"
	"time"

	"github.com/go-arrower/classic-comedians/app"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/domain"
)

func NewCreateComedianRequestHandler(repo domain.Repository) app.Request[CreateComedianRequest, CreateComedianResponse] {
	return &createComedianRequestHandler{repo: repo}
}

type createComedianRequestHandler struct {
	repo domain.Repository
}

type (
	CreateComedianRequest struct {
		FirstName string `validate:"required,max=100"`
		LastName  string `validate:"required,max=100"`
		BirthDate time.Time
		DeathDate time.Time
		GroupID   domain.GroupID `validate:"gt=0"`
	}
	CreateComedianResponse struct {
		ID domain.ComedianID
	}
)

func (h *createComedianRequestHandler) H(ctx context.Context, req CreateComedianRequest) (CreateComedianResponse, error) {
	comedian, err := h.repo.Add(ctx, domain.Comedian{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: req.BirthDate,
		DeathDate: req.DeathDate,
		GroupID:   req.GroupID,
	})
	if err != nil {
		return CreateComedianResponse{}, fmt.Errorf("could not create comedian: %w", err)
	}

	return CreateComedianResponse{ID: comedian.ID}, nil
}

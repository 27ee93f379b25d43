package application

import (
	"context"
	"fmt"
	"time"

	"github.com/go-arrower/classic-comedians/app"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/domain"
)

func NewUpdateComedianCommandHandler(repo domain.Repository) app.Command[UpdateComedianCommand] {
	return &updateComedianCommandHandler{repo: repo}
}

type updateComedianCommandHandler struct {
	repo domain.Repository
}

type UpdateComedianCommand struct {
	ID        domain.ComedianID `validate:"gt=0"`
	FirstName string            `validate:"required,max=100"`
	LastName  string            `validate:"required,max=100"`
	BirthDate time.Time
	DeathDate time.Time
	GroupID   domain.GroupID `validate:"gt=0"`
}

// H overwrites all fields of the comedian, including the group.
// It returns domain.ErrNotFound if the comedian does not exist.
func (h *updateComedianCommandHandler) H(ctx context.Context, cmd UpdateComedianCommand) error {
	err := h.repo.Update(ctx, domain.Comedian{
		ID:        cmd.ID,
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
		BirthDate: cmd.BirthDate,
		DeathDate: cmd.DeathDate,
		GroupID:   cmd.GroupID,
	})
	if err != nil {
		return fmt.Errorf("could not update comedian: %w", err)
	}

	return nil
}

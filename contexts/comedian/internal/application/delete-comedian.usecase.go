package application

import (
	"context"
	"fmt"

	"github.com/go-arrower/classic-comedians/app"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/domain"
)

func NewDeleteComedianCommandHandler(repo domain.Repository) app.Command[DeleteComedianCommand] {
	return app.CommandFunc[DeleteComedianCommand](func(ctx context.Context, cmd DeleteComedianCommand) error {
		if err := repo.DeleteByID(ctx, cmd.ID); err != nil {
			return fmt.Errorf("could not delete comedian: %w", err)
		}

		return nil
	})
}

// DeleteComedianCommand removes the comedian, if it exists.
type DeleteComedianCommand struct {
	ID domain.ComedianID
}

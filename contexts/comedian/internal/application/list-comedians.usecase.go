package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-arrower/classic-comedians/alog"
	"github.com/go-arrower/classic-comedians/app"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/domain"
)

func NewListComediansQueryHandler(logger alog.Logger, repo domain.Repository) app.Query[ListComediansQuery, ListComediansResponse] {
	return &listComediansQueryHandler{logger: logger, repo: repo}
}

type listComediansQueryHandler struct {
	logger alog.Logger
	repo   domain.Repository
}

type (
	ListComediansQuery    struct{}
	ListComediansResponse struct {
		Comedians []domain.Comedian
		Groups    []domain.Group
	}
)

// H returns all comedians and groups.
// Comedians referencing a not existing group are returned as well, but logged.
func (h *listComediansQueryHandler) H(ctx context.Context, _ ListComediansQuery) (ListComediansResponse, error) {
	comedians, err := h.repo.All(ctx)
	if err != nil {
		return ListComediansResponse{}, fmt.Errorf("could not get comedians: %w", err)
	}

	groups, err := h.repo.Groups(ctx)
	if err != nil {
		return ListComediansResponse{}, fmt.Errorf("could not get groups: %w", err)
	}

	exists := make(map[domain.GroupID]bool, len(groups))
	for _, g := range groups {
		exists[g.ID] = true
	}

	for _, c := range comedians {
		if !exists[c.GroupID] {
			h.logger.LogAttrs(ctx, alog.LevelDebug, "comedian without group",
				slog.Int("comedian_id", int(c.ID)),
				slog.Int("group_id", int(c.GroupID)),
			)
		}
	}

	return ListComediansResponse{
		Comedians: comedians,
		Groups:    groups,
	}, nil
}

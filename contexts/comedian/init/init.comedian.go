// Package init is the context's startup API.
//
// Put all initialisations here.
// For example, load context-specific configuration, setup dependency injection,
// register routes and more.
package init

import (
	"context"
	"fmt"
	"log/slog"

	comedians "github.com/go-arrower/classic-comedians"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/application"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/domain"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/interfaces/repository"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/interfaces/web"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/views"
)

const contextName = "comedian"

func NewComedianContext(ctx context.Context, di *comedians.Container) (*ComedianContext, error) {
	err := di.EnsureAllDependenciesPresent()
	if err != nil {
		return nil, fmt.Errorf("missing dependencies to initialise context comedian: %w", err)
	}

	comedian, err := setupComedianContext(di)
	if err != nil {
		return nil, fmt.Errorf("could not initialise context comedian: %w", err)
	}

	di.Logger.DebugContext(ctx, "context comedian initialised")

	return comedian, nil
}

type ComedianContext struct {
	globalContainer *comedians.Container

	repository domain.Repository

	comedianController *web.ComedianController
}

func (c *ComedianContext) Shutdown(_ context.Context) error {
	return nil
}

func setupComedianContext(di *comedians.Container) (*ComedianContext, error) {
	in := di.Instrumentation()
	in.Logger = di.Logger.With(slog.String("context", contextName))

	memory, err := repository.NewMemoryRepository(
		repository.WithGroups(repository.SeedGroups()...),
		repository.WithComedians(repository.SeedComedians()...),
	)
	if err != nil {
		return nil, fmt.Errorf("could not seed comedians: %w", err)
	}

	repo := repository.NewTracedRepository(memory)

	comedian := &ComedianContext{
		globalContainer: di,

		repository: repo,

		comedianController: web.NewComedianController(in.Logger, application.NewApp(in, repo)),
	}

	{ // add context-specific web views.
		err := di.WebRenderer.AddContext(contextName, views.ComedianViews)
		if err != nil {
			return nil, fmt.Errorf("could not add context views: %w", err)
		}

		err = di.WebRenderer.AddLayoutData(contextName, "default", func(context.Context) (map[string]any, error) {
			return map[string]any{
				"Title": "Comedians",
			}, nil
		})
		if err != nil {
			return nil, fmt.Errorf("could not add layout data: %w", err)
		}
	}

	di.AddStatus("comedians", func(ctx context.Context) (any, error) {
		return repo.Count(ctx) //nolint:wrapcheck // reported as is
	})

	registerComedianRoutes(comedian)

	return comedian, nil
}

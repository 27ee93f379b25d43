// Package application contains the use cases of the comedian context.
package application

import (
	"github.com/go-arrower/classic-comedians/alog"
	"github.com/go-arrower/classic-comedians/app"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/domain"
)

// App is a dependency injection container.
type App struct {
	ListComedians  app.Query[ListComediansQuery, ListComediansResponse]
	ShowComedian   app.Query[ShowComedianQuery, ShowComedianResponse]
	ListGroups     app.Query[ListGroupsQuery, ListGroupsResponse]
	CreateComedian app.Request[CreateComedianRequest, CreateComedianResponse]
	UpdateComedian app.Command[UpdateComedianCommand]
	DeleteComedian app.Command[DeleteComedianCommand]
}

// NewApp wires all use cases against repo, each instrumented by in.
func NewApp(in app.Instrumentation, repo domain.Repository) App {
	logger := in.Logger
	if logger == nil {
		logger = alog.NewNoop()
	}

	return App{
		ListComedians:  app.NewInstrumentedQuery(in, NewListComediansQueryHandler(logger, repo)),
		ShowComedian:   app.NewInstrumentedQuery(in, NewShowComedianQueryHandler(repo)),
		ListGroups:     app.NewInstrumentedQuery(in, NewListGroupsQueryHandler(repo)),
		CreateComedian: app.NewInstrumentedRequest(in, NewCreateComedianRequestHandler(repo)),
		UpdateComedian: app.NewInstrumentedCommand(in, NewUpdateComedianCommandHandler(repo)),
		DeleteComedian: app.NewInstrumentedCommand(in, NewDeleteComedianCommandHandler(repo)),
	}
}

// Package server assembles the application: the global dependencies and all contexts.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	comedians "github.com/go-arrower/classic-comedians"
	comedian_init "github.com/go-arrower/classic-comedians/contexts/comedian/init"
)

// Server is the whole application.
type Server struct {
	Container *comedians.Container

	comedianContext *comedian_init.ComedianContext
}

// New initialises all dependencies and contexts.
// The servers are not started, use Start or serve Handler yourself.
func New(ctx context.Context, conf *comedians.Config, opts ...comedians.Option) (*Server, error) {
	dc, err := comedians.InitialiseDefaultDependencies(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not initialise dependencies: %w", err)
	}

	comedianContext, err := comedian_init.NewComedianContext(ctx, dc)
	if err != nil {
		return nil, fmt.Errorf("could not initialise contexts: %w", err)
	}

	dc.WebRouter.GET("/", func(c echo.Context) error {
		return c.Render(http.StatusOK, "=>home", echo.Map{
			"Title": "Home",
		})
	}).Name = "home"

	return &Server{
		Container:       dc,
		comedianContext: comedianContext,
	}, nil
}

// Handler returns the web router.
func (s *Server) Handler() http.Handler {
	return s.Container.WebRouter
}

func (s *Server) Start(ctx context.Context) error {
	return s.Container.Start(ctx) //nolint:wrapcheck // already wrapped by the container
}

// Shutdown stops all contexts and then the servers.
func (s *Server) Shutdown(ctx context.Context) error {
	return errors.Join( //nolint:wrapcheck // both are wrapped
		s.comedianContext.Shutdown(ctx),
		s.Container.Shutdown(ctx),
	)
}

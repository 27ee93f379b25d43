package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color" //nolint:misspell
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	comedians "github.com/go-arrower/classic-comedians"
	"github.com/go-arrower/classic-comedians/alog"
	"github.com/go-arrower/classic-comedians/server"
)

var ErrInvalidConfig = errors.New("invalid config")

func newServeCmd(osSignal <-chan os.Signal, configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:                   "serve",
		Short:                 "Serve the web application until interrupted",
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig(*configFile)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			srv, err := server.New(ctx, conf)
			if err != nil {
				return fmt.Errorf("could not start %s: %w", appName, err)
			}

			if err := srv.Start(ctx); err != nil {
				return fmt.Errorf("could not start %s: %w", appName, err)
			}

			blue := color.New(color.FgBlue, color.Bold).FprintfFunc()
			blue(cmd.OutOrStdout(), "%s version %s\n", appName, ReadBuild().Hash)
			blue(cmd.OutOrStdout(), "serving on %s\n", srv.Container.WebAddr())

			select {
			case sig := <-osSignal:
				srv.Container.Logger.InfoContext(ctx, "shutting down", slog.String("signal", sig.String()))
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), conf.HTTP.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("could not shut down gracefully: %w", err)
			}

			return nil
		},
	}
}

// routesOf initialises the application without starting it, to list its routes.
func routesOf(configFile *string) RoutesFunc {
	return func(cmd *cobra.Command) ([]*echo.Route, error) {
		conf, err := loadConfig(*configFile)
		if err != nil {
			return nil, err
		}

		srv, err := server.New(cmd.Context(), conf, comedians.WithLogger(alog.NewNoop()))
		if err != nil {
			return nil, fmt.Errorf("could not initialise %s: %w", appName, err)
		}

		return srv.Container.WebRouter.Routes(), nil
	}
}

// loadConfig reads the config file at path on top of the defaults.
// An empty path uses the defaults and environment variables only.
func loadConfig(path string) (*comedians.Config, error) {
	vip := comedians.DefaultViper()

	if path != "" {
		vip.SetConfigFile(path)

		if err := vip.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: could not read %s: %w", ErrInvalidConfig, path, err)
		}
	}

	conf := &comedians.Config{}
	if err := vip.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return conf, nil
}

package cmd

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color" //nolint:misspell
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

// RoutesFunc returns the routes to print.
type RoutesFunc func(cmd *cobra.Command) ([]*echo.Route, error)

// Routes returns a `routes` command printing all routes returned by routes,
// sorted by path and method.
func Routes(routes RoutesFunc) *cobra.Command {
	return &cobra.Command{
		Use:                   "routes",
		Short:                 "Print all web routes",
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := routes(cmd)
			if err != nil {
				return fmt.Errorf("could not load routes: %w", err)
			}

			slices.SortFunc(all, func(a, b *echo.Route) int {
				if c := strings.Compare(a.Path, b.Path); c != 0 {
					return c
				}

				return strings.Compare(a.Method, b.Method)
			})

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0) //nolint:mnd // padding
			defer w.Flush()

			for _, route := range all {
				if route.Method == echo.RouteNotFound {
					continue
				}

				fmt.Fprintf(w, "%s\t%s\t%s\n", methodColor(route.Method).Sprint(route.Method), route.Path, route.Name)
			}

			return nil
		},
	}
}

func methodColor(method string) *color.Color {
	switch method {
	case http.MethodGet:
		return color.New(color.FgBlue, color.Bold)
	case http.MethodPost:
		return color.New(color.FgGreen, color.Bold)
	case http.MethodPut, http.MethodPatch:
		return color.New(color.FgYellow, color.Bold)
	case http.MethodDelete:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgMagenta)
	}
}

package renderer

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"maps"
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-arrower/classic-comedians/alog"
)

// NewEchoRenderer returns a Renderer usable by echo.
// All views can call `route "name" params...` to build the URL of a named route of e.
func NewEchoRenderer(
	logger alog.Logger,
	traceProvider trace.TracerProvider,
	e *echo.Echo,
	viewFS fs.FS,
	funcs template.FuncMap,
	hotReload bool,
) (*EchoRenderer, error) {
	mergedFM := template.FuncMap{
		"route": func(name string, params ...any) string { return "" },
	}

	if e != nil {
		mergedFM["route"] = e.Reverse
	}

	maps.Copy(mergedFM, funcs)

	renderer, err := New(logger, traceProvider, viewFS, mergedFM, hotReload)
	if err != nil {
		return nil, fmt.Errorf("could not create echo renderer: %w", err)
	}

	return &EchoRenderer{Renderer: renderer}, nil
}

// EchoRenderer is a wrapper that makes the Renderer available for the echo router: https://echo.labstack.com/
type EchoRenderer struct {
	*Renderer
}

var _ echo.Renderer = (*EchoRenderer)(nil)

// Render renders templateName in the context the route of c belongs to.
func (r *EchoRenderer) Render(w io.Writer, templateName string, data any, c echo.Context) error {
	return r.Renderer.Render(c.Request().Context(), w, r.contextOf(c.Path()), templateName, data)
}

// contextOf returns the first segment of routePath that is the name of a context added via AddContext.
// Segments are matched case-insensitive, so /Comedian/Index belongs to the context comedian.
// Routes not belonging to any context render the shared views.
func (r *EchoRenderer) contextOf(routePath string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, segment := range strings.Split(routePath, "/") {
		if segment == "" || strings.HasPrefix(segment, ":") {
			continue
		}

		name := strings.ToLower(segment)
		if _, exists := r.views[name]; exists && name != SharedViews {
			return name
		}
	}

	return SharedViews
}

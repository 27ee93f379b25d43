package renderer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/go-arrower/classic-comedians/alog"
)

// Test returns a renderer for unit tests of views.
// Use AddContext on the embedded Renderer to test the views of a context.
func Test(
	viewFS fs.FS,
	funcMap template.FuncMap,
) (*TestRenderer, error) {
	mergedFM := template.FuncMap{
		"route": func(name string, params ...any) string {
			return "/" + name + fmt.Sprint(params...)
		},
	}

	for name, fn := range funcMap {
		mergedFM[name] = fn
	}

	renderer, err := New(alog.NewNoop(), noop.NewTracerProvider(), viewFS, mergedFM, false)
	if err != nil {
		return nil, fmt.Errorf("could not create test renderer: %w", err)
	}

	return &TestRenderer{Renderer: renderer}, nil
}

type TestRenderer struct {
	*Renderer
}

// Render renders the template and returns assertions on the resulting html.
func (r *TestRenderer) Render(
	t *testing.T,
	context string,
	name string,
	data any,
) (*RendererAssertions, error) {
	t.Helper()

	buf := &bytes.Buffer{}

	err := r.Renderer.Render(t.Context(), buf, context, name, data)
	if err != nil {
		return &RendererAssertions{t: t}, err
	}

	return &RendererAssertions{t: t, html: buf.String()}, nil
}

// RendererAssertions is a helper that exposes a lot of TestRenderer-specific assertions for the use in tests.
// The interface follows stretchr/testify as close as possible.
//
//   - Every assert func returns a bool indicating whether the assertion was successful or not,
//     this is useful for if you want to go on making further assertions under certain conditions.
type RendererAssertions struct {
	t    *testing.T
	html string
}

// HTML returns the rendered html.
func (a *RendererAssertions) HTML() string {
	return a.html
}

// NotEmpty asserts that the html is not empty.
func (a *RendererAssertions) NotEmpty(msgAndArgs ...any) bool {
	a.t.Helper()

	if strings.TrimSpace(a.html) == "" {
		return assert.Fail(a.t, "html is empty, should not be", msgAndArgs...)
	}

	return true
}

// Contains asserts that the html contains the string.
func (a *RendererAssertions) Contains(contains string, msgAndArgs ...any) bool {
	a.t.Helper()

	return assert.Contains(a.t, a.html, contains, msgAndArgs...)
}

// NotContains asserts that the html does not contain the string.
func (a *RendererAssertions) NotContains(contains string, msgAndArgs ...any) bool {
	a.t.Helper()

	return assert.NotContains(a.t, a.html, contains, msgAndArgs...)
}

// Count asserts that the string is contained exactly n times in the html.
func (a *RendererAssertions) Count(contains string, n int, msgAndArgs ...any) bool {
	a.t.Helper()

	return assert.Equal(a.t, n, strings.Count(a.html, contains), msgAndArgs...)
}

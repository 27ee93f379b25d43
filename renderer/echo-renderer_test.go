package renderer_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/go-arrower/classic-comedians/alog"
	"github.com/go-arrower/classic-comedians/renderer"
	"github.com/go-arrower/classic-comedians/renderer/testdata"
)

func TestNewEchoRenderer(t *testing.T) {
	t.Parallel()

	t.Run("new", func(t *testing.T) {
		t.Parallel()

		r, err := renderer.NewEchoRenderer(alog.NewNoop(), noop.NewTracerProvider(), nil, testdata.FilesEmpty, nil, true)
		assert.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("nil fs", func(t *testing.T) {
		t.Parallel()

		r, err := renderer.NewEchoRenderer(alog.NewNoop(), noop.NewTracerProvider(), echo.New(), nil, nil, false)
		assert.ErrorIs(t, err, renderer.ErrCreateRendererFailed)
		assert.Nil(t, r)
	})

	t.Run("route func is set", func(t *testing.T) {
		t.Parallel()

		buf := bytes.Buffer{}
		router := echo.New()
		router.GET("/Comedian/Details/:id", func(c echo.Context) error { return c.NoContent(http.StatusOK) }).Name = "comedian.show"

		r, err := renderer.NewEchoRenderer(alog.NewNoop(), noop.NewTracerProvider(), router, testdata.FilesEcho, nil, false)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)

		err = r.Render(&buf, "hello", nil, router.NewContext(req, nil))
		assert.NoError(t, err)
		assert.Contains(t, buf.String(), `<a href="/Comedian/Details/7">Details</a>`)
	})
}

func TestEchoRenderer_Render(t *testing.T) {
	t.Parallel()

	router := echo.New()

	r, err := renderer.NewEchoRenderer(alog.NewNoop(), noop.NewTracerProvider(), router, testdata.FilesEcho, nil, false)
	require.NoError(t, err)
	require.NoError(t, r.AddContext(testdata.ContextName, testdata.EchoContextViews))

	router.Renderer = r
	router.GET("/Comedian/Details/:id", func(c echo.Context) error {
		return c.Render(http.StatusOK, "hello", nil)
	}).Name = "comedian.show"
	router.GET("/", func(c echo.Context) error {
		return c.Render(http.StatusOK, "hello", nil)
	})

	tests := map[string]struct {
		path     string
		expected string
	}{
		"route of a context": {"/Comedian/Details/1", "<main>context hello</main>"},
		"shared route":       {"/", `href="/Comedian/Details/7"`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expected)
		})
	}
}

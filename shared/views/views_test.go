package views_test

import (
	"testing"

	"github.com/Masterminds/sprig/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/classic-comedians/renderer"
	"github.com/go-arrower/classic-comedians/shared/views"
)

func TestSharedViews(t *testing.T) {
	t.Parallel()

	r, err := renderer.Test(views.SharedViews, sprig.FuncMap())
	require.NoError(t, err)

	err = r.AddBaseData("default", views.NewDefaultBaseDataFunc("Comedy Club"))
	require.NoError(t, err)

	t.Run("home", func(t *testing.T) {
		t.Parallel()

		page, err := r.Render(t, renderer.SharedViews, "home", nil)
		require.NoError(t, err)

		page.Contains("Welcome")
		page.Contains("Comedy Club")
		page.Count(`href="/comedian.index"`, 2, "nav and home link to the comedians")
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()

		page, err := r.Render(t, renderer.SharedViews, "error", renderer.Map{"Code": 404, "Message": "Not Found"})
		require.NoError(t, err)

		page.Contains("404")
		page.Contains("Not Found")
		page.NotContains("Request:")
	})

	t.Run("error with request id", func(t *testing.T) {
		t.Parallel()

		page, err := r.Render(t, renderer.SharedViews, "error", renderer.Map{"Code": 500, "Message": "Internal Server Error", "RequestID": "01J0X"})
		require.NoError(t, err)

		page.Contains("01J0X")
	})

	t.Run("flashes", func(t *testing.T) {
		t.Parallel()

		page, err := r.Render(t, renderer.SharedViews, "#flashes", renderer.Map{"Flashes": []any{"Comedian created"}})
		require.NoError(t, err)

		page.Count(`role="status"`, 1)
		page.Contains("Comedian created")
	})
}

func TestNewDefaultBaseDataFunc(t *testing.T) {
	t.Parallel()

	t.Run("app name", func(t *testing.T) {
		t.Parallel()

		data, err := views.NewDefaultBaseDataFunc("Comedy Club")(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "Comedy Club", data["AppName"])
	})

	t.Run("default app name", func(t *testing.T) {
		t.Parallel()

		data, err := views.NewDefaultBaseDataFunc("")(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "Classic Comedians", data["AppName"])
	})
}

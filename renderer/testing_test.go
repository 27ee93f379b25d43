package renderer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/classic-comedians/renderer"
	"github.com/go-arrower/classic-comedians/renderer/testdata"
)

func TestTest(t *testing.T) {
	t.Parallel()

	t.Run("render shared view", func(t *testing.T) {
		t.Parallel()

		r, err := renderer.Test(testdata.SharedViews(), nil)
		require.NoError(t, err)

		page, err := r.Render(t, renderer.SharedViews, "home", nil)
		require.NoError(t, err)

		page.NotEmpty()
		page.Contains(testdata.PageContent)
		page.NotContains(testdata.OtherBaseContent)
		page.Count(testdata.ComponentContent, 1)
	})

	t.Run("render context view", func(t *testing.T) {
		t.Parallel()

		r, err := renderer.Test(testdata.SharedViews(), nil)
		require.NoError(t, err)
		require.NoError(t, r.AddContext(testdata.ContextName, testdata.ContextViews()))

		page, err := r.Render(t, testdata.ContextName, "list", nil)
		require.NoError(t, err)

		page.Contains(testdata.ContextLayoutContent)
		assert.True(t, strings.HasPrefix(page.HTML(), testdata.BaseContent))
	})

	t.Run("route func", func(t *testing.T) {
		t.Parallel()

		r, err := renderer.Test(testdata.FilesEcho, nil)
		require.NoError(t, err)

		page, err := r.Render(t, renderer.SharedViews, "hello", nil)
		require.NoError(t, err)

		page.Contains("/comedian.show7")
	})

	t.Run("render error", func(t *testing.T) {
		t.Parallel()

		r, err := renderer.Test(testdata.SharedViews(), nil)
		require.NoError(t, err)

		_, err = r.Render(t, renderer.SharedViews, "non-existing", nil)
		assert.ErrorIs(t, err, renderer.ErrNotExistsPage)
	})
}

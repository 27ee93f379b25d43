package comedians

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/classic-comedians/alog"
	"github.com/go-arrower/classic-comedians/secret"
)

func TestContainer_statusHandler(t *testing.T) {
	t.Parallel()

	newContainer := func(t *testing.T) *Container {
		t.Helper()

		dc, err := InitialiseDefaultDependencies(context.Background(), &Config{
			ApplicationName: "classic-comedians",
			InstanceName:    "test",
			Environment:     TestEnv,
			HTTP:            HTTP{CookieSecret: secret.New("groucho-never-tells")},
		}, WithLogger(alog.NewNoop()))
		require.NoError(t, err)

		return dc
	}

	t.Run("online", func(t *testing.T) {
		t.Parallel()

		dc := newContainer(t)
		dc.AddStatus("comedians", func(context.Context) (any, error) { return 6, nil })

		rec := httptest.NewRecorder()
		dc.statusHandler(rec, httptest.NewRequest(http.MethodGet, statusPath, nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var status map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))

		assert.Equal(t, "online", status["status"])
		assert.Equal(t, "classic-comedians", status["applicationName"])
		assert.Equal(t, "test", status["instanceName"])
		assert.Equal(t, map[string]any{"comedians": float64(6)}, status["records"])
		assert.NotContains(t, rec.Body.String(), "cookie", "secrets are not exposed")
	})

	t.Run("degraded", func(t *testing.T) {
		t.Parallel()

		dc := newContainer(t)
		dc.AddStatus("comedians", func(context.Context) (any, error) { return nil, errors.New("store down") }) //nolint:err113

		rec := httptest.NewRecorder()
		dc.statusHandler(rec, httptest.NewRequest(http.MethodGet, statusPath, nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"degraded"`)
		assert.Contains(t, rec.Body.String(), "store down")
	})
}

func TestContainer_metrics(t *testing.T) {
	t.Parallel()

	dc, err := InitialiseDefaultDependencies(context.Background(), &Config{
		ApplicationName: "classic-comedians",
		Environment:     TestEnv,
		HTTP:            HTTP{CookieSecret: secret.New("groucho-never-tells")},
	}, WithLogger(alog.NewNoop()))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	dc.WebRouter.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	srv := dc.newStatusServer(context.Background())

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, metricPath, nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "classic_comedians_requests_total")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Classic Comedians", displayName("classic-comedians"))
	assert.Equal(t, "Comedy", displayName("comedy"))
	assert.Equal(t, "", displayName(""))
}

func TestMetricName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "classic_comedians", metricName("classic-comedians"))
	assert.Equal(t, "echo", metricName(""))
}

package comedians

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricPath = "/metrics"
	statusPath = "/status"
)

// newStatusServer serves the prometheus metrics and the system status.
func (c *Container) newStatusServer(ctx context.Context) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(metricPath, promhttp.HandlerFor(
		c.MetricRegistry,
		promhttp.HandlerOpts{ //nolint:exhaustruct
			EnableOpenMetrics: true, // to enable Examplars in the export format
		},
	))
	mux.HandleFunc(statusPath, c.statusHandler)

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second, //nolint:mnd
	}

	c.Logger.InfoContext(ctx, "serving status endpoint",
		slog.Int("port", c.Config.HTTP.StatusEndpointPort),
		slog.String("metric_path", metricPath),
		slog.String("status_path", statusPath),
	)

	return srv
}

func (c *Container) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := c.systemStatus(r.Context())

	code := http.StatusOK
	if len(status.Failures) > 0 {
		code = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)

	_ = json.NewEncoder(w).Encode(status)
}

type systemStatus struct {
	Status           string         `json:"status"`
	Time             time.Time      `json:"time"`
	Uptime           string         `json:"uptime"`
	GitHash          string         `json:"gitHash"`
	OrganisationName string         `json:"organisationName"`
	ApplicationName  string         `json:"applicationName"`
	InstanceName     string         `json:"instanceName"`
	Environment      Environment    `json:"environment"`
	Web              HTTP           `json:"web"`
	Records          map[string]any `json:"records"`
	Failures         map[string]any `json:"failures"`
}

// systemStatus collects the status of the application and all parts registered via AddStatus.
func (c *Container) systemStatus(ctx context.Context) systemStatus {
	c.statusMu.RLock()
	funcs := maps.Clone(c.statusFuncs)
	c.statusMu.RUnlock()

	status := systemStatus{
		Status:           "online",
		Time:             time.Now(),
		GitHash:          gitHash(),
		OrganisationName: c.Config.OrganisationName,
		ApplicationName:  c.Config.ApplicationName,
		InstanceName:     c.Config.InstanceName,
		Environment:      c.Config.Environment,
		Web:              c.Config.HTTP,
		Records:          map[string]any{},
		Failures:         map[string]any{},
	}

	if !c.startedAt.IsZero() {
		status.Uptime = time.Since(c.startedAt).Round(time.Second).String()
	}

	for name, f := range funcs {
		res, err := f(ctx)
		if err != nil {
			status.Failures[name] = err.Error()

			continue
		}

		status.Records[name] = res
	}

	if len(status.Failures) > 0 {
		status.Status = "degraded"
	}

	return status
}

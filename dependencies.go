package comedians

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oklog/ulid/v2"
	prometheusSDK "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"golang.org/x/sync/errgroup"

	"github.com/go-arrower/classic-comedians/alog"
	"github.com/go-arrower/classic-comedians/app"
	ctx2 "github.com/go-arrower/classic-comedians/ctx"
	"github.com/go-arrower/classic-comedians/renderer"
	"github.com/go-arrower/classic-comedians/shared/views"
)

var ErrMissingDependency = errors.New("missing dependency")

// StatusFunc reports the state of a part of the application on the status endpoint.
type StatusFunc func(ctx context.Context) (any, error)

// Container holds global dependencies that can be used within each Context, to make initialisation easier.
// If the Context can operate with the shared resources.
// Otherwise, the Context is advised to initialise its own dependencies from its own configuration.
type Container struct {
	Logger        alog.Logger
	MeterProvider *metric.MeterProvider
	TraceProvider *trace.TracerProvider
	// MetricRegistry gathers all metrics exposed on the status endpoint.
	MetricRegistry *prometheusSDK.Registry
	Validate       *validator.Validate

	Config *Config

	WebRouter   *echo.Echo
	WebRenderer *renderer.EchoRenderer

	statusMu    sync.RWMutex
	statusFuncs map[string]StatusFunc

	startedAt      time.Time
	servers        *errgroup.Group
	statusEndpoint *http.Server
}

// Option changes the defaults of InitialiseDefaultDependencies.
type Option func(*options)

type options struct {
	logger alog.Logger
}

// WithLogger uses logger instead of the logger configured for the environment.
func WithLogger(logger alog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Instrumentation returns the observability dependencies for use cases.
func (c *Container) Instrumentation() app.Instrumentation {
	return app.Instrumentation{
		TraceProvider: c.TraceProvider,
		MeterProvider: c.MeterProvider,
		Logger:        c.Logger,
		Validate:      c.Validate,
	}
}

// AddStatus reports the result of f under name on the status endpoint.
func (c *Container) AddStatus(name string, f StatusFunc) {
	c.statusMu.Lock()
	defer c.statusMu.Unlock()

	c.statusFuncs[name] = f
}

func (c *Container) EnsureAllDependenciesPresent() error {
	if c.Config == nil {
		return fmt.Errorf("%w: global config not found", ErrMissingDependency)
	}

	if c.Logger == nil {
		return fmt.Errorf("%w: logger", ErrMissingDependency)
	}

	if c.WebRouter == nil {
		return fmt.Errorf("%w: web router", ErrMissingDependency)
	}

	if c.WebRenderer == nil {
		return fmt.Errorf("%w: renderer", ErrMissingDependency)
	}

	return nil
}

func InitialiseDefaultDependencies(ctx context.Context, conf *Config, opts ...Option) (*Container, error) {
	if conf == nil {
		return nil, fmt.Errorf("%w: global config not found", ErrMissingDependency)
	}

	if conf.HTTP.CookieSecret.IsEmpty() {
		return nil, fmt.Errorf("%w: http.cookie_secret is empty, sessions can not be signed", ErrMissingDependency)
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if conf.InstanceName == "" {
		conf.InstanceName, _ = os.Hostname()
	}

	dc := &Container{
		Config:      conf,
		Validate:    validator.New(validator.WithRequiredStructEnabled()),
		statusFuncs: map[string]StatusFunc{},
	}

	{ // observability
		resource := resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName(conf)),
			semconv.ServiceInstanceIDKey.String(conf.InstanceName),
			attribute.String("environment", string(conf.Environment)),
		)

		{ // traces
			traceOpts := []trace.TracerProviderOption{
				trace.WithResource(resource),
				trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(0.6))), //nolint:mnd // sample 60%
			}

			if conf.OTEL.Enabled {
				exporterOpts := []otlptracegrpc.Option{
					otlptracegrpc.WithEndpoint(fmt.Sprintf("%s:%d", conf.OTEL.Host, conf.OTEL.Port)),
					otlptracegrpc.WithInsecure(),
				}

				traceExporter, err := otlptracegrpc.New(ctx, exporterOpts...)
				if err != nil {
					return nil, fmt.Errorf("could not connect to trace exporter: %w", err)
				}

				traceOpts = append(traceOpts, trace.WithBatcher(traceExporter))
			}

			if conf.Environment == LocalEnv {
				traceOpts = append(traceOpts, trace.WithSampler(trace.AlwaysSample()))
			}

			dc.TraceProvider = trace.NewTracerProvider(traceOpts...)
			otel.SetTracerProvider(dc.TraceProvider)
		}

		{ // metrics
			dc.MetricRegistry = prometheusSDK.NewRegistry()
			dc.MetricRegistry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			exporter, err := prometheus.New(prometheus.WithRegisterer(dc.MetricRegistry))
			if err != nil {
				return nil, fmt.Errorf("could not create prometheus exporter: %w", err)
			}

			dc.MeterProvider = metric.NewMeterProvider(
				metric.WithResource(resource),
				metric.WithReader(exporter),
			)
			otel.SetMeterProvider(dc.MeterProvider)
		}
	}

	{ // logger
		logger, err := newLogger(conf, o.logger)
		if err != nil {
			return nil, err
		}

		dc.Logger = logger
	}

	{ // web router
		router := echo.New()
		router.HideBanner = true
		router.HidePort = true
		router.Logger.SetOutput(io.Discard)
		router.Validator = &CustomValidator{validator: dc.Validate}
		router.IPExtractor = echo.ExtractIPFromXFFHeader() // see: https://echo.labstack.com/docs/ip-address
		router.HTTPErrorHandler = newHTTPErrorHandler(router)

		router.Pre(middleware.RemoveTrailingSlash())

		router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator: func() string { return ulid.Make().String() },
			RequestIDHandler: func(c echo.Context, rid string) {
				ctx := context.WithValue(c.Request().Context(), ctx2.CtxRequestID, rid)
				ctx = alog.AddAttr(ctx, slog.String("request_id", rid))

				c.SetRequest(c.Request().WithContext(ctx))
			},
		}))
		router.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogMethod:     true,
			LogURI:        true,
			LogStatus:     true,
			LogLatency:    true,
			LogError:      true,
			HandleError:   true,
			LogValuesFunc: logRequest(dc.Logger),
		}))
		router.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
			LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
				dc.Logger.LogAttrs(c.Request().Context(), slog.LevelError, "recovered from panic",
					alog.Error(err),
					slog.String("stack", string(stack)),
				)

				return err
			},
		}))
		router.Use(otelecho.Middleware(serviceName(conf), otelecho.WithTracerProvider(dc.TraceProvider)))
		router.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  metricName(conf.ApplicationName),
			Registerer: dc.MetricRegistry,
		}))

		store := sessions.NewCookieStore([]byte(conf.HTTP.CookieSecret.Secret()))
		store.Options = &sessions.Options{
			Path:     "/",
			MaxAge:   86400 * 7, //nolint:mnd // one week
			HttpOnly: true,
			Secure:   conf.Environment == ProductionEnv,
			SameSite: http.SameSiteLaxMode,
		}
		router.Use(session.Middleware(store))

		var (
			sharedViews fs.FS = views.SharedViews
			hotReload   bool
		)

		if conf.Environment == LocalEnv {
			if _, err := os.Stat("shared/views"); err == nil {
				sharedViews = os.DirFS("shared/views")
				hotReload = true
			}
		}

		r, err := renderer.NewEchoRenderer(dc.Logger, dc.TraceProvider, router, sharedViews, sprig.FuncMap(), hotReload)
		if err != nil {
			return nil, fmt.Errorf("could not create renderer: %w", err)
		}

		err = r.AddBaseData("default", views.NewDefaultBaseDataFunc(displayName(conf.ApplicationName)))
		if err != nil {
			return nil, fmt.Errorf("could not add default base data: %w", err)
		}

		router.Renderer = r
		dc.WebRenderer = r
		dc.WebRouter = router
	}

	return dc, nil
}

func newLogger(conf *Config, logger alog.Logger) (alog.Logger, error) {
	if logger != nil {
		return logger, nil
	}

	level := slog.LevelInfo

	if conf.Log.Level != "" {
		l, err := alog.ParseLevel(conf.Log.Level)
		if err != nil {
			return nil, fmt.Errorf("could not create logger: %w", err)
		}

		level = l
	}

	l := alog.New(alog.WithLevel(level))
	if conf.Environment == LocalEnv {
		l = alog.NewDevelopment()
	}

	l = l.With(
		slog.String("organisation_name", conf.OrganisationName),
		slog.String("application_name", conf.ApplicationName),
		slog.String("instance_name", conf.InstanceName),
		slog.String("git_hash", gitHash()),
		slog.String("environment", string(conf.Environment)),
	)

	slog.SetDefault(l)

	return l, nil
}

func logRequest(logger alog.Logger) func(c echo.Context, v middleware.RequestLoggerValues) error {
	return func(c echo.Context, v middleware.RequestLoggerValues) error {
		level := alog.LevelInfo
		attrs := []slog.Attr{
			slog.String("method", v.Method),
			slog.String("uri", v.URI),
			slog.Int("status", v.Status),
			slog.Duration("latency", v.Latency),
		}

		if v.Error != nil {
			level = slog.LevelError
			attrs = append(attrs, alog.Error(v.Error))
		}

		logger.LogAttrs(c.Request().Context(), level, "request", attrs...)

		return nil
	}
}

// newHTTPErrorHandler renders the error page for all errors not handled by a controller.
// If the page cannot be rendered echo's default handler answers instead.
func newHTTPErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			message = fmt.Sprint(httpErr.Message)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)

			return
		}

		requestID, _ := ctx2.RequestID(c.Request().Context())

		renderErr := c.Render(code, "=>error", echo.Map{
			"Title":     http.StatusText(code),
			"Code":      code,
			"Message":   message,
			"RequestID": requestID,
		})
		if renderErr != nil {
			e.DefaultHTTPErrorHandler(err, c)
		}
	}
}

// Start starts the web server and, if enabled, the status endpoint.
// It returns as soon as the servers listen, use Shutdown to stop them.
func (c *Container) Start(ctx context.Context) error {
	c.Logger.LogAttrs(ctx, alog.LevelInfo, "starting all servers")

	c.startedAt = time.Now()
	c.servers = &errgroup.Group{}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", c.Config.HTTP.Port))
	if err != nil {
		return fmt.Errorf("could not start web server: %w", err)
	}

	c.WebRouter.Listener = ln

	if c.Config.HTTP.StatusEndpointEnabled {
		statusLn, err := net.Listen("tcp", fmt.Sprintf(":%d", c.Config.HTTP.StatusEndpointPort))
		if err != nil {
			_ = ln.Close()

			return fmt.Errorf("could not start status endpoint: %w", err)
		}

		c.statusEndpoint = c.newStatusServer(ctx)

		c.servers.Go(func() error {
			return ignoreServerClosed(c.statusEndpoint.Serve(statusLn))
		})
	}

	c.servers.Go(func() error {
		return ignoreServerClosed(c.WebRouter.Start(""))
	})

	c.Logger.InfoContext(ctx, "serving web", slog.String("addr", ln.Addr().String()))

	return nil
}

// WebAddr returns the address the web server listens on, after Start.
func (c *Container) WebAddr() net.Addr {
	return c.WebRouter.ListenerAddr()
}

// Shutdown stops all servers gracefully and flushes the telemetry.
func (c *Container) Shutdown(ctx context.Context) error {
	c.Logger.LogAttrs(ctx, alog.LevelInfo, "shutting down all servers")

	var errs []error

	if c.servers != nil {
		errs = append(errs, c.WebRouter.Shutdown(ctx))

		if c.statusEndpoint != nil {
			errs = append(errs, c.statusEndpoint.Shutdown(ctx))
		}

		errs = append(errs, c.servers.Wait())
	}

	errs = append(errs,
		c.TraceProvider.Shutdown(ctx),
		c.MeterProvider.Shutdown(ctx),
	)

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	return nil
}

func ignoreServerClosed(err error) error {
	if err == nil || errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return err //nolint:wrapcheck // return the original validate error to not break the API for the caller.
	}

	return nil
}

func serviceName(conf *Config) string {
	if conf.OrganisationName == "" {
		return conf.ApplicationName
	}

	return conf.OrganisationName + "." + conf.ApplicationName
}

// metricName makes name usable as prometheus metric name.
func metricName(name string) string {
	name = strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(name)
	if name == "" {
		return "echo"
	}

	return name
}

// displayName turns an application name like classic-comedians into Classic Comedians.
func displayName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})

	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	return strings.Join(words, " ")
}

func gitHash() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				return setting.Value
			}
		}
	}

	return "unknown"
}

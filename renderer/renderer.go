// Package renderer provides renderers for web views and unit tests.
//
// The renderer expects a fs.FS with the following folder structure:
//   - . - layouts in which the pages are embedded.
//     Shared views call them `<name>.base.html`, contexts `<name>.layout.html`.
//   - pages - the actual pages to render. They can include page scoped fragments and components.
//   - components - containing fragments of a page that are shared with each page template.
//
// A template is addressed by name: `base=>layout=>page#fragment`.
// All parts but the page are optional, `#component` renders a component alone
// and `=>page` renders a shared page from within any context.
package renderer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"reflect"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/go-arrower/classic-comedians/alog"
)

var (
	ErrCreateRendererFailed = errors.New("create renderer failed")

	ErrRenderFailed       = errors.New("rendering failed")
	ErrNotExistsComponent = fmt.Errorf("%w: component does not exist", ErrRenderFailed)
	ErrNotExistsPage      = fmt.Errorf("%w: page does not exist", ErrRenderFailed)
	ErrNotExistsFragment  = fmt.Errorf("%w: fragment does not exist", ErrRenderFailed)
	ErrNotExistsLayout    = fmt.Errorf("%w: layout does not exist", ErrRenderFailed)
	ErrInvalidName        = fmt.Errorf("%w: invalid template name", ErrRenderFailed)
	ErrContextNotAdded    = errors.New("context not added")
)

// SharedViews is the name of the views not belonging to any context.
const SharedViews = ""

type (
	Map      map[string]any
	DataFunc func(ctx context.Context) (map[string]any, error)
)

// New prepares a renderer for HTML web views.
// viewFS contains the shared views, contexts add their own views via AddContext.
// With hotReload all views are read from their fs.FS again on each call to Render.
func New(
	logger alog.Logger,
	traceProvider trace.TracerProvider,
	viewFS fs.FS,
	funcMap template.FuncMap,
	hotReload bool,
) (*Renderer, error) {
	if logger == nil {
		logger = alog.NewNoop()
	}

	if traceProvider == nil {
		traceProvider = noop.NewTracerProvider()
	}

	if viewFS == nil {
		return nil, fmt.Errorf("%w: missing views", ErrCreateRendererFailed)
	}

	logger = logger.WithGroup("renderer")

	shared, err := loadViews(viewFS, funcMap, baseSuffix)
	if err != nil {
		return nil, fmt.Errorf("%w: could not load views: %w", ErrCreateRendererFailed, err)
	}

	logger.LogAttrs(context.Background(), alog.LevelInfo,
		"renderer created",
		slog.Bool("hot_reload", hotReload),
		slog.String("default_layout", shared.defaultLayout),
		slog.Any("pages", shared.pageNames()),
	)

	return &Renderer{
		logger:     logger,
		tracer:     traceProvider.Tracer("comedians.renderer"),
		funcMap:    funcMap,
		hotReload:  hotReload,
		mu:         sync.RWMutex{},
		views:      map[string]*viewTemplates{SharedViews: shared},
		baseData:   map[string][]DataFunc{},
		layoutData: map[string]map[string][]DataFunc{},
		cache:      sync.Map{},
	}, nil
}

// Renderer renders the pages of the shared views and of all added contexts.
// It is safe for concurrent use.
type Renderer struct {
	logger alog.Logger
	tracer trace.Tracer

	funcMap   template.FuncMap
	hotReload bool

	mu         sync.RWMutex
	views      map[string]*viewTemplates
	baseData   map[string][]DataFunc
	layoutData map[string]map[string][]DataFunc

	// cache holds the composed templates by templateName.key.
	cache sync.Map
}

// Render writes the template with the given name of the context contextName to w.
// Nothing is written to w if rendering fails.
func (r *Renderer) Render(ctx context.Context, w io.Writer, contextName string, name string, data any) error {
	ctx, span := r.tracer.Start(ctx, "render", trace.WithAttributes(
		attribute.String("context", contextName),
		attribute.String("template", name),
	))
	defer span.End()

	err := r.render(ctx, w, contextName, name, data)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

func (r *Renderer) render(ctx context.Context, w io.Writer, contextName string, name string, data any) error {
	if r.hotReload {
		if err := r.reload(); err != nil {
			return err
		}
	}

	tName, err := parseTemplateName(name)
	if err != nil {
		return err
	}

	if tName.isShared {
		contextName = SharedViews
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	tName, err = r.resolve(contextName, tName)
	if err != nil {
		return err
	}

	templ, err := r.cachedTemplate(ctx, tName)
	if err != nil {
		return err
	}

	if templ.Lookup(tName.executeName()) == nil {
		return ErrNotExistsFragment
	}

	merged, err := r.mergeData(ctx, tName, data)
	if err != nil {
		return fmt.Errorf("%w: could not build data: %w", ErrRenderFailed, err)
	}

	buf := &bytes.Buffer{}

	err = templ.ExecuteTemplate(buf, tName.executeName(), merged)
	if err != nil {
		return fmt.Errorf("%w: could not execute template: %v", ErrRenderFailed, err) //nolint:errorlint // prevent err in api
	}

	_, err = io.Copy(w, buf)
	if err != nil {
		return fmt.Errorf("%w: could not write: %w", ErrRenderFailed, err)
	}

	return nil
}

// resolve fills in the context and the default layouts of name.
// The caller has to hold the read lock.
func (r *Renderer) resolve(contextName string, name templateName) (templateName, error) {
	views, exists := r.views[contextName]
	if !exists {
		return templateName{}, fmt.Errorf("%w: unknown context: %s", ErrRenderFailed, contextName)
	}

	name.context = contextName

	if name.isComponent {
		return name, nil
	}

	if contextName == SharedViews {
		if name.base != "" && name.layout != "" {
			return templateName{}, fmt.Errorf("%w: shared views have no layouts: %s", ErrInvalidName, name.layout)
		}

		// shared views have no context layouts, a single layout is the base
		if name.base == "" {
			name.base = name.layout
		}

		name.layout = ""
	} else if name.layout == "" {
		name.layout = views.defaultLayout
	}

	if name.base == "" {
		name.base = r.views[SharedViews].defaultLayout
	}

	return name, nil
}

func (r *Renderer) cachedTemplate(ctx context.Context, name templateName) (*template.Template, error) {
	if t, found := r.cache.Load(name.key()); found {
		return t.(*template.Template), nil //nolint:forcetypeassert // only templates are stored
	}

	templ, err := r.compose(name)
	if err != nil {
		return nil, err
	}

	r.cache.Store(name.key(), templ)

	r.logger.LogAttrs(ctx, alog.LevelDebug,
		"template cached",
		slog.String("cache_key", name.key()),
		slog.Any("templates", templateNames(templ)),
	)

	return templ, nil
}

// compose builds one template out of base, layout, page and all components.
// The caller has to hold the read lock.
func (r *Renderer) compose(name templateName) (*template.Template, error) {
	views := r.views[name.context]

	templ, err := views.components.Clone()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderFailed, err) //nolint:errorlint // prevent err in api
	}

	if name.isComponent {
		if templ.Lookup(name.fragment) == nil {
			return nil, ErrNotExistsComponent
		}

		return templ, nil
	}

	page, exists := views.pages[name.page]
	if !exists {
		page, exists = r.views[SharedViews].pages[name.page]
		if !exists {
			return nil, ErrNotExistsPage
		}
	}

	if name.base == "" && name.layout == "" {
		templ, err = templ.New(name.key()).Parse(`{{block "content" .}}{{end}}`)
	} else {
		base, exists := r.views[SharedViews].layouts[name.base]
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrNotExistsLayout, name.base)
		}

		templ, err = templ.New(name.key()).Parse(base)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: could not parse base: %v", ErrRenderFailed, err) //nolint:errorlint // prevent err in api
	}

	if name.layout != "" {
		layout, exists := views.layouts[name.layout]
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrNotExistsLayout, name.layout)
		}

		if templ, err = templ.New("layout").Parse(layout); err != nil {
			return nil, fmt.Errorf("%w: could not parse layout: %v", ErrRenderFailed, err) //nolint:errorlint // prevent err in api
		}
	}

	if templ, err = templ.New("content").Parse(page); err != nil {
		return nil, fmt.Errorf("%w: could not parse page: %v", ErrRenderFailed, err) //nolint:errorlint // prevent err in api
	}

	return templ, nil
}

// reload reads all views from their file systems again and empties the cache.
func (r *Renderer) reload() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Clear()

	shared, err := loadViews(r.views[SharedViews].viewFS, r.funcMap, baseSuffix)
	if err != nil {
		return fmt.Errorf("%w: could not reload views: %w", ErrRenderFailed, err)
	}

	reloaded := map[string]*viewTemplates{SharedViews: shared}

	for name, views := range r.views {
		if name == SharedViews {
			continue
		}

		contextViews, err := loadContextViews(shared, views.viewFS, r.funcMap)
		if err != nil {
			return fmt.Errorf("%w: could not reload views of context %s: %w", ErrRenderFailed, name, err)
		}

		reloaded[name] = contextViews
	}

	r.views = reloaded

	return nil
}

// AddContext registers the views of a context under name.
// Context components overwrite shared components with the same name.
func (r *Renderer) AddContext(name string, viewFS fs.FS) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == SharedViews {
		return fmt.Errorf("%w: set a name", ErrContextNotAdded)
	}

	if viewFS == nil {
		return fmt.Errorf("%w: no view files", ErrContextNotAdded)
	}

	if _, exists := r.views[name]; exists {
		return fmt.Errorf("%w: already added", ErrContextNotAdded)
	}

	views, err := loadContextViews(r.views[SharedViews], viewFS, r.funcMap)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrContextNotAdded, err)
	}

	r.views[name] = views

	r.logger.LogAttrs(context.Background(), alog.LevelInfo,
		"context added",
		slog.String("context", name),
		slog.String("default_layout", views.defaultLayout),
		slog.Any("pages", views.pageNames()),
	)

	return nil
}

// AddBaseData registers dataFunc to be called for each page rendered in the base layout baseName.
// An empty baseName is the default base layout.
func (r *Renderer) AddBaseData(baseName string, dataFunc DataFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if baseName == "" {
		baseName = defaultLayoutName
	}

	if _, exists := r.views[SharedViews].layouts[baseName]; !exists {
		return fmt.Errorf("%w: could not add base data: missing base layout: %s", ErrCreateRendererFailed, baseName)
	}

	r.baseData[baseName] = append(r.baseData[baseName], dataFunc)

	return nil
}

// AddLayoutData registers dataFunc to be called for each page rendered in the layout of a context.
// An empty layoutName is the default layout.
func (r *Renderer) AddLayoutData(contextName string, layoutName string, dataFunc DataFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if layoutName == "" {
		layoutName = defaultLayoutName
	}

	views, exists := r.views[contextName]
	if !exists || contextName == SharedViews {
		return fmt.Errorf("%w: could not add layout data: unknown context: %s", ErrCreateRendererFailed, contextName)
	}

	if _, exists := views.layouts[layoutName]; !exists {
		return fmt.Errorf("%w: could not add layout data: missing layout: %s", ErrCreateRendererFailed, layoutName)
	}

	if r.layoutData[contextName] == nil {
		r.layoutData[contextName] = map[string][]DataFunc{}
	}

	r.layoutData[contextName][layoutName] = append(r.layoutData[contextName][layoutName], dataFunc)

	return nil
}

// mergeData combines the base and layout data with the page data.
// Page data is added by its form:
// maps are merged, a struct is set under its type name
// and a slice under the name of its elements plus "s".
// The caller has to hold the read lock.
func (r *Renderer) mergeData(ctx context.Context, name templateName, pageData any) (Map, error) {
	data := Map{}

	funcs := append([]DataFunc{}, r.baseData[name.base]...)
	funcs = append(funcs, r.layoutData[name.context][name.layout]...)

	for _, dataFunc := range funcs {
		res, err := dataFunc(ctx)
		if err != nil {
			return nil, err
		}

		maps.Copy(data, res)
	}

	if pageData == nil {
		return data, nil
	}

	val := reflect.Indirect(reflect.ValueOf(pageData))
	if !val.IsValid() {
		return data, nil
	}

	mapType := reflect.TypeOf(map[string]any{})

	switch {
	case val.Type().ConvertibleTo(mapType):
		maps.Copy(data, val.Convert(mapType).Interface().(map[string]any)) //nolint:forcetypeassert // converted above
	case val.Kind() == reflect.Map && val.Type().Key().Kind() == reflect.String:
		iter := val.MapRange()
		for iter.Next() {
			data[iter.Key().String()] = iter.Value().Interface()
		}
	case val.Kind() == reflect.Struct:
		data[val.Type().Name()] = val.Interface()
	case val.Kind() == reflect.Slice:
		data[val.Type().Elem().Name()+"s"] = val.Interface()
	default:
		data["Data"] = val.Interface()
	}

	return data, nil
}

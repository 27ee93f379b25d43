package renderer

import (
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"slices"
	"strings"
)

const (
	baseSuffix   = ".base.html"
	layoutSuffix = ".layout.html"
	htmlSuffix   = ".html"

	defaultLayoutName = "default"
)

// viewTemplates are the raw views of the shared views or of one context.
type viewTemplates struct {
	viewFS fs.FS

	layouts       map[string]string
	pages         map[string]string
	defaultLayout string

	// components holds all components parsed, it is never executed, only cloned.
	components *template.Template
}

func (v *viewTemplates) pageNames() []string {
	names := make([]string, 0, len(v.pages))
	for name := range v.pages {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func loadViews(viewFS fs.FS, funcMap template.FuncMap, layoutSuffix string) (*viewTemplates, error) {
	components, err := template.New("<components>").Funcs(funcMap).Parse("")
	if err != nil {
		return nil, err
	}

	return loadViewsOnto(viewFS, components, layoutSuffix)
}

// loadContextViews loads the views of a context, its components are added to the shared components.
func loadContextViews(shared *viewTemplates, viewFS fs.FS, funcMap template.FuncMap) (*viewTemplates, error) {
	components, err := shared.components.Clone()
	if err != nil {
		return nil, err
	}

	components.Funcs(funcMap)

	return loadViewsOnto(viewFS, components, layoutSuffix)
}

func loadViewsOnto(viewFS fs.FS, components *template.Template, layoutSuffix string) (*viewTemplates, error) {
	layouts, err := readFiles(viewFS, "*"+layoutSuffix, layoutSuffix)
	if err != nil {
		return nil, err
	}

	pages, err := readFiles(viewFS, "pages/*"+htmlSuffix, htmlSuffix)
	if err != nil {
		return nil, err
	}

	rawComponents, err := readFiles(viewFS, "components/*"+htmlSuffix, htmlSuffix)
	if err != nil {
		return nil, err
	}

	for name, content := range rawComponents {
		if _, err := components.New(name).Parse(content); err != nil {
			return nil, fmt.Errorf("could not parse component %s: %w", name, err)
		}
	}

	return &viewTemplates{
		viewFS:        viewFS,
		layouts:       layouts,
		pages:         pages,
		defaultLayout: defaultLayout(layouts),
		components:    components,
	}, nil
}

// defaultLayout is the layout called default, or the only existing layout.
func defaultLayout(layouts map[string]string) string {
	if _, exists := layouts[defaultLayoutName]; exists {
		return defaultLayoutName
	}

	if len(layouts) == 1 {
		for name := range layouts {
			return name
		}
	}

	return ""
}

func readFiles(viewFS fs.FS, pattern string, suffix string) (map[string]string, error) {
	files, err := fs.Glob(viewFS, pattern)
	if err != nil {
		return nil, err
	}

	content := make(map[string]string, len(files))

	for _, file := range files {
		raw, err := fs.ReadFile(viewFS, file)
		if err != nil {
			return nil, fmt.Errorf("could not read %s: %w", file, err)
		}

		content[strings.TrimSuffix(path.Base(file), suffix)] = string(raw)
	}

	return content, nil
}

func templateNames(templ *template.Template) []string {
	names := []string{}

	for _, t := range templ.Templates() {
		names = append(names, t.Name())
	}

	slices.Sort(names)

	return names
}

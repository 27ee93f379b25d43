package renderer

import (
	"fmt"
	"strings"
)

const (
	layoutSeparator   = "=>"
	fragmentSeparator = "#"
)

type templateName struct {
	context string
	base    string
	layout  string
	page    string

	fragment    string
	isComponent bool
	// isShared renders the page from the shared views, whatever the context.
	isShared bool
}

// key identifies the composed template, all fragments of a page share the key.
func (n templateName) key() string {
	if n.isComponent {
		return n.context + ":" + fragmentSeparator
	}

	return n.context + ":" + n.base + layoutSeparator + n.layout + layoutSeparator + n.page
}

// executeName is the name of the template to execute out of the composed template.
func (n templateName) executeName() string {
	if n.fragment != "" {
		return n.fragment
	}

	return n.key()
}

// parseTemplateName parses names of the form `base=>layout=>page#fragment`.
// A name starting with # is a component, a name starting with => is a shared view.
func parseTemplateName(name string) (templateName, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return templateName{}, fmt.Errorf("%w: empty name", ErrInvalidName)
	}

	if strings.HasPrefix(name, layoutSeparator) {
		tName, err := parseTemplateName(strings.TrimPrefix(name, layoutSeparator))
		if err != nil || tName.isComponent || tName.isShared {
			return templateName{}, fmt.Errorf("%w: %s", ErrInvalidName, name)
		}

		tName.isShared = true

		return tName, nil
	}

	if strings.HasPrefix(name, fragmentSeparator) {
		component := strings.TrimPrefix(name, fragmentSeparator)
		if component == "" || strings.Contains(component, fragmentSeparator) || strings.Contains(component, layoutSeparator) {
			return templateName{}, fmt.Errorf("%w: %s", ErrInvalidName, name)
		}

		return templateName{fragment: component, isComponent: true}, nil
	}

	tName := templateName{}

	if parts := strings.Split(name, fragmentSeparator); len(parts) > 1 {
		if len(parts) > 2 || parts[1] == "" { //nolint:mnd // page and fragment
			return templateName{}, fmt.Errorf("%w: %s", ErrInvalidName, name)
		}

		name = parts[0]
		tName.fragment = strings.TrimSpace(parts[1])

		if strings.Contains(tName.fragment, layoutSeparator) {
			return templateName{}, fmt.Errorf("%w: %s", ErrInvalidName, name)
		}
	}

	parts := strings.Split(name, layoutSeparator)
	if len(parts) > 3 { //nolint:mnd // base, layout, page
		return templateName{}, fmt.Errorf("%w: too many layouts: %s", ErrInvalidName, name)
	}

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return templateName{}, fmt.Errorf("%w: %s", ErrInvalidName, name)
		}
	}

	switch len(parts) {
	case 1:
		tName.page = parts[0]
	case 2: //nolint:mnd
		tName.layout, tName.page = parts[0], parts[1]
	default:
		tName.base, tName.layout, tName.page = parts[0], parts[1], parts[2]
	}

	return tName, nil
}

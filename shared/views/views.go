// Package views contains the views shared by all contexts.
package views

import (
	"context"
	"embed"
)

//go:embed *.html pages/*.html components/*.html
var SharedViews embed.FS

// NewDefaultBaseDataFunc returns the data every page in the default base layout needs.
func NewDefaultBaseDataFunc(appName string) func(context.Context) (map[string]any, error) {
	if appName == "" {
		appName = "Classic Comedians"
	}

	return func(context.Context) (map[string]any, error) {
		return map[string]any{
			"AppName": appName,
		}, nil
	}
}

// Package views contains the html views of the comedian context.
package views

import "embed"

//go:embed *.html pages/*.html components/*.html
var ComedianViews embed.FS

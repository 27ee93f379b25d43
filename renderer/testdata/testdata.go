// Package testdata contains view files to test the renderer with.
package testdata

import (
	"testing/fstest"
)

const (
	ComponentContent        = "component:greeting"
	PageContent             = "page:home"
	FragmentContent         = "fragment:quote"
	BaseContent             = "base:default"
	OtherBaseContent        = "base:other"
	ContextLayoutContent    = "layout:default"
	ContextOtherContent     = "layout:other"
	ContextPageContent      = "page:list"
	ContextComponentContent = "component:context-greeting"

	ContextName = "comedian"
)

var FilesEmpty = fstest.MapFS{}

// SharedViews returns views with a default and an other base layout.
func SharedViews() fstest.MapFS {
	return fstest.MapFS{
		"components/greeting.html": {Data: []byte(ComponentContent)},
		"components/name.html":     {Data: []byte(`{{ .FirstName }} {{ .LastName }}`)},
		"pages/home.html":          {Data: []byte(PageContent + ` {{template "greeting" .}}`)},
		"pages/quote.html":         {Data: []byte(`before {{block "quote" .}}` + FragmentContent + `{{end}} after`)},
		"pages/map.html":           {Data: []byte(`title={{ .title }}`)},
		"pages/struct.html":        {Data: []byte(`first={{ .Comedian.FirstName }}`)},
		"pages/slice.html":         {Data: []byte(`{{ range .Comedians }}<li>{{ .LastName }}</li>{{ end }}`)},
		"pages/funcs.html":         {Data: []byte(`{{ shout "stan" }}`)},
		"pages/broken.html":        {Data: []byte(`{{ index .Missing 1 }}`)},
		"default.base.html": {Data: []byte(BaseContent + ` {{ .baseTitle }}
{{block "layout" .}}{{block "content" .}}placeholder{{end}}{{end}}`)},
		"other.base.html": {Data: []byte(OtherBaseContent + `
{{block "layout" .}}{{block "content" .}}placeholder{{end}}{{end}}`)},
	}
}

// SharedViewsWithoutBase returns views without any base layout.
func SharedViewsWithoutBase() fstest.MapFS {
	fs := SharedViews()
	delete(fs, "default.base.html")
	delete(fs, "other.base.html")

	return fs
}

// ContextViews returns the views of the context ContextName.
func ContextViews() fstest.MapFS {
	return fstest.MapFS{
		"components/greeting.html": {Data: []byte(ContextComponentContent)},
		"pages/list.html":          {Data: []byte(ContextPageContent + ` {{template "greeting" .}} {{template "name" .}}`)},
		"pages/home.html":          {Data: []byte("context home")},
		"default.layout.html": {Data: []byte(ContextLayoutContent + ` {{ .layoutTitle }}
{{block "content" .}}placeholder{{end}}`)},
		"other.layout.html": {Data: []byte(ContextOtherContent + `
{{block "content" .}}placeholder{{end}}`)},
	}
}

// FilesEcho uses the route func.
var FilesEcho = fstest.MapFS{
	"default.base.html": &fstest.MapFile{Data: []byte(`{{block "layout" .}}{{block "content" .}}{{end}}{{end}}`)},
	"pages/hello.html":  &fstest.MapFile{Data: []byte(`<a href="{{ route "comedian.show" 7 }}">Details</a>`)},
}

// EchoContextViews are the views of the context ContextName used with echo.
var EchoContextViews = fstest.MapFS{
	"default.layout.html": &fstest.MapFile{Data: []byte(`<main>{{block "content" .}}{{end}}</main>`)},
	"pages/hello.html":    &fstest.MapFile{Data: []byte(`context hello`)},
}

package server_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	comedians "github.com/go-arrower/classic-comedians"
	"github.com/go-arrower/classic-comedians/alog"
	"github.com/go-arrower/classic-comedians/secret"
	"github.com/go-arrower/classic-comedians/server"
)

// browser is a web client running against a fresh instance of the application.
// It keeps cookies and follows redirects, like a user's browser does.
type browser struct {
	t      *testing.T
	client *http.Client
	base   *url.URL
}

func newBrowser(t *testing.T) *browser {
	t.Helper()

	srv, err := server.New(context.Background(), &comedians.Config{
		ApplicationName: "classic-comedians",
		Environment:     comedians.TestEnv,
		HTTP:            comedians.HTTP{CookieSecret: secret.New("groucho-never-tells")},
	}, comedians.WithLogger(alog.NewNoop()))
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	client := ts.Client()
	client.Jar = jar

	base, err := url.Parse(ts.URL)
	require.NoError(t, err)

	return &browser{t: t, client: client, base: base}
}

// page is a response of the application with its parsed html.
type page struct {
	t    *testing.T
	URL  *url.URL
	Code int
	doc  *html.Node
}

func (b *browser) Get(path string) *page {
	b.t.Helper()

	req, err := http.NewRequestWithContext(b.t.Context(), http.MethodGet, b.resolve(path).String(), nil)
	require.NoError(b.t, err)

	return b.do(req)
}

func (b *browser) Post(path string, values url.Values) *page {
	b.t.Helper()

	req, err := http.NewRequestWithContext(b.t.Context(), http.MethodPost, b.resolve(path).String(), strings.NewReader(values.Encode()))
	require.NoError(b.t, err)

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return b.do(req)
}

func (b *browser) do(req *http.Request) *page {
	b.t.Helper()

	res, err := b.client.Do(req)
	require.NoError(b.t, err)

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(b.t, err)

	doc, err := html.Parse(strings.NewReader(string(body)))
	require.NoError(b.t, err)

	return &page{t: b.t, URL: res.Request.URL, Code: res.StatusCode, doc: doc}
}

func (b *browser) resolve(path string) *url.URL {
	ref, err := url.Parse(path)
	require.NoError(b.t, err)

	return b.base.ResolveReference(ref)
}

// Submit fills the form containing the submit button with the given value,
// overwrites the form's fields with values and sends it like a browser would.
func (b *browser) Submit(p *page, submitValue string, values map[string]string) *page {
	b.t.Helper()

	form := p.formOf(submitValue)

	fields := url.Values{}

	for _, n := range findAll(form, func(n *html.Node) bool {
		return n.DataAtom == atom.Input || n.DataAtom == atom.Select || n.DataAtom == atom.Textarea
	}) {
		name := attr(n, "name")
		if name == "" {
			continue
		}

		switch n.DataAtom {
		case atom.Select:
			fields.Set(name, selectedOption(n))
		case atom.Textarea:
			fields.Set(name, text(n))
		default:
			if attr(n, "type") == "submit" {
				continue
			}

			fields.Set(name, attr(n, "value"))
		}
	}

	for name, value := range values {
		fields.Set(name, value)
	}

	action := attr(form, "action")
	if action == "" {
		action = p.URL.Path
	}

	if strings.EqualFold(attr(form, "method"), http.MethodPost) {
		return b.Post(action, fields)
	}

	return b.Get(action + "?" + fields.Encode())
}

func (p *page) formOf(submitValue string) *html.Node {
	p.t.Helper()

	for _, form := range findAll(p.doc, isElement(atom.Form)) {
		submits := findAll(form, func(n *html.Node) bool {
			return n.DataAtom == atom.Input && attr(n, "type") == "submit" && attr(n, "value") == submitValue
		})
		if len(submits) > 0 {
			return form
		}
	}

	require.FailNow(p.t, "no form with submit button", submitValue)

	return nil
}

// Links returns the hrefs of all anchors.
func (p *page) Links() []string {
	var links []string

	for _, a := range findAll(p.doc, isElement(atom.A)) {
		links = append(links, attr(a, "href"))
	}

	return links
}

// Rows returns the text of the cells of each row in all table bodies.
func (p *page) Rows() [][]string {
	var rows [][]string

	for _, tbody := range findAll(p.doc, isElement(atom.Tbody)) {
		for _, tr := range children(tbody, atom.Tr) {
			var cells []string
			for _, td := range children(tr, atom.Td) {
				cells = append(cells, strings.TrimSpace(text(td)))
			}

			rows = append(rows, cells)
		}
	}

	return rows
}

// FirstCells returns the text of the first cell of each row, like the selector `table tbody tr td:first-child`.
func (p *page) FirstCells() []string {
	var cells []string

	for _, row := range p.Rows() {
		if len(row) > 0 {
			cells = append(cells, row[0])
		}
	}

	return cells
}

// Row returns the cells of the first row whose first cell is firstCell.
func (p *page) Row(firstCell string) []string {
	for _, row := range p.Rows() {
		if len(row) > 0 && row[0] == firstCell {
			return row
		}
	}

	return nil
}

// Value returns the current value of the form element with the id.
func (p *page) Value(id string) string {
	p.t.Helper()

	nodes := findAll(p.doc, func(n *html.Node) bool { return n.Type == html.ElementNode && attr(n, "id") == id })
	require.Len(p.t, nodes, 1, "element with id: "+id)

	if nodes[0].DataAtom == atom.Select {
		return selectedOption(nodes[0])
	}

	return attr(nodes[0], "value")
}

// Options returns the options of the select with the id by their text.
func (p *page) Options(id string) map[string]string {
	options := map[string]string{}

	for _, sel := range findAll(p.doc, func(n *html.Node) bool { return n.DataAtom == atom.Select && attr(n, "id") == id }) {
		for _, o := range findAll(sel, isElement(atom.Option)) {
			options[strings.TrimSpace(text(o))] = attr(o, "value")
		}
	}

	return options
}

// Text returns the whole text of the page.
func (p *page) Text() string {
	return text(p.doc)
}

func isElement(a atom.Atom) func(n *html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	}
}

func findAll(root *html.Node, match func(n *html.Node) bool) []*html.Node {
	var nodes []*html.Node

	walk(root, func(n *html.Node) {
		if n != root && n.Type == html.ElementNode && match(n) {
			nodes = append(nodes, n)
		}
	})

	return nodes
}

// walk calls f for n and all its descendants in document order.
func walk(n *html.Node, f func(n *html.Node)) {
	f(n)

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, f)
	}
}

func children(n *html.Node, a atom.Atom) []*html.Node {
	var nodes []*html.Node

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			nodes = append(nodes, c)
		}
	}

	return nodes
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}

	return ""
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}

	return false
}

func text(n *html.Node) string {
	var sb strings.Builder

	walk(n, func(d *html.Node) {
		if d.Type == html.TextNode {
			sb.WriteString(d.Data)
		}
	})

	return sb.String()
}

// selectedOption returns the value a browser submits for the select.
func selectedOption(sel *html.Node) string {
	options := findAll(sel, isElement(atom.Option))
	if len(options) == 0 {
		return ""
	}

	for _, o := range options {
		if hasAttr(o, "selected") {
			return attr(o, "value")
		}
	}

	return attr(options[0], "value")
}

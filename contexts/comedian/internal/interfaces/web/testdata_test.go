package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/domain"
)

var (
	groups = []domain.Group{
		{ID: 1, Name: "None (solo comedian)"},
		{ID: 2, Name: "The Marx Brothers"},
	}

	groucho = domain.Comedian{
		ID:        1,
		FirstName: "Groucho",
		LastName:  "Marx",
		BirthDate: time.Date(1890, 10, 2, 0, 0, 0, 0, time.UTC),
		DeathDate: time.Date(1977, 8, 19, 0, 0, 0, 0, time.UTC),
		GroupID:   2,
	}
)

// recordingRenderer keeps the name and data of the last rendered view.
type recordingRenderer struct {
	mu   sync.Mutex
	name string
	data echo.Map
}

func (r *recordingRenderer) Render(_ io.Writer, name string, data any, _ echo.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.name = name
	r.data, _ = data.(echo.Map)

	return nil
}

func (r *recordingRenderer) Name() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.name
}

func (r *recordingRenderer) Data() echo.Map {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.data
}

// newTestRouter is a helper for unit tests, by returning a valid web router.
// The list route is registered, so redirects to it can be reversed.
func newTestRouter() (*echo.Echo, *recordingRenderer) {
	renderer := &recordingRenderer{}

	e := echo.New()
	e.Renderer = renderer
	e.GET("/Comedian", func(c echo.Context) error { return c.NoContent(http.StatusOK) }).Name = "comedian.index"

	return e, renderer
}

// newContext returns a context for the route with the given id.
func newContext(e *echo.Echo, req *http.Request, id string) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()

	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	return c, rec
}

func newFormRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	return req
}

func validForm() url.Values {
	return url.Values{
		"FirstName": {"Buster"},
		"LastName":  {"Keaton"},
		"BirthDate": {"1895-10-04T00:00:00"},
		"DeathDate": {"1966-02-01"},
		"GroupId":   {"1"},
	}
}

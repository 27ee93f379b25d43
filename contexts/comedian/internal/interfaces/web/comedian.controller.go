package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/go-arrower/classic-comedians/alog"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/application"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/domain"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/views/pages"
)

// SessionName is the name of the session holding the flash messages.
const SessionName = "comedians.session"

func NewComedianController(logger alog.Logger, app application.App) *ComedianController {
	if logger == nil {
		logger = alog.NewNoop()
	}

	return &ComedianController{
		logger: logger,
		app:    app,
	}
}

type ComedianController struct {
	logger alog.Logger

	app application.App
}

func (cc *ComedianController) Index() func(c echo.Context) error {
	return func(c echo.Context) error {
		res, err := cc.app.ListComedians.H(c.Request().Context(), application.ListComediansQuery{})
		if err != nil {
			return fmt.Errorf("could not list comedians: %w", err)
		}

		return c.Render(http.StatusOK, "index", echo.Map{
			"Title":     "Comedians",
			"Comedians": pages.PresentComedianList(res.Comedians, res.Groups),
			"Flashes":   cc.flashes(c),
		})
	}
}

func (cc *ComedianController) Create() func(c echo.Context) error {
	return func(c echo.Context) error {
		res, err := cc.app.ListGroups.H(c.Request().Context(), application.ListGroupsQuery{})
		if err != nil {
			return fmt.Errorf("could not list groups: %w", err)
		}

		return c.Render(http.StatusOK, "create", formData(pages.PresentCreateForm(res.Groups)))
	}
}

func (cc *ComedianController) Store() func(c echo.Context) error {
	return func(c echo.Context) error {
		var form comedianForm
		if err := c.Bind(&form); err != nil {
			return err //nolint:wrapcheck // Bind returns an echo.HTTPError
		}

		req, err := form.toCreateRequest()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
		}

		_, err = cc.app.CreateComedian.H(c.Request().Context(), req)
		if verrs := (validator.ValidationErrors{}); errors.As(err, &verrs) {
			res, err := cc.app.ListGroups.H(c.Request().Context(), application.ListGroupsQuery{})
			if err != nil {
				return fmt.Errorf("could not list groups: %w", err)
			}

			f := form.onto(pages.PresentCreateForm(res.Groups)).WithErrors(validationMessages(verrs))

			return c.Render(http.StatusUnprocessableEntity, "create", formData(f))
		}

		if err != nil {
			return fmt.Errorf("could not create comedian: %w", err)
		}

		cc.addFlash(c, "Comedian created")

		return c.Redirect(http.StatusFound, c.Echo().Reverse("comedian.index"))
	}
}

func (cc *ComedianController) Show() func(c echo.Context) error {
	return cc.showComedian("details", detailsData)
}

func (cc *ComedianController) Edit() func(c echo.Context) error {
	return cc.showComedian("edit", func(res application.ShowComedianResponse) echo.Map {
		return formData(pages.PresentEditForm(res.Comedian, res.Groups))
	})
}

func (cc *ComedianController) Update() func(c echo.Context) error {
	return func(c echo.Context) error {
		id, err := comedianID(c)
		if err != nil {
			return c.NoContent(http.StatusNotFound)
		}

		var form comedianForm
		if err := c.Bind(&form); err != nil {
			return err //nolint:wrapcheck // Bind returns an echo.HTTPError
		}

		cmd, err := form.toUpdateCommand(id)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
		}

		err = cc.app.UpdateComedian.H(c.Request().Context(), cmd)
		if verrs := (validator.ValidationErrors{}); errors.As(err, &verrs) {
			res, err := cc.app.ShowComedian.H(c.Request().Context(), application.ShowComedianQuery{ID: id})
			if errors.Is(err, domain.ErrNotFound) {
				return c.NoContent(http.StatusNotFound)
			}

			if err != nil {
				return fmt.Errorf("could not show comedian: %w", err)
			}

			f := form.onto(pages.PresentEditForm(res.Comedian, res.Groups)).WithErrors(validationMessages(verrs))

			return c.Render(http.StatusUnprocessableEntity, "edit", formData(f))
		}

		if errors.Is(err, domain.ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}

		if err != nil {
			return fmt.Errorf("could not update comedian: %w", err)
		}

		cc.addFlash(c, "Comedian updated")

		return c.Redirect(http.StatusFound, c.Echo().Reverse("comedian.index"))
	}
}

func (cc *ComedianController) Delete() func(c echo.Context) error {
	return cc.showComedian("delete", detailsData)
}

func (cc *ComedianController) Destroy() func(c echo.Context) error {
	return func(c echo.Context) error {
		id, err := comedianID(c)
		if err != nil {
			return c.NoContent(http.StatusNotFound)
		}

		err = cc.app.DeleteComedian.H(c.Request().Context(), application.DeleteComedianCommand{ID: id})
		if err != nil {
			return fmt.Errorf("could not delete comedian: %w", err)
		}

		cc.addFlash(c, "Comedian deleted")

		return c.Redirect(http.StatusFound, c.Echo().Reverse("comedian.index"))
	}
}

// showComedian renders page with the data of the comedian of the route.
func (cc *ComedianController) showComedian(
	page string,
	present func(res application.ShowComedianResponse) echo.Map,
) func(c echo.Context) error {
	return func(c echo.Context) error {
		id, err := comedianID(c)
		if err != nil {
			return c.NoContent(http.StatusNotFound)
		}

		res, err := cc.app.ShowComedian.H(c.Request().Context(), application.ShowComedianQuery{ID: id})
		if errors.Is(err, domain.ErrNotFound) {
			return c.NoContent(http.StatusNotFound)
		}

		if err != nil {
			return fmt.Errorf("could not show comedian: %w", err)
		}

		return c.Render(http.StatusOK, page, present(res))
	}
}

func detailsData(res application.ShowComedianResponse) echo.Map {
	return echo.Map{
		"Title":           res.Comedian.FullName(),
		"ComedianDetails": pages.PresentComedian(res.Comedian, res.Groups),
	}
}

func formData(form pages.ComedianForm) echo.Map {
	title := "Create"
	if form.ID != 0 {
		title = "Edit"
	}

	return echo.Map{
		"Title":        title,
		"ComedianForm": form,
	}
}

// flashes returns the flash messages of the session and removes them.
// Without a session, e.g. no session middleware is registered, there are none.
func (cc *ComedianController) flashes(c echo.Context) []any {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return nil
	}

	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil
	}

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		cc.logger.Log(c.Request().Context(), slog.LevelError, "could not save session", alog.Error(err))
	}

	return flashes
}

func (cc *ComedianController) addFlash(c echo.Context, msg string) {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return
	}

	sess.AddFlash(msg)

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		cc.logger.Log(c.Request().Context(), slog.LevelError, "could not save session", alog.Error(err))
	}
}

var errInvalidID = errors.New("invalid comedian id")

// comedianID returns the id of the route. An id that is not a number cannot exist.
func comedianID(c echo.Context) (domain.ComedianID, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}

	return domain.ComedianID(id), nil
}

package web

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/application"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/domain"
	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/views/pages"
)

var (
	errInvalidDate  = errors.New("invalid date")
	errInvalidGroup = errors.New("invalid group")
)

// dateLayouts are tried in order. The first is the format of the date input element,
// the second of the datetime-local input element.
var dateLayouts = []string{ //nolint:gochecknoglobals // read only
	pages.InputDateLayout,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// comedianForm is the form as submitted by the browser.
type comedianForm struct {
	FirstName string `form:"FirstName"`
	LastName  string `form:"LastName"`
	BirthDate string `form:"BirthDate"`
	DeathDate string `form:"DeathDate"`
	GroupID   string `form:"GroupId"`
}

func (f comedianForm) toCreateRequest() (application.CreateComedianRequest, error) {
	birth, death, group, err := f.parse()
	if err != nil {
		return application.CreateComedianRequest{}, err
	}

	return application.CreateComedianRequest{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		BirthDate: birth,
		DeathDate: death,
		GroupID:   group,
	}, nil
}

func (f comedianForm) toUpdateCommand(id domain.ComedianID) (application.UpdateComedianCommand, error) {
	birth, death, group, err := f.parse()
	if err != nil {
		return application.UpdateComedianCommand{}, err
	}

	return application.UpdateComedianCommand{
		ID:        id,
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		BirthDate: birth,
		DeathDate: death,
		GroupID:   group,
	}, nil
}

func (f comedianForm) parse() (time.Time, time.Time, domain.GroupID, error) {
	birth, err := parseDate(f.BirthDate)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("birth date: %w", err)
	}

	death, err := parseDate(f.DeathDate)
	if err != nil {
		return time.Time{}, time.Time{}, 0, fmt.Errorf("death date: %w", err)
	}

	group, err := parseGroupID(f.GroupID)
	if err != nil {
		return time.Time{}, time.Time{}, 0, err
	}

	return birth, death, group, nil
}

// onto returns form with the submitted values, so they can be shown again.
func (f comedianForm) onto(form pages.ComedianForm) pages.ComedianForm {
	return form.WithInput(f.FirstName, f.LastName, f.BirthDate, f.DeathDate, f.GroupID)
}

// parseDate parses value in any of the dateLayouts. An empty value is the zero time.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", errInvalidDate, value)
}

// parseGroupID parses value as a group id. An empty value is no group and fails validation later.
func parseGroupID(value string) (domain.GroupID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errInvalidGroup, value)
	}

	return domain.GroupID(id), nil
}

var fieldLabels = map[string]string{ //nolint:gochecknoglobals // read only
	"FirstName": "First name",
	"LastName":  "Last name",
	"BirthDate": "Born",
	"DeathDate": "Died",
	"GroupID":   "Member of",
}

// validationMessages returns a message for each invalid field by the field's name.
func validationMessages(verrs validator.ValidationErrors) map[string]string {
	msgs := make(map[string]string, len(verrs))

	for _, fe := range verrs {
		label, ok := fieldLabels[fe.Field()]
		if !ok {
			label = fe.Field()
		}

		switch fe.Tag() {
		case "required":
			msgs[fe.Field()] = label + " is required"
		case "max":
			msgs[fe.Field()] = label + " must be at most " + fe.Param() + " characters long"
		case "gt":
			msgs[fe.Field()] = "Select a group"
		default:
			msgs[fe.Field()] = label + " is invalid"
		}
	}

	return msgs
}

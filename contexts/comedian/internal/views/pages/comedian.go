// Package pages maps comedians and groups to the data the views render.
// All functions are pure.
package pages

import (
	"strconv"
	"time"

	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/domain"
)

const (
	// InputDateLayout is the format of dates in form inputs.
	InputDateLayout = "2006-01-02"
	// DisplayDateLayout is the format of dates shown to the user.
	DisplayDateLayout = "01/02/2006"
)

type (
	ComedianRow struct {
		ID        domain.ComedianID
		FullName  string
		GroupName string
	}

	// ComedianForm is the data of the create and edit form.
	// All values are strings, so invalid input can be shown again.
	ComedianForm struct {
		ID        domain.ComedianID
		FirstName string
		LastName  string
		BirthDate string
		DeathDate string
		GroupID   string

		GroupOptions []GroupOption
		// Errors maps the name of a form field to its validation message.
		Errors map[string]string
	}

	GroupOption struct {
		ID       domain.GroupID
		Name     string
		Selected bool
	}

	// ComedianDetails is shown on the details and the delete confirmation page.
	ComedianDetails struct {
		ID        domain.ComedianID
		FullName  string
		FirstName string
		LastName  string
		BirthDate string
		DeathDate string
		GroupName string
	}
)

// PresentComedianList joins each comedian with its group.
// Comedians of a not existing group are left out.
func PresentComedianList(comedians []domain.Comedian, groups []domain.Group) []ComedianRow {
	names := groupNames(groups)
	rows := make([]ComedianRow, 0, len(comedians))

	for _, c := range comedians {
		name, exists := names[c.GroupID]
		if !exists {
			continue
		}

		rows = append(rows, ComedianRow{
			ID:        c.ID,
			FullName:  c.FullName(),
			GroupName: name,
		})
	}

	return rows
}

// PresentCreateForm returns an empty form.
func PresentCreateForm(groups []domain.Group) ComedianForm {
	return ComedianForm{
		GroupOptions: PresentGroupOptions(groups, 0),
		Errors:       map[string]string{},
	}
}

// PresentEditForm returns the form filled with the comedian, its group is selected.
func PresentEditForm(comedian domain.Comedian, groups []domain.Group) ComedianForm {
	groupID := ""
	if comedian.GroupID != 0 {
		groupID = strconv.Itoa(int(comedian.GroupID))
	}

	return ComedianForm{
		ID:           comedian.ID,
		FirstName:    comedian.FirstName,
		LastName:     comedian.LastName,
		BirthDate:    formatDate(comedian.BirthDate, InputDateLayout),
		DeathDate:    formatDate(comedian.DeathDate, InputDateLayout),
		GroupID:      groupID,
		GroupOptions: PresentGroupOptions(groups, comedian.GroupID),
		Errors:       map[string]string{},
	}
}

// PresentGroupOptions returns one option per group, never nil.
func PresentGroupOptions(groups []domain.Group, selected domain.GroupID) []GroupOption {
	options := make([]GroupOption, 0, len(groups))

	for _, g := range groups {
		options = append(options, GroupOption{
			ID:       g.ID,
			Name:     g.Name,
			Selected: g.ID == selected,
		})
	}

	return options
}

// PresentComedian returns the comedian with its group name and dates formatted for display.
// The group name is empty if the group does not exist.
func PresentComedian(comedian domain.Comedian, groups []domain.Group) ComedianDetails {
	return ComedianDetails{
		ID:        comedian.ID,
		FullName:  comedian.FullName(),
		FirstName: comedian.FirstName,
		LastName:  comedian.LastName,
		BirthDate: formatDate(comedian.BirthDate, DisplayDateLayout),
		DeathDate: formatDate(comedian.DeathDate, DisplayDateLayout),
		GroupName: groupNames(groups)[comedian.GroupID],
	}
}

func groupNames(groups []domain.Group) map[domain.GroupID]string {
	names := make(map[domain.GroupID]string, len(groups))
	for _, g := range groups {
		names[g.ID] = g.Name
	}

	return names
}

// formatDate formats t in UTC, the zero time is empty.
func formatDate(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}

	return t.UTC().Format(layout)
}

package pages

import (
	"slices"
	"strconv"

	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/domain"
)

// WithInput returns the form with the values as submitted, so the user can correct them.
func (f ComedianForm) WithInput(firstName, lastName, birthDate, deathDate, groupID string) ComedianForm {
	f.FirstName = firstName
	f.LastName = lastName
	f.BirthDate = birthDate
	f.DeathDate = deathDate
	f.GroupID = groupID

	selected, _ := strconv.Atoi(groupID)

	f.GroupOptions = slices.Clone(f.GroupOptions)
	for i := range f.GroupOptions {
		f.GroupOptions[i].Selected = f.GroupOptions[i].ID == domain.GroupID(selected)
	}

	return f
}

// WithErrors returns the form with the validation messages by field name.
func (f ComedianForm) WithErrors(errs map[string]string) ComedianForm {
	if errs == nil {
		errs = map[string]string{}
	}

	f.Errors = errs

	return f
}

// HasErrors reports whether any field is invalid.
func (f ComedianForm) HasErrors() bool {
	return len(f.Errors) > 0
}

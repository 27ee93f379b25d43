// Package domain contains the comedians and the groups they perform in.
package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned when there is no comedian with a given id.
var ErrNotFound = errors.New("not found")

type (
	ComedianID int
	GroupID    int
)

// Comedian is a performer. GroupID should reference an existing Group, but it is never enforced.
type Comedian struct {
	ID        ComedianID
	FirstName string
	LastName  string
	BirthDate time.Time
	DeathDate time.Time
	GroupID   GroupID
}

func (c Comedian) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Group is an act comedians perform in. A solo comedian is member of a group for solo comedians.
type Group struct {
	ID   GroupID
	Name string
}

package repository

import (
	"time"

	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/domain"
)

// SeedGroups returns the groups the application starts with.
func SeedGroups() []domain.Group {
	return []domain.Group{
		{ID: 1, Name: "None (solo comedian)"},
		{ID: 2, Name: "The Marx Brothers"},
		{ID: 3, Name: "Burns and Allen"},
		{ID: 4, Name: "The Three Stooges"},
		{ID: 5, Name: "Laurel and Hardy"},
	}
}

// SeedComedians returns the comedians the application starts with.
func SeedComedians() []domain.Comedian {
	return []domain.Comedian{
		{ID: 1, FirstName: "Groucho", LastName: "Marx", BirthDate: date(1890, 10, 2), DeathDate: date(1977, 8, 19), GroupID: 2},
		{ID: 2, FirstName: "Chico", LastName: "Marx", BirthDate: date(1887, 3, 22), DeathDate: date(1961, 10, 11), GroupID: 2},
		{ID: 3, FirstName: "Harpo", LastName: "Marx", BirthDate: date(1888, 11, 23), DeathDate: date(1964, 9, 28), GroupID: 2},
		{ID: 4, FirstName: "Lucy", LastName: "Ball", BirthDate: date(1911, 8, 6), DeathDate: date(1989, 4, 26), GroupID: 1},
		{ID: 5, FirstName: "Gracie", LastName: "Allen", BirthDate: date(1895, 7, 26), DeathDate: date(1964, 8, 27), GroupID: 3},
		{ID: 6, FirstName: "George", LastName: "Burns", BirthDate: date(1896, 1, 20), DeathDate: date(1996, 3, 9), GroupID: 3},
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

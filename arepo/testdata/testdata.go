package testdata

import (
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

type EntityID string

type Entity struct {
	ID   EntityID
	Name string
}

type (
	EntityIDInt     int
	EntityWithIntPK struct {
		ID   EntityIDInt
		Name string
	}
)

type (
	EntityIDUint     uint
	EntityWithUintPK struct {
		ID   EntityIDUint
		Name string
	}
)

type EntityWithNamePK struct {
	Name        string
	Description string
}

var DefaultEntity = RandomEntity()

func RandomEntity() Entity {
	return Entity{
		ID:   EntityID(uuid.New().String()),
		Name: gofakeit.Name(),
	}
}

func RandomEntityWithIntPK(id int) EntityWithIntPK {
	return EntityWithIntPK{
		ID:   EntityIDInt(id),
		Name: gofakeit.Name(),
	}
}

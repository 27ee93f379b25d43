package arepo

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test returns a MemoryRepository tuned for unit testing.
// It exposes a set of repository specific assertions.
func Test[E any, ID id](t *testing.T, opts ...Option) *TestRepository[E, ID] {
	if t == nil {
		panic("t is nil")
	}

	repo := NewMemoryRepository[E, ID](opts...)

	return &TestRepository[E, ID]{
		MemoryRepository: repo,
		TestAssertions:   TestAssert[E, ID](t, repo),
	}
}

// TestRepository is a MemoryRepository with assertions on top.
type TestRepository[E any, ID id] struct {
	*MemoryRepository[E, ID]
	*TestAssertions[E, ID]
}

// TestAssert returns assertions for any existing Repository.
func TestAssert[E any, ID id](t *testing.T, repo Repository[E, ID]) *TestAssertions[E, ID] {
	if t == nil {
		panic("t is nil")
	}

	return &TestAssertions[E, ID]{t: t, repo: repo}
}

// TestAssertions follow stretchr/testify: every assertion returns
// whether it was successful.
type TestAssertions[E any, ID id] struct {
	t    *testing.T
	repo Repository[E, ID]
}

// Empty asserts that the repository has no entities.
func (a *TestAssertions[E, ID]) Empty(msgAndArgs ...any) bool {
	a.t.Helper()

	if c := a.count(); c != 0 {
		return assert.Fail(a.t, fmt.Sprintf("repository is not empty, it has %d entities", c), msgAndArgs...)
	}

	return true
}

// NotEmpty asserts that the repository has at least one entity.
func (a *TestAssertions[E, ID]) NotEmpty(msgAndArgs ...any) bool {
	a.t.Helper()

	if a.count() == 0 {
		return assert.Fail(a.t, "repository is empty, should not be", msgAndArgs...)
	}

	return true
}

// Total asserts that the repository has exactly total entities.
func (a *TestAssertions[E, ID]) Total(total int, msgAndArgs ...any) bool {
	a.t.Helper()

	if c := a.count(); c != total {
		return assert.Fail(a.t, fmt.Sprintf("repository does not have %d entities, it has: %d", total, c), msgAndArgs...)
	}

	return true
}

func (a *TestAssertions[E, ID]) count() int {
	c, err := a.repo.Count(context.Background())
	if err != nil {
		a.t.Errorf("could not count entities: %v", err)
	}

	return c
}

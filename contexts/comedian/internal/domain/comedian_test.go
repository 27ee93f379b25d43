package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/classic-comedians/contexts/comedian/internal/domain"
)

func TestComedian_FullName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Groucho Marx", domain.Comedian{FirstName: "Groucho", LastName: "Marx"}.FullName())
	assert.Equal(t, " ", domain.Comedian{}.FullName())
}

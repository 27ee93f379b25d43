package aassert

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

// NumFields asserts that the struct object has the expected number of exported fields.
// Exported fields of nested structs, pointers to structs and slice elements are counted as well.
//
// Use it next to code mapping a struct from one layer to another,
// so that adding a field fails the test until the mapping is revisited.
func NumFields(t *testing.T, expected int, object any, msgAndArgs ...any) bool {
	t.Helper()

	typ := reflect.TypeOf(object)
	if typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	if typ == nil || typ.Kind() != reflect.Struct {
		return assert.Fail(t, "invalid argument, it has to be a struct or a pointer to one", msgAndArgs...)
	}

	if actual := countFields(typ); actual != expected {
		t.Logf("the exported fields of %s changed: check all functions mapping it and the test data using it", typ)

		return assert.Fail(t, fmt.Sprintf("struct changed, it has: %d fields, expected: %d", actual, expected), msgAndArgs...)
	}

	return true
}

func countFields(typ reflect.Type) int {
	count := 0

	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		count++
		count += nestedFields(field.Type)
	}

	return count
}

func nestedFields(typ reflect.Type) int {
	switch typ.Kind() { //nolint:exhaustive // other kinds have no fields
	case reflect.Struct:
		return countFields(typ)
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return nestedFields(typ.Elem())
	default:
		return 0
	}
}

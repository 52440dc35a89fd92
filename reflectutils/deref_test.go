package reflectutils

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type inner struct {
	Value string
}

type outer struct {
	Name   string
	Nested *inner

	hidden string
}

func TestDeref(t *testing.T) {
	t.Run("it should dereference pointers recursively", func(t *testing.T) {
		// GIVEN
		value := "hello"
		ptr := &value
		ptrPtr := &ptr

		// WHEN
		result := Deref(reflect.ValueOf(ptrPtr))

		// THEN
		assert.Equal(t, reflect.String, result.Kind())
		assert.Equal(t, "hello", result.String())
	})

	t.Run("it should return non-pointer values unchanged", func(t *testing.T) {
		// WHEN
		result := Deref(reflect.ValueOf(42))

		// THEN
		assert.Equal(t, 42, int(result.Int()))
	})
}

func TestWalk(t *testing.T) {
	t.Run("it should visit the object and all exported fields", func(t *testing.T) {
		// GIVEN
		obj := &outer{Name: "n", Nested: &inner{Value: "v"}, hidden: "h"}
		visited := make([]reflect.Kind, 0)

		// WHEN
		Walk(obj, func(val reflect.Value, typ reflect.Type) {
			visited = append(visited, typ.Kind())
		})

		// THEN: *outer, Name, *inner, Value — the unexported field is skipped
		assert.Equal(t, []reflect.Kind{reflect.Ptr, reflect.String, reflect.Ptr, reflect.String}, visited)
	})

	t.Run("it should stop at nil nested pointers", func(t *testing.T) {
		// GIVEN
		obj := &outer{Name: "n"}
		count := 0

		// WHEN
		Walk(obj, func(val reflect.Value, typ reflect.Type) {
			count++
		})

		// THEN: *outer, Name, nil *inner
		assert.Equal(t, 3, count)
	})
}

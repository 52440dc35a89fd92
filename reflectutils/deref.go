// Package reflectutils contains small reflection helpers.
package reflectutils

import "reflect"

// Deref dereferences a reflect.Value recursively until it reaches a
// non-pointer, non-interface value.
func Deref(value reflect.Value) reflect.Value {
	if value.Kind() == reflect.Ptr || value.Kind() == reflect.Interface {
		return Deref(value.Elem())
	}
	return value
}

// Visitor is applied to every value visited by Walk, together with its
// declared type.
type Visitor func(val reflect.Value, typ reflect.Type)

// Walk applies a visitor to an object and all its exported fields,
// recursively.
func Walk(element any, visitor Visitor) {
	walk(reflect.ValueOf(element), visitor)
}

func walk(val reflect.Value, visitor Visitor) {
	if !val.IsValid() {
		return
	}
	visitor(val, val.Type())

	elem := Deref(val)
	if !elem.IsValid() || elem.Kind() != reflect.Struct {
		return
	}

	typ := elem.Type()
	for i := 0; i < typ.NumField(); i++ {
		if !typ.Field(i).IsExported() {
			continue
		}
		walk(elem.Field(i), visitor)
	}
}

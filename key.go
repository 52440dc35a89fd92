package wheatgrass

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Key identifies a binding. It combines an optional name, a declared type,
// a generic witness derived from the declared type, and a canonical set of
// qualifier annotations. Keys are immutable value types and compare equal
// iff all four parts match.
type Key struct {
	name        string
	typ         reflect.Type
	generic     reflect.Type
	annotations string
}

// KeyOf builds a Key for the type T, with no name and no annotations.
func KeyOf[T any]() Key {
	return KeyForType(TypeOf[T]())
}

// NamedKey builds a Key for the type T carrying the given name.
func NamedKey[T any](name string) Key {
	return newKey(name, TypeOf[T]())
}

// KeyForType builds a Key for the given runtime type, with no name and no
// annotations.
func KeyForType(typ reflect.Type) Key {
	return newKey("", typ)
}

func newKey(name string, typ reflect.Type, annotations ...string) Key {
	return Key{
		name:        name,
		typ:         typ,
		generic:     genericWitness(typ),
		annotations: canonicalAnnotations(annotations),
	}
}

// Named returns a copy of the key carrying the given name.
func (k Key) Named(name string) Key {
	k.name = name
	return k
}

// Annotated returns a copy of the key carrying the given qualifier
// annotations. The annotation set is canonicalized, so the order in which
// qualifiers are listed does not affect key equality.
func (k Key) Annotated(annotations ...string) Key {
	k.annotations = canonicalAnnotations(annotations)
	return k
}

func (k Key) Name() string {
	return k.name
}

func (k Key) Type() reflect.Type {
	return k.typ
}

// Generic returns the generic witness of the key, or nil when the declared
// type carries no type argument.
func (k Key) Generic() reflect.Type {
	return k.generic
}

func (k Key) Annotations() []string {
	if k.annotations == "" {
		return nil
	}
	return strings.Split(k.annotations, ",")
}

func (k Key) String() string {
	typ := "<nil>"
	if k.typ != nil {
		typ = k.typ.String()
	}
	if k.annotations == "" {
		return fmt.Sprintf("(%s, %s)", k.name, typ)
	}
	return fmt.Sprintf("(%s, %s, [%s])", k.name, typ, k.annotations)
}

// genericWitness derives the type argument carried by a composite type, so
// that two keys built independently for the same declared type always agree
// on their witness.
func genericWitness(typ reflect.Type) reflect.Type {
	if typ == nil {
		return nil
	}
	if elem, ok := providerElem(typ); ok {
		return elem
	}
	switch typ.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan, reflect.Pointer:
		return typ.Elem()
	default:
		return nil
	}
}

func canonicalAnnotations(annotations []string) string {
	if len(annotations) == 0 {
		return ""
	}
	cleaned := make([]string, 0, len(annotations))
	for _, a := range annotations {
		a = strings.TrimSpace(a)
		if a != "" {
			cleaned = append(cleaned, a)
		}
	}
	sort.Strings(cleaned)
	return strings.Join(cleaned, ",")
}

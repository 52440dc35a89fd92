package wheatgrass

import (
	"errors"
	"fmt"
)

// Resolve resolves the unique binding of type T from the injector.
func Resolve[T any](injector Injector) (T, error) {
	return resolveTyped[T](injector, KeyOf[T]())
}

// ResolveNamed resolves the binding of type T carrying the given name.
func ResolveNamed[T any](injector Injector, name string) (T, error) {
	return resolveTyped[T](injector, NamedKey[T](name))
}

// ResolveKey resolves the binding for an explicit key, asserting the result
// to T.
func ResolveKey[T any](injector Injector, key Key) (T, error) {
	return resolveTyped[T](injector, key)
}

// TryResolve resolves the binding of type T if one exists.
//
// It returns the resolved value, a boolean indicating whether a binding was
// found, and an error if resolution itself failed.
func TryResolve[T any](injector Injector) (value T, found bool, err error) {
	return tryResolveTyped[T](injector, KeyOf[T]())
}

// TryResolveNamed resolves the binding of type T carrying the given name,
// if one exists.
func TryResolveNamed[T any](injector Injector, name string) (value T, found bool, err error) {
	return tryResolveTyped[T](injector, NamedKey[T](name))
}

func resolveTyped[T any](injector Injector, key Key) (val T, err error) {
	raw, err := injector.Resolve(key)
	if err != nil {
		return val, err
	}
	val, ok := raw.(T)
	if !ok {
		return val, fmt.Errorf("binding for %s holds a %T, not a %T", key, raw, val)
	}
	return val, nil
}

func tryResolveTyped[T any](injector Injector, key Key) (val T, found bool, err error) {
	val, err = resolveTyped[T](injector, key)
	if err != nil {
		var unresolved *UnresolvedBindingError
		if errors.As(err, &unresolved) {
			return val, false, nil
		}
		return val, false, err
	}
	return val, true, nil
}

package wheatgrass

import (
	"fmt"
	"reflect"
)

type (
	// Provider is the deferred-provider wrapper: a capability whose sole
	// operation yields a value of the wrapped type. Providers are stored
	// as ordinary values in the binding mapping, enabling lazy or repeated
	// construction.
	//
	// Detection is structural: any interface exposing a single `Get() X`
	// method is treated as a provider of X by the member scanner and by
	// the injector.
	Provider[T any] interface {
		Get() T
	}

	// ProviderFunc adapts a closure into a Provider.
	ProviderFunc[T any] func() T
)

func (f ProviderFunc[T]) Get() T {
	return f()
}

// ToProvider wraps an already built value into a Provider that always
// yields it.
func ToProvider[T any](value T) Provider[T] {
	return ProviderFunc[T](func() T {
		return value
	})
}

// providerElem reports whether typ is a deferred-provider wrapper, and if
// so returns the wrapped type.
func providerElem(typ reflect.Type) (reflect.Type, bool) {
	if typ == nil || typ.Kind() != reflect.Interface || typ.NumMethod() != 1 {
		return nil, false
	}
	m := typ.Method(0)
	if m.Name != "Get" || m.Type.NumIn() != 0 || m.Type.NumOut() != 1 {
		return nil, false
	}
	return m.Type.Out(0), true
}

// callProvider invokes Get on a provider object, guarding against panics in
// user code.
func callProvider(key Key, provider reflect.Value) (result reflect.Value, err error) {
	if !provider.IsValid() || (provider.Kind() == reflect.Interface && provider.IsNil()) {
		return reflect.Value{}, fmt.Errorf("provider bound to %s is nil", key)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic invoking provider bound to %s: %v", key, r)
		}
	}()

	out := provider.MethodByName("Get").Call(nil)
	return out[0], nil
}

package wheatgrass

import (
	"fmt"
	"reflect"
)

// BindingKind discriminates between bindings holding a concrete value and
// bindings holding a deferred provider of that value.
type BindingKind int

const (
	ValueBinding BindingKind = iota
	ProviderBinding
)

func (k BindingKind) String() string {
	switch k {
	case ValueBinding:
		return "value"
	case ProviderBinding:
		return "provider"
	default:
		return fmt.Sprintf("BindingKind(%d)", int(k))
	}
}

type (
	// argResolver is the slice of the injector the deferred payloads need:
	// resolving the keys of their own arguments.
	argResolver interface {
		resolveValue(key Key, tracker *Tracker) (reflect.Value, error)
	}

	// deferred is a payload whose value is only computed at resolution
	// time, typically because it invokes a method whose arguments must
	// themselves be resolved.
	deferred func(resolver argResolver, tracker *Tracker) (reflect.Value, error)

	// Binding is a resolved association between a Key and either a direct
	// value or a deferred provider of one. Bindings are created by the
	// builder and the member scanner and are immutable afterwards.
	Binding struct {
		key    Key
		kind   BindingKind
		value  reflect.Value
		invoke deferred
	}
)

// BindValue creates a VALUE binding associating key directly with value.
func BindValue(key Key, value any) (Binding, error) {
	v := reflect.ValueOf(value)
	if isNil(v) {
		return Binding{}, &ConfigurationError{Reason: fmt.Sprintf("cannot bind nil value to key %s", key)}
	}
	if key.typ != nil && !matchType(key.typ, v.Type()) {
		return Binding{}, &ConfigurationError{
			Reason: fmt.Sprintf("value of type %s is not assignable to key %s", v.Type(), key),
		}
	}
	return newValueBinding(key, v), nil
}

// isNil reports whether a value is untyped nil or a nil of a nilable kind,
// such as a typed nil pointer hiding inside a non-nil interface.
func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return false
	}
}

// BindProvider creates a PROVIDER binding associating key's type with a
// deferred provider of it. The provider is stored unevaluated.
func BindProvider[T any](key Key, provider Provider[T]) (Binding, error) {
	if provider == nil {
		return Binding{}, &ConfigurationError{Reason: fmt.Sprintf("cannot bind nil provider to key %s", key)}
	}
	return newProviderBinding(key, reflect.ValueOf(provider)), nil
}

// BindFunc creates a VALUE binding whose payload invokes fn with resolved
// arguments. fn must return the bound value, optionally followed by an
// error. This is the explicit, function-registration counterpart of the
// member scanner's provides-method rule.
func BindFunc(key Key, fn any) (Binding, error) {
	if fn == nil {
		return Binding{}, &ConfigurationError{Reason: fmt.Sprintf("cannot bind nil function to key %s", key)}
	}
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return Binding{}, &ConfigurationError{
			Reason: fmt.Sprintf("binding for %s must be a function, got %s", key, t),
		}
	}
	if err := validateFactorySignature(t); err != nil {
		return Binding{}, &ConfigurationError{Reason: fmt.Sprintf("invalid function bound to %s", key), Err: err}
	}
	if !matchType(key.typ, t.Out(0)) {
		return Binding{}, &ConfigurationError{
			Reason: fmt.Sprintf("function returning %s is not assignable to key %s", t.Out(0), key),
		}
	}
	return newDeferredBinding(key, ValueBinding, deferredCall(v, argKeys(t))), nil
}

func newValueBinding(key Key, value reflect.Value) Binding {
	return Binding{key: key, kind: ValueBinding, value: value}
}

func newProviderBinding(key Key, provider reflect.Value) Binding {
	return Binding{key: key, kind: ProviderBinding, value: provider}
}

func newDeferredBinding(key Key, kind BindingKind, invoke deferred) Binding {
	return Binding{key: key, kind: kind, invoke: invoke}
}

func (b Binding) Key() Key {
	return b.key
}

func (b Binding) Kind() BindingKind {
	return b.kind
}

func (b Binding) String() string {
	return fmt.Sprintf("%s binding for %s", b.kind, b.key)
}

// deferredCall wraps a function (or bound method) value into a deferred
// payload resolving each argument key before the call.
func deferredCall(fn reflect.Value, args []Key) deferred {
	return func(resolver argResolver, tracker *Tracker) (reflect.Value, error) {
		resolved := make([]reflect.Value, len(args))
		for i, argKey := range args {
			val, err := resolver.resolveValue(argKey, tracker)
			if err != nil {
				return reflect.Value{}, fmt.Errorf("failed to resolve argument %d (%s):\n\t%w", i, argKey, err)
			}
			resolved[i] = coerce(val, fn.Type().In(i))
		}
		return call(fn, resolved)
	}
}

// call invokes fn, recovering panics and unwrapping the optional trailing
// error return.
func call(fn reflect.Value, args []reflect.Value) (result reflect.Value, err error) {
	var out []reflect.Value

	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic invoking binding function: %v", r)
			}
		}()
		out = fn.Call(args)
	}()

	if err != nil {
		return reflect.Value{}, err
	}
	if len(out) == 2 && !out[1].IsNil() {
		return reflect.Value{}, out[1].Interface().(error)
	}
	return out[0], nil
}

// coerce adapts a resolved concrete value to the declared argument type, so
// that a concrete component satisfies an interface-typed parameter.
func coerce(val reflect.Value, target reflect.Type) reflect.Value {
	if val.IsValid() && val.Type() != target && val.Type().AssignableTo(target) {
		converted := reflect.New(target).Elem()
		converted.Set(val)
		return converted
	}
	return val
}

func validateFactorySignature(t reflect.Type) error {
	if t.NumOut() != 1 && t.NumOut() != 2 {
		return fmt.Errorf("function must return the bound value, optionally followed by an error")
	}
	if t.NumOut() == 2 && t.Out(1) != ErrorType {
		return fmt.Errorf("second return value must be an error, got %s", t.Out(1))
	}
	if t.IsVariadic() {
		return fmt.Errorf("variadic functions are not supported")
	}
	return nil
}

func argKeys(t reflect.Type) []Key {
	keys := make([]Key, t.NumIn())
	for i := 0; i < t.NumIn(); i++ {
		keys[i] = KeyForType(t.In(i))
	}
	return keys
}

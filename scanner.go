package wheatgrass

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/fuwjin/wheatgrass/reflectutils"
	"github.com/rs/zerolog"
)

// Qualifier annotations are read from this struct tag on scanned fields,
// e.g. `inject:"primary,readonly"`.
const annotationTag = "inject"

// providesPrefix marks provides-methods. Go has no method annotations, so
// the scanner uses a naming convention instead: any exported method whose
// name starts with this prefix is exposed as a binding.
const providesPrefix = "Provide"

// scanMembers enumerates the exported fields and methods of obj and derives
// bindings from them:
//
//   - every field becomes a VALUE binding under its name, declared type and
//     `inject` tag qualifiers, holding the field's current value;
//   - a field of provider type Provider[X] becomes a PROVIDER binding to X
//     instead, holding the provider unevaluated;
//   - a Provide* method becomes a VALUE binding under its name and return
//     type, whose payload invokes the method with resolved arguments;
//   - a Provide* method returning Provider[X] becomes a PROVIDER binding to
//     X, analogous to the field rule;
//   - any other method with exactly one parameter assignable to its return
//     type becomes a transformation: the parameter's binding is resolved
//     and passed through the method, rebound under the method's key.
//
// Members matching no rule are skipped silently.
func scanMembers(obj any, log zerolog.Logger) ([]Binding, error) {
	if obj == nil {
		return nil, &ConfigurationError{Reason: "cannot scan members of a nil object"}
	}

	value := reflect.ValueOf(obj)
	bindings := make([]Binding, 0)

	fields, err := scanFields(value, log)
	if err != nil {
		return nil, err
	}
	bindings = append(bindings, fields...)

	methods, err := scanMethods(value, log)
	if err != nil {
		return nil, err
	}
	bindings = append(bindings, methods...)

	return bindings, nil
}

func scanFields(value reflect.Value, log zerolog.Logger) ([]Binding, error) {
	elem := reflectutils.Deref(value)
	if !elem.IsValid() || elem.Kind() != reflect.Struct {
		return nil, nil
	}

	typ := elem.Type()
	bindings := make([]Binding, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		annotations := fieldAnnotations(field)
		fieldValue := elem.Field(i)

		if wrapped, isProvider := providerElem(field.Type); isProvider {
			if fieldValue.IsNil() {
				return nil, &ConfigurationError{
					Reason: fmt.Sprintf("provider field %s.%s is nil", typ, field.Name),
				}
			}
			key := newKey(field.Name, wrapped, annotations...)
			log.Debug().Stringer("key", key).Msg("scanned provider field")
			bindings = append(bindings, newProviderBinding(key, fieldValue))
			continue
		}

		key := newKey(field.Name, field.Type, annotations...)
		log.Debug().Stringer("key", key).Msg("scanned field")
		bindings = append(bindings, newValueBinding(key, fieldValue))
	}

	return bindings, nil
}

func scanMethods(value reflect.Value, log zerolog.Logger) ([]Binding, error) {
	typ := value.Type()
	bindings := make([]Binding, 0)
	for i := 0; i < typ.NumMethod(); i++ {
		method := typ.Method(i)
		bound := value.Method(i)
		sig := bound.Type()

		switch {
		case strings.HasPrefix(method.Name, providesPrefix):
			binding, err := providesBinding(typ, method.Name, bound, sig)
			if err != nil {
				return nil, err
			}
			log.Debug().Stringer("key", binding.key).Msg("scanned provides method")
			bindings = append(bindings, binding)

		case isTransform(sig):
			key := newKey(method.Name, sig.Out(0))
			log.Debug().Stringer("key", key).Msg("scanned transformation method")
			bindings = append(bindings, newDeferredBinding(key, ValueBinding, deferredCall(bound, argKeys(sig))))
		}
	}

	return bindings, nil
}

func providesBinding(owner reflect.Type, name string, bound reflect.Value, sig reflect.Type) (Binding, error) {
	if err := validateFactorySignature(sig); err != nil {
		return Binding{}, &ConfigurationError{
			Reason: fmt.Sprintf("invalid provides method %s.%s", owner, name),
			Err:    err,
		}
	}

	if wrapped, isProvider := providerElem(sig.Out(0)); isProvider {
		key := newKey(name, wrapped)
		return newDeferredBinding(key, ProviderBinding, deferredCall(bound, argKeys(sig))), nil
	}

	key := newKey(name, sig.Out(0))
	return newDeferredBinding(key, ValueBinding, deferredCall(bound, argKeys(sig))), nil
}

// isTransform reports whether a method signature takes exactly one parameter
// assignable to its return type. Such methods wrap the binding of their
// parameter type with post-processing.
func isTransform(sig reflect.Type) bool {
	if sig.NumIn() != 1 || sig.IsVariadic() {
		return false
	}
	if sig.NumOut() != 1 && (sig.NumOut() != 2 || sig.Out(1) != ErrorType) {
		return false
	}
	return sig.In(0).AssignableTo(sig.Out(0))
}

func fieldAnnotations(field reflect.StructField) []string {
	tag, ok := field.Tag.Lookup(annotationTag)
	if !ok || tag == "" {
		return nil
	}
	return strings.Split(tag, ",")
}

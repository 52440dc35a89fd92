package wheatgrass

import (
	"os"
	"reflect"
	"strings"
)

// EnvContext exposes the process environment as a Context of string
// bindings named after each variable. Merge it into a builder to resolve
// environment values by name:
//
//	injector, _ := wheatgrass.NewInjector().
//	    WithContext(wheatgrass.EnvContext()).
//	    Build()
//	home, _ := wheatgrass.ResolveNamed[string](injector, "HOME")
//
// The context captures the environment at construction time.
func EnvContext() Context {
	environ := os.Environ()
	bindings := make([]Binding, 0, len(environ))
	for _, entry := range environ {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			continue
		}
		bindings = append(bindings, newValueBinding(NamedKey[string](name), reflect.ValueOf(value)))
	}
	return NewContext(bindings...)
}

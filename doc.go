// Package wheatgrass is a reflective dependency-injection container.
//
// An injector is built from three sources of bindings: constants, child
// contexts, and reflectively scanned objects.
//
//	injector, err := wheatgrass.NewInjector().
//	    WithConstants(someConstant, someOtherConstant).
//	    WithContext(someContext, someOtherContext).
//	    WithMembers(someObject, someOtherObject).
//	    Build()
//
// An injector is a Context, and a Context is a mapping between Keys and
// Bindings.
//
// A constant is a direct binding between a type and an object. A child
// context exposes all of its bindings through the injector. Member
// scanning, the most powerful of the three, derives bindings from an
// object's exported fields and methods:
//
//   - every field is exposed as a binding of its value, under the field's
//     name, type and `inject` tag qualifiers;
//   - a Provider[X] field is exposed as a binding to X instead, holding the
//     provider unevaluated;
//   - every method whose name starts with Provide is exposed as a binding
//     under the method's name and return type; its arguments are resolved
//     from the injector when the binding is first resolved;
//   - a Provide method returning Provider[X] is exposed as a binding to X,
//     analogous to the field rule;
//   - any other method with a single parameter assignable to its return
//     type wraps the parameter type's binding with post-processing.
//
// Resolution is synchronous and deterministic. Values bound directly or
// built by a Provide method are memoized: resolving the same key twice
// yields the same component. Provider bindings are re-invoked on every
// resolution of the wrapped type, and handed back unevaluated when the
// wrapper type itself is requested.
package wheatgrass

package wheatgrass

import (
	"fmt"
	"reflect"

	"github.com/fuwjin/wheatgrass/option"
	"github.com/rs/zerolog"
)

type (
	// RootInjectorBuilder accumulates bindings from constants, child
	// contexts and reflectively scanned objects, and freezes them into an
	// immutable Injector.
	//
	// The general use case is the following:
	//
	//	injector, err := wheatgrass.NewInjector().
	//	    WithConstants(someConstant, someOtherConstant).
	//	    WithContext(someContext, someOtherContext).
	//	    WithMembers(someObject, someOtherObject).
	//	    Build()
	//
	// All WithX methods return the builder to support fluent chaining, so
	// a configuration error encountered along the chain is recorded and
	// surfaced by Build. On key collision the last-registered binding
	// wins, whatever WithX call registered it.
	//
	// The builder is not safe for concurrent use; the Injector it builds
	// is.
	RootInjectorBuilder struct {
		bindings []Binding
		log      zerolog.Logger
		err      error
	}

	BuilderOptions struct {
		logger zerolog.Logger
	}
)

// Logger wires a structured logger into the builder and the injector it
// builds. The default is a no-op logger.
func Logger(logger zerolog.Logger) option.Option[BuilderOptions] {
	return func(opts *BuilderOptions) {
		opts.logger = logger
	}
}

// NewInjector creates an empty RootInjectorBuilder.
func NewInjector(opts ...option.Option[BuilderOptions]) *RootInjectorBuilder {
	options := option.Build(
		&BuilderOptions{logger: zerolog.Nop()},
		opts...,
	)

	return &RootInjectorBuilder{
		bindings: make([]Binding, 0),
		log:      options.logger,
	}
}

// WithConstants adds a set of constants, each bound to its own runtime
// type, with no name and no annotations.
func (b *RootInjectorBuilder) WithConstants(constants ...any) *RootInjectorBuilder {
	for _, constant := range constants {
		v := reflect.ValueOf(constant)
		if isNil(v) {
			return b.fail(&ConfigurationError{Reason: "constant must not be nil"})
		}
		b.add(newValueBinding(KeyForType(v.Type()), v))
	}
	return b
}

// WithConstant adds a constant bound to an explicit, fully-specified key.
func (b *RootInjectorBuilder) WithConstant(key Key, constant any) *RootInjectorBuilder {
	binding, err := BindValue(key, constant)
	if err != nil {
		return b.fail(err)
	}
	b.add(binding)
	return b
}

// WithTypedConstant adds a constant bound to the ancestor type T. When T is
// the constant's exact type this is equivalent to WithConstants(constant).
// It is a free function because Go methods cannot introduce type
// parameters.
func WithTypedConstant[T any](b *RootInjectorBuilder, constant T) *RootInjectorBuilder {
	return b.WithConstant(KeyOf[T](), constant)
}

// WithContext merges all bindings of each given child context.
func (b *RootInjectorBuilder) WithContext(contexts ...Context) *RootInjectorBuilder {
	for _, ctx := range contexts {
		if ctx == nil {
			return b.fail(&ConfigurationError{Reason: "context must not be nil"})
		}
		for _, binding := range ctx.Bindings() {
			b.add(binding)
		}
	}
	return b
}

// WithMembers scans the exported fields and methods of each given object
// and merges the derived bindings. See the package documentation for the
// member binding rules.
func (b *RootInjectorBuilder) WithMembers(objects ...any) *RootInjectorBuilder {
	for _, obj := range objects {
		bindings, err := scanMembers(obj, b.log)
		if err != nil {
			return b.fail(fmt.Errorf("failed to scan members of %T:\n\t%w", obj, err))
		}
		for _, binding := range bindings {
			b.add(binding)
		}
	}
	return b
}

// WithProviderFunc binds a factory function under the given key. Its
// arguments are resolved from the injector when the key is first resolved.
func (b *RootInjectorBuilder) WithProviderFunc(key Key, fn any) *RootInjectorBuilder {
	binding, err := BindFunc(key, fn)
	if err != nil {
		return b.fail(err)
	}
	b.add(binding)
	return b
}

// Build freezes all accumulated bindings into an immutable Injector. It
// returns the first configuration error recorded by the WithX calls, if
// any.
func (b *RootInjectorBuilder) Build() (Injector, error) {
	if b.err != nil {
		return nil, b.err
	}

	injector := newStandardInjector(b.bindings, b.log)
	b.log.Debug().Int("bindings", len(b.bindings)).Msg("injector built")

	return injector, nil
}

func (b *RootInjectorBuilder) add(binding Binding) {
	b.log.Debug().Stringer("binding", binding).Msg("binding registered")
	b.bindings = append(b.bindings, binding)
}

func (b *RootInjectorBuilder) fail(err error) *RootInjectorBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

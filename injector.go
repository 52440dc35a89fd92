package wheatgrass

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/rs/zerolog"

	"github.com/fuwjin/wheatgrass/slices"
)

type (
	// Injector is a Context able to resolve a Key into a concrete value.
	// It is built once by a RootInjectorBuilder and immutable thereafter:
	// it can safely be shared across goroutines for resolution.
	Injector interface {
		Context

		// Resolve locates the binding matching the given key and returns
		// its value. Deferred value payloads are instantiated once and
		// memoized; provider payloads are re-invoked on every resolution.
		Resolve(key Key) (any, error)

		// Close closes every instantiated component implementing
		// Closeable.
		Close() error

		// Describe returns a human-readable dump of the registered
		// bindings.
		Describe() string
	}

	standardInjector struct {
		bindings *bindingSet
		store    *Store
		lock     *LockManager
		log      zerolog.Logger
	}
)

// InjectorKey is the key under which a built injector resolves itself.
var InjectorKey = NamedKey[Injector]("wheatgrass.injector")

func newStandardInjector(bindings []Binding, log zerolog.Logger) *standardInjector {
	in := &standardInjector{
		store: NewStore(),
		lock:  NewLockManager(),
		log:   log,
	}

	// the injector resolves itself, so provides-methods may take the
	// injector as an argument to resolve dependencies dynamically
	in.bindings = newBindingSet(append(bindings, newValueBinding(InjectorKey, reflect.ValueOf(in))))

	return in
}

func (in *standardInjector) Binding(key Key) (Binding, bool) {
	return in.bindings.Binding(key)
}

func (in *standardInjector) Bindings() []Binding {
	return in.bindings.Bindings()
}

func (in *standardInjector) Resolve(key Key) (any, error) {
	val, err := in.resolveValue(key, NewTracker())
	if err != nil {
		return nil, err
	}
	return val.Interface(), nil
}

func (in *standardInjector) Close() error {
	return in.store.Close()
}

func (in *standardInjector) resolveValue(key Key, tracker *Tracker) (reflect.Value, error) {
	in.log.Trace().Stringer("key", key).Msg("resolving")

	if binding, found := in.bindings.Binding(key); found {
		return in.materialize(binding, tracker)
	}

	// when the provider wrapper itself is requested, hand back the
	// provider bound to the wrapped type, unevaluated
	if wrapped, isProvider := providerElem(key.typ); isProvider {
		unwrapped := newKey(key.name, wrapped, key.Annotations()...)
		binding, found := in.bindings.Binding(unwrapped)
		if !found {
			var err error
			binding, found, err = in.scanBindings(unwrapped, tracker)
			if err != nil {
				return reflect.Value{}, err
			}
		}
		if found && binding.kind == ProviderBinding {
			return in.providerObject(binding, tracker)
		}
	}

	binding, found, err := in.scanBindings(key, tracker)
	if err != nil {
		return reflect.Value{}, err
	}
	if found {
		return in.materialize(binding, tracker)
	}

	return reflect.Value{}, &UnresolvedBindingError{Key: key}
}

// scanBindings falls back to an assignability scan when no exact key
// matches: a request for an interface type matches bindings of implementing
// types, and a nameless request matches named bindings of the same type. A
// unique fresh candidate is required; candidates already mid-resolution are
// only picked when no fresh one exists, which surfaces the cycle.
func (in *standardInjector) scanBindings(key Key, tracker *Tracker) (Binding, bool, error) {
	var candidates []Key
	seen := make(map[Key]bool)
	for _, b := range in.bindings.ordered {
		if seen[b.key] || !in.matches(key, b.key) {
			continue
		}
		seen[b.key] = true
		candidates = append(candidates, b.key)
	}
	visited := slices.Filter(candidates, tracker.Seen)
	fresh := slices.Filter(candidates, func(k Key) bool { return !tracker.Seen(k) })

	switch {
	case len(fresh) == 1:
		binding, _ := in.bindings.Binding(fresh[0])
		return binding, true, nil
	case len(fresh) > 1:
		return Binding{}, false, &ConfigurationError{
			Reason: fmt.Sprintf("multiple bindings match key %s: %s", key, joinKeys(fresh)),
		}
	case len(visited) > 0:
		// every candidate is already being resolved
		return Binding{}, false, tracker.Push(visited[0])
	default:
		return Binding{}, false, nil
	}
}

func (in *standardInjector) matches(query, bound Key) bool {
	if query.name != "" && query.name != bound.name {
		return false
	}
	if query.annotations != "" && query.annotations != bound.annotations {
		return false
	}
	return matchType(query.typ, bound.typ)
}

func (in *standardInjector) materialize(binding Binding, tracker *Tracker) (reflect.Value, error) {
	switch binding.kind {
	case ProviderBinding:
		provider, err := in.providerObject(binding, tracker)
		if err != nil {
			return reflect.Value{}, err
		}
		// provider results are never memoized: each resolution of the
		// wrapped type is a fresh invocation
		return callProvider(binding.key, provider)
	default:
		if binding.invoke == nil {
			return binding.value, nil
		}
		return in.memoized(binding, tracker)
	}
}

// providerObject returns the provider payload itself, instantiating and
// memoizing it first when it comes from a provides-method.
func (in *standardInjector) providerObject(binding Binding, tracker *Tracker) (reflect.Value, error) {
	if binding.invoke == nil {
		return binding.value, nil
	}
	return in.memoized(binding, tracker)
}

// memoized instantiates a deferred payload exactly once, guarding the
// instantiation with a per-key lock so concurrent resolutions share the
// same component.
func (in *standardInjector) memoized(binding Binding, tracker *Tracker) (reflect.Value, error) {
	if comp, found := in.store.Get(binding.key); found {
		return comp, nil
	}

	if err := tracker.Push(binding.key); err != nil {
		return reflect.Value{}, err
	}

	lock := in.lock.GetLockFor(binding.key)
	lock.Lock()
	defer func() {
		lock.Unlock()
		in.lock.ReleaseLock(binding.key) // the component won't be built again
	}()

	// the component may have been built while we were waiting on the lock
	if comp, found := in.store.Get(binding.key); found {
		tracker.Pop()
		return comp, nil
	}

	comp, err := binding.invoke(in, tracker)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("failed to instantiate %s:\n\t%w", binding, err)
	}

	tracker.Pop()
	in.store.Put(binding.key, comp)
	in.log.Debug().Stringer("key", binding.key).Msg("component instantiated")

	return comp, nil
}

func (in *standardInjector) Describe() string {
	var b strings.Builder
	b.WriteString("* Bindings:\n")
	for _, binding := range in.bindings.ordered {
		b.WriteString(fmt.Sprintf("\t- %s\n", binding))
	}
	b.WriteString("* Instantiated components:\n")
	for _, key := range in.store.ListKeys() {
		comp, _ := in.store.Get(key)
		b.WriteString(fmt.Sprintf("\t- %s: %v\n", key, comp))
	}
	return b.String()
}

func joinKeys(keys []Key) string {
	return strings.Join(slices.Map(keys, Key.String), ", ")
}

package wheatgrass

type (
	// Context is an immutable mapping from Keys to Bindings. Contexts
	// compose by union: when two contexts carry a binding for the same
	// key, the later-registered one shadows the earlier one. An Injector
	// is itself a Context.
	Context interface {
		// Binding returns the binding registered for the given key, if any.
		Binding(key Key) (Binding, bool)
		// Bindings returns all bindings in registration order.
		Bindings() []Binding
	}

	bindingSet struct {
		ordered []Binding
		index   map[Key]Binding
	}
)

// NewContext builds an immutable context from the given bindings. On key
// collision the last binding wins.
func NewContext(bindings ...Binding) Context {
	return newBindingSet(bindings)
}

func newBindingSet(bindings []Binding) *bindingSet {
	set := &bindingSet{
		ordered: make([]Binding, len(bindings)),
		index:   make(map[Key]Binding, len(bindings)),
	}
	copy(set.ordered, bindings)
	for _, b := range set.ordered {
		set.index[b.key] = b
	}
	return set
}

func (s *bindingSet) Binding(key Key) (Binding, bool) {
	b, found := s.index[key]
	return b, found
}

func (s *bindingSet) Bindings() []Binding {
	out := make([]Binding, len(s.ordered))
	copy(out, s.ordered)
	return out
}

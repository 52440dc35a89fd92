package wheatgrass

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// Store memoizes components instantiated from deferred payloads, keyed by
// their binding key.
type Store struct {
	inner sync.Map
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Put(key Key, comp reflect.Value) {
	s.inner.Store(key, comp)
}

func (s *Store) Get(key Key) (comp reflect.Value, found bool) {
	raw, found := s.inner.Load(key)
	if found {
		return raw.(reflect.Value), true
	}

	return reflect.Value{}, false
}

func (s *Store) ListKeys() []Key {
	keys := make([]Key, 0)
	s.inner.Range(func(rawKey, _ any) bool {
		keys = append(keys, rawKey.(Key))
		return true
	})
	return keys
}

// Close closes every memoized component implementing Closeable.
func (s *Store) Close() error {
	closeErrors := make([]error, 0)
	s.inner.Range(func(rawKey, rawComp any) bool {
		comp := rawComp.(reflect.Value)
		if comp.IsValid() && comp.Type().Implements(CloseableType) {
			out := comp.MethodByName("Close").Call(nil)
			if len(out) != 1 || !out[0].IsNil() {
				closeErrors = append(
					closeErrors,
					fmt.Errorf("failed to close component %s:\n\t%v", rawKey.(Key), out[0].Interface()),
				)
			}
		}
		return true // continue iteration
	})

	return errors.Join(closeErrors...)
}

package wheatgrass

import (
	"github.com/fuwjin/wheatgrass/set"
)

// Tracker records the keys currently being resolved, so that a resolution
// transitively requiring its own key fails instead of looping forever.
type Tracker struct {
	visited set.Set[Key]
	stack   []Key
}

func NewTracker() *Tracker {
	return &Tracker{
		visited: set.New[Key](),
		stack:   make([]Key, 0),
	}
}

// Push registers a key as being resolved. It returns a CyclicBindingError
// if the key is already on the resolution stack.
func (t *Tracker) Push(key Key) error {
	if t.visited.Contains(key) {
		cycle := []Key{key}
		for i := len(t.stack) - 1; i >= 0; i-- {
			cycle = append(cycle, t.stack[i])
			if t.stack[i] == key {
				break
			}
		}
		return &CyclicBindingError{Cycle: cycle}
	}
	t.visited.Add(key)
	t.stack = append(t.stack, key)

	return nil
}

// Seen reports whether a key is currently on the resolution stack.
func (t *Tracker) Seen(key Key) bool {
	return t.visited.Contains(key)
}

func (t *Tracker) Pop() Key {
	if len(t.stack) == 0 {
		panic("tracker: pop from empty stack")
	}
	key := t.stack[len(t.stack)-1]
	t.stack = t.stack[:len(t.stack)-1]
	t.visited.Remove(key)

	return key
}

package wheatgrass

import (
	"fmt"
	"strings"
)

// ConfigurationError reports invalid input to the builder: nil constants,
// members that cannot be scanned, or ambiguous bindings discovered during
// resolution.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid injector configuration: %s:\n\t%v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid injector configuration: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// UnresolvedBindingError reports a resolution request for which no binding
// matches.
type UnresolvedBindingError struct {
	Key Key
}

func (e *UnresolvedBindingError) Error() string {
	return fmt.Sprintf("no binding found for key %s", e.Key)
}

// CyclicBindingError reports a resolution that transitively requires
// resolving its own key.
type CyclicBindingError struct {
	Cycle []Key
}

func (e *CyclicBindingError) Error() string {
	return fmt.Sprintf("binding cycle detected:\n%s", formatCycle(e.Cycle))
}

func formatCycle(cycle []Key) string {
	var b strings.Builder
	for i := len(cycle) - 1; i >= 0; i-- {
		b.WriteString(strings.Repeat("\t", len(cycle)-1-i))
		if i != len(cycle)-1 {
			b.WriteString(" -> ")
		}
		b.WriteString(cycle[i].String())
		b.WriteString("\n")
	}
	return b.String()
}

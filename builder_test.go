package wheatgrass

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test types for builder testing
type Greeter interface {
	Greet() string
}

type EnglishGreeter struct {
	Greeting string
}

func (g *EnglishGreeter) Greet() string {
	return g.Greeting
}

func TestRootInjectorBuilder(t *testing.T) {
	t.Run("it should bind constants to their runtime type and preserve identity", func(t *testing.T) {
		// GIVEN
		constant := &EnglishGreeter{Greeting: "hello"}

		// WHEN
		injector, err := NewInjector().WithConstants(constant).Build()
		require.NoError(t, err)

		// THEN
		resolved, err := Resolve[*EnglishGreeter](injector)
		require.NoError(t, err)
		assert.Same(t, constant, resolved)
	})

	t.Run("it should bind a typed constant to an ancestor type", func(t *testing.T) {
		// GIVEN
		constant := &EnglishGreeter{Greeting: "hello"}

		// WHEN
		injector, err := WithTypedConstant[Greeter](NewInjector(), constant).Build()
		require.NoError(t, err)

		// THEN
		resolved, err := Resolve[Greeter](injector)
		require.NoError(t, err)
		assert.Equal(t, "hello", resolved.Greet())
	})

	t.Run("it should bind a constant to an explicit key", func(t *testing.T) {
		// GIVEN
		key := NamedKey[string]("greeting").Annotated("primary")

		// WHEN
		injector, err := NewInjector().WithConstant(key, "hello").Build()
		require.NoError(t, err)

		// THEN
		resolved, err := ResolveKey[string](injector, key)
		require.NoError(t, err)
		assert.Equal(t, "hello", resolved)
	})

	t.Run("it should fail to build when a constant is nil", func(t *testing.T) {
		// WHEN
		_, err := NewInjector().WithConstants(nil).Build()

		// THEN
		require.Error(t, err)
		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr)
	})

	t.Run("it should fail to build when a constant is a typed nil pointer", func(t *testing.T) {
		// GIVEN
		var greeter *EnglishGreeter

		// WHEN
		_, err := NewInjector().WithConstants(greeter).Build()

		// THEN
		require.Error(t, err)
		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.Contains(t, err.Error(), "constant must not be nil")
	})

	t.Run("it should fail to build when a keyed constant is a typed nil pointer", func(t *testing.T) {
		// GIVEN
		var greeter *EnglishGreeter

		// WHEN
		_, err := NewInjector().WithConstant(NamedKey[*EnglishGreeter]("greeter"), greeter).Build()

		// THEN
		require.Error(t, err)
		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.Contains(t, err.Error(), "cannot bind nil value")
	})

	t.Run("it should fail to build when a constant does not match its key type", func(t *testing.T) {
		// WHEN
		_, err := NewInjector().WithConstant(NamedKey[int]("count"), "not a number").Build()

		// THEN
		require.Error(t, err)
		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr)
		assert.Contains(t, err.Error(), "not assignable")
	})

	t.Run("it should fail to build when a context is nil", func(t *testing.T) {
		// WHEN
		_, err := NewInjector().WithContext(nil).Build()

		// THEN
		require.Error(t, err)
		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr)
	})

	t.Run("it should keep the first recorded configuration error", func(t *testing.T) {
		// WHEN
		_, err := NewInjector().
			WithConstants(nil).
			WithConstant(NamedKey[int]("count"), "still not a number").
			Build()

		// THEN
		require.Error(t, err)
		assert.Contains(t, err.Error(), "constant must not be nil")
	})

	t.Run("it should let the last registered constant shadow earlier ones", func(t *testing.T) {
		// WHEN
		injector, err := NewInjector().
			WithConstants("first").
			WithConstants("second").
			Build()
		require.NoError(t, err)

		// THEN
		resolved, err := Resolve[string](injector)
		require.NoError(t, err)
		assert.Equal(t, "second", resolved)
	})

	t.Run("it should let later contexts shadow earlier ones on key collision", func(t *testing.T) {
		// GIVEN
		key := NamedKey[string]("greeting")
		first, err := BindValue(key, "first")
		require.NoError(t, err)
		second, err := BindValue(key, "second")
		require.NoError(t, err)

		// WHEN
		injector, err := NewInjector().
			WithContext(NewContext(first), NewContext(second)).
			Build()
		require.NoError(t, err)

		// THEN
		resolved, err := ResolveNamed[string](injector, "greeting")
		require.NoError(t, err)
		assert.Equal(t, "second", resolved)
	})

	t.Run("it should bind a factory function under an explicit key", func(t *testing.T) {
		// GIVEN
		key := NamedKey[string]("derived")

		// WHEN
		injector, err := NewInjector().
			WithConstants(42).
			WithProviderFunc(key, func(count int) string {
				return fmt.Sprintf("hello %d", count)
			}).
			Build()
		require.NoError(t, err)

		// THEN
		resolved, err := ResolveNamed[string](injector, "derived")
		require.NoError(t, err)
		assert.Equal(t, "hello 42", resolved)
	})

	t.Run("it should reject a provider func that is not a function", func(t *testing.T) {
		// WHEN
		_, err := NewInjector().WithProviderFunc(NamedKey[string]("derived"), "not a function").Build()

		// THEN
		require.Error(t, err)
		var confErr *ConfigurationError
		require.ErrorAs(t, err, &confErr)
	})

	t.Run("it should return the builder itself to support fluent chaining", func(t *testing.T) {
		// GIVEN
		builder := NewInjector()

		// THEN
		assert.Same(t, builder, builder.WithConstants("hello"))
		assert.Same(t, builder, builder.WithContext(NewContext()))
		assert.Same(t, builder, builder.WithMembers(struct{}{}))
	})
}

package wheatgrass

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider(t *testing.T) {
	t.Run("it should wrap a static value into a provider", func(t *testing.T) {
		// GIVEN
		provider := ToProvider("hello")

		// THEN
		assert.Equal(t, "hello", provider.Get())
		assert.Equal(t, "hello", provider.Get())
	})

	t.Run("it should detect provider wrapper types structurally", func(t *testing.T) {
		// WHEN
		elem, ok := providerElem(TypeOf[Provider[int]]())

		// THEN
		require.True(t, ok)
		assert.Equal(t, TypeOf[int](), elem)
	})

	t.Run("it should not treat other single-method interfaces as providers", func(t *testing.T) {
		// WHEN
		_, ok := providerElem(TypeOf[io.Closer]())

		// THEN
		assert.False(t, ok)
	})

	t.Run("it should not treat concrete types as providers", func(t *testing.T) {
		// WHEN
		_, ok := providerElem(TypeOf[ProviderFunc[int]]())

		// THEN
		assert.False(t, ok)
	})
}

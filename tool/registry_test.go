package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry(
		Must(add, Parameters("a", "b"), Doc(addDoc)),
		Must(scale, Parameters("x", "y")),
	)
	require.Equal(t, 2, reg.Len())

	def, ok := reg.ByName("add")
	require.True(t, ok)
	assert.Equal(t, "add", def.Name)

	_, ok = reg.ByName("missing")
	assert.False(t, ok)

	t.Run("same name replaces in place", func(t *testing.T) {
		reg.Add(Must(scale, Name("add"), Parameters("x", "y")))
		names := make([]string, 0, reg.Len())
		for _, d := range reg.All() {
			names = append(names, d.Name)
		}
		assert.Equal(t, []string{"add", "scale"}, names)

		def, _ := reg.ByName("add")
		assert.Equal(t, []string{"x", "y"}, def.Parameters)
	})

	t.Run("tools follow registration order", func(t *testing.T) {
		tools, err := reg.Tools()
		require.NoError(t, err)
		require.Len(t, tools, 2)
		assert.Equal(t, "add", tools[0].Function.Name)
		assert.Equal(t, "scale", tools[1].Function.Name)
	})

	t.Run("remove", func(t *testing.T) {
		assert.True(t, reg.Remove("scale"))
		assert.False(t, reg.Remove("scale"))
		assert.Equal(t, 1, reg.Len())
	})
}

package golden

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_LineEndings(t *testing.T) {
	assert.Equal(t, "hello\nworld\n", Normalize("hello\r\nworld\r\n"))
	assert.Equal(t, "hello\n", Normalize("hello\n"))
	assert.Equal(t, "hello", Normalize("hello"))
	assert.Equal(t, "hello\r", Normalize("hello\r"), "a lone CR is not a line ending")
	assert.Equal(t, "a\r\n", Normalize("a\r\r\n"))
}

func TestFirstDivergence(t *testing.T) {
	t.Run("equal", func(t *testing.T) {
		_, ok := FirstDivergence("a\r\nb\r\n", "a\nb\n")
		assert.False(t, ok)
	})

	t.Run("changed line", func(t *testing.T) {
		d, ok := FirstDivergence("hello\nworld\n", "hello\nwrld\n")
		require.True(t, ok)
		assert.Equal(t, 2, d.Line)
		assert.Equal(t, "world", d.Expected)
		assert.Equal(t, "wrld", d.Actual)
	})

	t.Run("output ends early", func(t *testing.T) {
		d, ok := FirstDivergence("a\nb\nc", "a\nb")
		require.True(t, ok)
		assert.Equal(t, 3, d.Line)
		assert.True(t, d.Missing)
		assert.Equal(t, "c", d.Expected)
	})

	t.Run("extra output", func(t *testing.T) {
		d, ok := FirstDivergence("a", "a\nb")
		require.True(t, ok)
		assert.Equal(t, 2, d.Line)
		assert.True(t, d.Extra)
		assert.Equal(t, "b", d.Actual)
	})
}

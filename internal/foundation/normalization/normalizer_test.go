package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

const (
	red  color = "red"
	blue color = "blue"
)

func newColors() *Normalizer[color] {
	return NewNormalizer(map[string]color{"red": red, "Blue": blue}, red)
}

func TestNormalize(t *testing.T) {
	n := newColors()
	assert.Equal(t, blue, n.Normalize("  BLUE "))
	assert.Equal(t, red, n.Normalize("green"))
	assert.Equal(t, []string{"blue", "red"}, n.ValidKeys())
}

func TestNormalizeWithError(t *testing.T) {
	n := newColors()

	v, err := n.NormalizeWithError("")
	require.NoError(t, err)
	assert.Equal(t, red, v)

	v, err = n.NormalizeWithError("Blue")
	require.NoError(t, err)
	assert.Equal(t, blue, v)

	_, err = n.NormalizeWithError("green")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid options: [blue red]")
}

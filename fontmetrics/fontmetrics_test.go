package fontmetrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGoRegular(t *testing.T) {
	source, err := GoRegular()
	require.NoError(t, err)

	width, height, err := source.Measure("Hello", 14)
	require.NoError(t, err)
	require.Greater(t, width, 0.0)
	require.Greater(t, height, 0.0)

	wider, _, err := source.Measure("Hello World", 14)
	require.NoError(t, err)
	require.Greater(t, wider, width, "longer text must measure wider")

	emptyWidth, emptyHeight, err := source.Measure("", 14)
	require.NoError(t, err)
	require.Equal(t, 0.0, emptyWidth)
	require.Greater(t, emptyHeight, 0.0, "empty text still has line height")

	bigger, _, err := source.Measure("Hello", 28)
	require.NoError(t, err)
	require.Greater(t, bigger, width, "larger font size must measure wider")
}

func TestAscent(t *testing.T) {
	source, err := GoRegular()
	require.NoError(t, err)

	ascent, err := source.Ascent(14)
	require.NoError(t, err)
	_, height, err := source.Measure("x", 14)
	require.NoError(t, err)
	require.Greater(t, ascent, 0.0)
	require.Less(t, ascent, height, "ascent is part of the line height")
}

func TestFaceCaching(t *testing.T) {
	source, err := GoRegular()
	require.NoError(t, err)

	first, err := source.Face(14)
	require.NoError(t, err)
	second, err := source.Face(14)
	require.NoError(t, err)
	require.Same(t, first, second, "faces are cached per size")

	other, err := source.Face(15)
	require.NoError(t, err)
	require.NotSame(t, first, other)
}

func TestNewInvalidFont(t *testing.T) {
	_, err := New([]byte("not a font"))
	require.Error(t, err)
}

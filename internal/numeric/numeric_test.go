package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewReducesOnConstruction(t *testing.T) {
	assert.Equal(t, 0, New(0, 8000).Value())
	assert.Equal(t, 0, New(8000, 8000).Value())
	assert.Equal(t, 1, New(8001, 8000).Value())
	assert.Equal(t, 7999, New(15999, 8000).Value())
}

func TestNewWrapLaw(t *testing.T) {
	// Numeric(a + CORE_SIZE) == Numeric(a)
	for _, a := range []int{0, 1, 42, 7999} {
		assert.Equal(t, New(a, 8000), New(a+8000, 8000))
	}
}

func TestFromIntHandlesNegatives(t *testing.T) {
	tests := []struct {
		value    int64
		size     int
		expected int
	}{
		{-1, 8000, 7999},
		{-3, 8000, 7997},
		{-8000, 8000, 0},
		{-8001, 8000, 7999},
		{-1, 800, 799},
		{66, 8000, 66},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FromInt(tt.value, tt.size).Value())
	}
}

func TestSubIsAdditionOfComplement(t *testing.T) {
	// Numeric(a) - Numeric(b) == Numeric(a + CORE_SIZE - b)
	a := New(5, 8000)
	b := New(10, 8000)
	assert.Equal(t, New(5+8000-10, 8000), a.Sub(b))
	assert.Equal(t, 7995, a.Sub(b).Value())
}

func TestArithmetic(t *testing.T) {
	size := 8000
	assert.Equal(t, 11, New(5, size).Add(New(6, size)).Value())
	assert.Equal(t, 1, New(7999, size).Add(New(2, size)).Value())
	assert.Equal(t, 30, New(5, size).Mul(New(6, size)).Value())
	assert.Equal(t, 3, New(7, size).Div(New(2, size)).Value())
	assert.Equal(t, 1, New(7, size).Mod(New(2, size)).Value())
	assert.Equal(t, 6, New(5, size).AddInt(1).Value())
	assert.Equal(t, 7999, New(0, size).SubInt(1).Value())
}

func TestComparisons(t *testing.T) {
	size := 8000
	assert.True(t, New(0, size).IsZero())
	assert.True(t, New(size, size).IsZero())
	assert.False(t, New(1, size).IsZero())
	assert.True(t, New(3, size).Less(New(4, size)))
	assert.False(t, New(4, size).Less(New(4, size)))
	// Ordering compares reduced representatives: 7999 > 1 even though
	// both may denote "nearby" addresses.
	assert.True(t, New(1, size).Less(New(7999, size)))
}

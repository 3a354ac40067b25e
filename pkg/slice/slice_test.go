package slice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedSizeSlice(t *testing.T) {
	s := MakeFixedSizeSlice(4)
	assert.Equal(t, 0.0, s.Ratio())

	s.Add(1, 3, 3)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []bool{false, true, false, true}, s.Get())
	assert.Equal(t, 0.5, s.Ratio())

	s.Remove(1, 2)
	assert.Equal(t, 1, s.Len())

	empty := MakeFixedSizeSlice(0)
	assert.Equal(t, 0.0, empty.Ratio())
}

func TestHelpers(t *testing.T) {
	values := []int{1, 2, 3}
	ReverseInPlace(values)
	assert.Equal(t, []int{3, 2, 1}, values)

	assert.True(t, Contains(values, 2))
	assert.False(t, Contains(values, 4))

	assert.Equal(t, 0, Compare(values, []int{3, 2, 1}))
	assert.Equal(t, 2, Compare(values, []int{1, 2, 3}))
	assert.Equal(t, -1, Compare(values, []int{1}))
}

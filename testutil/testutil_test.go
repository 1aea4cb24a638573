package testutil

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloats(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.Floats(64, -1, 1)

	assert.Len(t, v, 64)
	for _, f := range v {
		assert.GreaterOrEqual(t, f, float32(-1))
		assert.Less(t, f, float32(1))
	}
}

func TestFloat3s(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.Float3s(32, 0, 2)

	assert.Len(t, v, 32)
	for _, f := range v {
		assert.GreaterOrEqual(t, f.X, float32(0))
		assert.Less(t, f.Z, float32(2))
	}
}

func TestSortedSubset(t *testing.T) {
	rng := NewRNG(42)

	s := rng.SortedSubset(1000, 0.3)

	assert.True(t, slices.IsSorted(s))
	assert.Equal(t, len(s), len(slices.Compact(slices.Clone(s))))
	assert.InDelta(t, 300, len(s), 80)
	if len(s) > 0 {
		assert.Less(t, s[len(s)-1], uint32(1000))
	}

	assert.Empty(t, rng.SortedSubset(100, 0))
	assert.Equal(t, Identity(50), rng.SortedSubset(50, 1))
}

func TestIdentity(t *testing.T) {
	assert.Equal(t, []uint32{0, 1, 2}, Identity(3))
	assert.Empty(t, Identity(0))
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	v1 := rng.Integers(10)

	rng.Reset()
	v2 := rng.Integers(10)

	assert.Equal(t, v1, v2)
	assert.Equal(t, int64(4711), rng.Seed())
}

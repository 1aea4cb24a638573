package particles

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/particlestore/attribute"
	"github.com/hupe1980/particlestore/container"
)

func testInfo() *attribute.Info {
	return attribute.NewBuilder().
		AddByte("Kill State", 0).
		AddInteger("ID", -1).
		AddFloat("Size", 0.5).
		AddFloat3("Velocity", attribute.Float3{}).
		MustBuild()
}

// newBlocks returns one block per entry of actives with that many occupied slots.
func newBlocks(t *testing.T, info *attribute.Info, capacity int, actives ...int) []*container.Block {
	t.Helper()

	c, err := container.New(info, capacity)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	blocks := make([]*container.Block, len(actives))
	for i, n := range actives {
		b, err := c.NewBlock()
		require.NoError(t, err)
		require.NoError(t, b.SetActiveAmount(n))
		blocks[i] = b
	}
	return blocks
}

func TestNewSet(t *testing.T) {
	b := newBlocks(t, testInfo(), 10, 6)[0]

	tests := []struct {
		name     string
		pindices []uint32
		wantErr  error
	}{
		{"empty", nil, nil},
		{"trivial", []uint32{0, 1, 2}, nil},
		{"sparse", []uint32{1, 3, 5}, nil},
		{"unsorted", []uint32{2, 1}, ErrUnsortedIndices},
		{"duplicate", []uint32{1, 1}, ErrUnsortedIndices},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSet(b, tt.pindices)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Same(t, b, s.Block())
			assert.Equal(t, len(tt.pindices), s.Size())
		})
	}

	t.Run("out of range", func(t *testing.T) {
		_, err := NewSet(b, []uint32{0, 6})
		var rangeErr *ErrIndexOutOfRange
		require.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, uint32(6), rangeErr.PIndex)
		assert.Equal(t, 6, rangeErr.Active)
	})

	t.Run("nil block", func(t *testing.T) {
		_, err := NewSet(nil, nil)
		assert.ErrorIs(t, err, ErrNilBlock)
	})
}

func TestPIndicesAreTrivial(t *testing.T) {
	b := newBlocks(t, testInfo(), 10, 10)[0]

	tests := []struct {
		name     string
		pindices []uint32
		trivial  bool
		want     Range
	}{
		{"empty", nil, true, Range{0, 0}},
		{"single zero", []uint32{0}, true, Range{0, 1}},
		{"prefix", []uint32{0, 1, 2}, true, Range{0, 3}},
		{"offset run", []uint32{5, 6, 7}, false, Range{}},
		{"gap", []uint32{0, 2, 3}, false, Range{}},
		{"single nonzero", []uint32{4}, false, Range{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSet(b, tt.pindices)
			require.NoError(t, err)
			assert.Equal(t, tt.trivial, s.PIndicesAreTrivial())
			if tt.trivial {
				r := s.TrivialPIndices()
				assert.Equal(t, tt.want, r)
				assert.Equal(t, s.Size(), r.Len())
			} else {
				assert.PanicsWithValue(t, ErrNotTrivial, func() { s.TrivialPIndices() })
			}
		})
	}
}

func TestActiveSet(t *testing.T) {
	b := newBlocks(t, testInfo(), 8, 5)[0]

	s, err := ActiveSet(b)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4}, s.PIndices())
	assert.True(t, s.PIndicesAreTrivial())

	_, err = ActiveSet(nil)
	assert.ErrorIs(t, err, ErrNilBlock)
}

func TestSetFromBitmap(t *testing.T) {
	b := newBlocks(t, testInfo(), 16, 10)[0]

	s, err := SetFromBitmap(b, roaring.BitmapOf(7, 1, 3))
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 3, 7}, s.PIndices())
	assert.True(t, s.Bitmap().Equals(roaring.BitmapOf(1, 3, 7)))

	empty, err := SetFromBitmap(b, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Size())
	assert.True(t, empty.PIndicesAreTrivial())

	_, err = SetFromBitmap(b, roaring.BitmapOf(2, 10))
	var rangeErr *ErrIndexOutOfRange
	assert.ErrorAs(t, err, &rangeErr)
}

func TestSetFromBitSet(t *testing.T) {
	b := newBlocks(t, testInfo(), 16, 10)[0]

	bs := bitset.New(16)
	bs.Set(0).Set(1).Set(2)
	s, err := SetFromBitSet(b, bs)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2}, s.PIndices())
	assert.True(t, s.PIndicesAreTrivial())

	bs.Set(8)
	s, err = SetFromBitSet(b, bs)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 1, 2, 8}, s.PIndices())
	assert.False(t, s.PIndicesAreTrivial())

	empty, err := SetFromBitSet(b, bitset.New(4))
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Size())

	_, err = SetFromBitSet(b, bitset.New(16).Set(12))
	var rangeErr *ErrIndexOutOfRange
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, uint32(12), rangeErr.PIndex)
}

package particles

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/particlestore/container"
	"github.com/hupe1980/particlestore/internal/conv"
)

// Range is the half-open slot interval [Start, End).
type Range struct {
	Start uint32
	End   uint32
}

// Len returns the number of slots in the range.
func (r Range) Len() int { return int(r.End - r.Start) }

// Set is a subset of the occupied slots of one block.
//
// Invariants, checked once by NewSet:
//   - every pindex is unique
//   - pindices are sorted ascending
//   - every pindex is below the block's active amount
type Set struct {
	block    *container.Block
	pindices []uint32
}

// NewSet validates pindices against block and returns the view.
// The slice is borrowed, not copied; the caller must not modify it while the
// Set is in use.
func NewSet(block *container.Block, pindices []uint32) (Set, error) {
	if block == nil {
		return Set{}, ErrNilBlock
	}
	active := block.ActiveAmount()
	for i, p := range pindices {
		if i > 0 && p <= pindices[i-1] {
			return Set{}, ErrUnsortedIndices
		}
		if int(p) >= active {
			return Set{}, &ErrIndexOutOfRange{PIndex: p, Active: active}
		}
	}
	return Set{block: block, pindices: pindices}, nil
}

// NewSetUnchecked builds a Set without validating pindices. The caller
// upholds the Set invariants; violating them corrupts unrelated slots or
// panics during writes.
func NewSetUnchecked(block *container.Block, pindices []uint32) Set {
	return Set{block: block, pindices: pindices}
}

// ActiveSet selects every occupied slot of block. The result is trivial.
func ActiveSet(block *container.Block) (Set, error) {
	if block == nil {
		return Set{}, ErrNilBlock
	}
	n, err := conv.IntToUint32(block.ActiveAmount())
	if err != nil {
		return Set{}, err
	}
	pindices := make([]uint32, n)
	for i := range pindices {
		pindices[i] = uint32(i)
	}
	return Set{block: block, pindices: pindices}, nil
}

// SetFromBitmap selects the slots contained in bm. Roaring bitmaps iterate in
// ascending order without duplicates, so only the range is validated.
func SetFromBitmap(block *container.Block, bm *roaring.Bitmap) (Set, error) {
	if block == nil {
		return Set{}, ErrNilBlock
	}
	if bm == nil || bm.IsEmpty() {
		return Set{block: block}, nil
	}
	if last := bm.Maximum(); int(last) >= block.ActiveAmount() {
		return Set{}, &ErrIndexOutOfRange{PIndex: last, Active: block.ActiveAmount()}
	}
	return Set{block: block, pindices: bm.ToArray()}, nil
}

// SetFromBitSet selects the slots whose bits are set in bs, such as a dense
// kill mask built while scanning a block.
func SetFromBitSet(block *container.Block, bs *bitset.BitSet) (Set, error) {
	if block == nil {
		return Set{}, ErrNilBlock
	}
	if bs == nil || bs.None() {
		return Set{block: block}, nil
	}
	active := block.ActiveAmount()
	pindices := make([]uint32, 0, bs.Count())
	for i, ok := bs.NextSet(0); ok; i, ok = bs.NextSet(i + 1) {
		if i >= uint(active) {
			return Set{}, &ErrIndexOutOfRange{PIndex: uint32(min(i, uint(^uint32(0)))), Active: active}
		}
		pindices = append(pindices, uint32(i))
	}
	return Set{block: block, pindices: pindices}, nil
}

// Block returns the block that contains the particles of this set.
func (s Set) Block() *container.Block { return s.block }

// PIndices returns the slot indices of the set. Every value is an index into
// the block's attribute columns. The slice must not be modified.
func (s Set) PIndices() []uint32 { return s.pindices }

// Size returns the number of particles in the set.
func (s Set) Size() int { return len(s.pindices) }

// Column returns the block column of the attribute at index.
func (s Set) Column(index int) []byte { return s.block.Column(index) }

// PIndicesAreTrivial reports whether the set is empty or its pindices are
// exactly 0, 1, ..., Size()-1. Sorted-unique pindices make the endpoint check
// sufficient.
func (s Set) PIndicesAreTrivial() bool {
	n := len(s.pindices)
	if n == 0 {
		return true
	}
	return s.pindices[0] == 0 && int(s.pindices[n-1]) == n-1
}

// TrivialPIndices returns the pindices as the range [first, last+1), or
// [0, 0) for an empty set. It panics with ErrNotTrivial if the set is not
// trivial.
func (s Set) TrivialPIndices() Range {
	if !s.PIndicesAreTrivial() {
		panic(ErrNotTrivial)
	}
	n := len(s.pindices)
	if n == 0 {
		return Range{}
	}
	return Range{Start: s.pindices[0], End: s.pindices[n-1] + 1}
}

// Bitmap returns the pindices as a roaring bitmap.
func (s Set) Bitmap() *roaring.Bitmap {
	return roaring.BitmapOf(s.pindices...)
}

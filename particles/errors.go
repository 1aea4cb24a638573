package particles

import (
	"errors"
	"fmt"
)

var (
	// ErrNotTrivial is the panic value of TrivialPIndices on a non-trivial set.
	ErrNotTrivial = errors.New("particles: pindices are not trivial")
	// ErrNilBlock is returned when a set is built without a block.
	ErrNilBlock = errors.New("particles: block is nil")
	// ErrNilInfo is returned when a Sets is built without a schema.
	ErrNilInfo = errors.New("particles: attribute info is nil")
	// ErrUnsortedIndices is returned when pindices are not strictly ascending.
	ErrUnsortedIndices = errors.New("particles: pindices must be sorted and unique")
)

// ErrIndexOutOfRange indicates a pindex outside the block's occupied slots.
type ErrIndexOutOfRange struct {
	PIndex uint32
	Active int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("pindex %d outside active range [0, %d)", e.PIndex, e.Active)
}

// ErrSizeMismatch indicates a scatter input whose length differs from the
// number of destinations.
type ErrSizeMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrSizeMismatch) Error() string {
	return fmt.Sprintf("size mismatch: expected %d values, got %d", e.Expected, e.Actual)
}

// ErrWidthMismatch indicates raw bytes that are not a whole number of
// attribute elements.
type ErrWidthMismatch struct {
	Attribute string
	Width     int
	Bytes     int
}

func (e *ErrWidthMismatch) Error() string {
	return fmt.Sprintf("attribute %q: %d bytes is not a multiple of element width %d", e.Attribute, e.Bytes, e.Width)
}

// ErrSchemaMismatch is returned when a set's block uses a different schema
// than the collection it is added to.
var ErrSchemaMismatch = errors.New("particles: block schema differs from sets schema")

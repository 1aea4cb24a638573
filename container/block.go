package container

import (
	"github.com/hupe1980/particlestore/attribute"
	"github.com/hupe1980/particlestore/internal/mmap"
)

// Block is a fixed-capacity chunk of particle storage with one column per
// attribute.
type Block struct {
	id       uint64
	owner    *Container
	info     *attribute.Info
	capacity int
	active   int
	columns  [][]byte

	mapping   *mmap.Mapping // nil for heap blocks
	footprint int64
}

// ID returns the container-unique identifier of the block.
func (b *Block) ID() uint64 { return b.id }

// Info returns the schema shared by all columns of the block.
func (b *Block) Info() *attribute.Info { return b.info }

// Capacity returns the maximum number of particles the block holds.
func (b *Block) Capacity() int { return b.capacity }

// ActiveAmount returns the number of occupied slots.
func (b *Block) ActiveAmount() int { return b.active }

// Unused returns the number of free slots.
func (b *Block) Unused() int { return b.capacity - b.active }

// IsFull reports whether every slot is occupied.
func (b *Block) IsFull() bool { return b.active == b.capacity }

// IsEmpty reports whether no slot is occupied.
func (b *Block) IsEmpty() bool { return b.active == 0 }

// OffHeap reports whether the columns live in an anonymous mapping.
func (b *Block) OffHeap() bool { return b.mapping != nil }

// SetActiveAmount sets the size of the occupied prefix.
func (b *Block) SetActiveAmount(n int) error {
	if n < 0 || n > b.capacity {
		return &ErrActiveAmount{Amount: n, Capacity: b.capacity}
	}
	if b.owner != nil {
		b.owner.mu.Lock()
		defer b.owner.mu.Unlock()
	}
	b.active = n
	return nil
}

// Column returns the full-capacity column of the attribute at index.
// The slice is Capacity() * ElementSize(index) bytes long.
// It panics if index is out of range.
func (b *Block) Column(index int) []byte {
	return b.columns[index]
}

// ColumnByName resolves name through the schema and returns its column.
func (b *Block) ColumnByName(name string) ([]byte, error) {
	index, err := b.info.Index(name)
	if err != nil {
		return nil, err
	}
	return b.columns[index], nil
}

// ActiveColumn returns the occupied prefix of the column at index.
func (b *Block) ActiveColumn(index int) []byte {
	return b.columns[index][:b.active*b.info.ElementSize(index)]
}

// Get decodes the value of attribute index at slot.
func Get[T attribute.Value](b *Block, index, slot int) (T, error) {
	var zero T
	if err := b.info.CheckType(index, attribute.TypeOf[T]()); err != nil {
		return zero, err
	}
	if slot < 0 || slot >= b.active {
		return zero, &ErrSlotOutOfRange{Slot: slot, Active: b.active}
	}
	width := b.info.ElementSize(index)
	return attribute.Decode[T](b.columns[index][slot*width:]), nil
}

// Values decodes the occupied prefix of attribute index.
func Values[T attribute.Value](b *Block, index int) ([]T, error) {
	if err := b.info.CheckType(index, attribute.TypeOf[T]()); err != nil {
		return nil, err
	}
	width := b.info.ElementSize(index)
	col := b.columns[index]
	out := make([]T, b.active)
	for i := range out {
		out[i] = attribute.Decode[T](col[i*width:])
	}
	return out, nil
}

// ValuesByName is Values with name resolution.
func ValuesByName[T attribute.Value](b *Block, name string) ([]T, error) {
	index, err := b.info.Index(name)
	if err != nil {
		return nil, err
	}
	return Values[T](b, index)
}

package container

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/hupe1980/particlestore/attribute"
	"github.com/hupe1980/particlestore/internal/bulk"
	"github.com/hupe1980/particlestore/internal/mem"
	"github.com/hupe1980/particlestore/internal/mmap"
	"github.com/hupe1980/particlestore/internal/resource"
)

// Container owns every block of one particle type.
type Container struct {
	info     *attribute.Info
	capacity int
	opts     options

	mu     sync.Mutex
	blocks []*Block
	nextID uint64
	closed bool
}

// New creates an empty container whose blocks hold capacity particles each.
func New(info *attribute.Info, capacity int, optFns ...Option) (*Container, error) {
	if info == nil {
		return nil, ErrNilInfo
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	opts := options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.logger == nil {
		opts.logger = slog.New(slog.DiscardHandler)
	}

	return &Container{
		info:     info,
		capacity: capacity,
		opts:     opts,
	}, nil
}

// Info returns the schema of the particle type.
func (c *Container) Info() *attribute.Info { return c.info }

// BlockCapacity returns the capacity of every block.
func (c *Container) BlockCapacity() int { return c.capacity }

// BlockSize returns the number of column bytes one block needs.
func (c *Container) BlockSize() int {
	size := 0
	for i := 0; i < c.info.Len(); i++ {
		size += alignUp(c.capacity * c.info.ElementSize(i))
	}
	return size
}

// NewBlock allocates an empty block with default-initialised columns.
func (c *Container) NewBlock() (*Block, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.newBlockLocked()
}

// NewBlockFrom allocates a block whose leading active slots are copied from
// columns, one byte slice per attribute. The block becomes visible to Grow
// only once it is populated.
func (c *Container) NewBlockFrom(columns [][]byte, active int) (*Block, error) {
	if active < 0 || active > c.capacity {
		return nil, &ErrActiveAmount{Amount: active, Capacity: c.capacity}
	}
	if len(columns) != c.info.Len() {
		return nil, ErrColumnCount
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	b, err := c.newBlockLocked()
	if err != nil {
		return nil, err
	}
	for i, col := range columns {
		copy(b.columns[i][:active*c.info.ElementSize(i)], col)
	}
	b.active = active
	return b, nil
}

func (c *Container) newBlockLocked() (*Block, error) {
	if c.closed {
		return nil, ErrClosed
	}

	b, err := c.allocate()
	if err != nil {
		c.opts.logger.Error("block allocation failed",
			"capacity", c.capacity,
			"off_heap", c.opts.offHeap,
			"error", err,
		)
		return nil, err
	}

	b.id = c.nextID
	c.nextID++
	c.blocks = append(c.blocks, b)

	c.opts.logger.Debug("block allocated",
		"block", b.id,
		"capacity", c.capacity,
		"bytes", b.footprint,
		"off_heap", b.OffHeap(),
	)
	return b, nil
}

func (c *Container) allocate() (*Block, error) {
	b := &Block{
		owner:    c,
		info:     c.info,
		capacity: c.capacity,
		columns:  make([][]byte, c.info.Len()),
	}

	if c.opts.offHeap {
		b.footprint = int64(c.BlockSize())
	} else {
		for i := 0; i < c.info.Len(); i++ {
			b.footprint += mem.Footprint(c.capacity * c.info.ElementSize(i))
		}
	}
	if err := c.opts.resources.AcquireMemory(b.footprint); err != nil {
		return nil, err
	}

	if c.opts.offHeap {
		if err := c.allocateOffHeap(b); err != nil {
			c.opts.resources.ReleaseMemory(b.footprint)
			return nil, err
		}
	} else {
		for i := range b.columns {
			b.columns[i] = mem.AllocAligned(c.capacity * c.info.ElementSize(i))
		}
	}

	for i, col := range b.columns {
		bulk.FillRange(col, c.info.ElementSize(i), 0, c.capacity, c.info.DefaultValue(i))
	}
	return b, nil
}

func (c *Container) allocateOffHeap(b *Block) error {
	m, err := mmap.MapAnon(int(b.footprint))
	if err != nil {
		return err
	}
	offset := 0
	for i := range b.columns {
		size := c.capacity * c.info.ElementSize(i)
		region, err := m.Region(offset, size)
		if err != nil {
			return errors.Join(err, m.Close())
		}
		b.columns[i] = region.Bytes()
		offset += alignUp(size)
	}
	_ = m.Advise(mmap.AccessSequential)
	b.mapping = m
	return nil
}

// Release returns a block's memory. The block and its columns must not be
// used afterwards.
func (c *Container) Release(b *Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if b == nil || b.owner != c {
		return ErrForeignBlock
	}
	i := slices.Index(c.blocks, b)
	if i < 0 {
		return ErrForeignBlock
	}
	c.blocks = slices.Delete(c.blocks, i, i+1)

	c.opts.logger.Debug("block released", "block", b.id, "bytes", b.footprint)
	return c.free(b)
}

func (c *Container) free(b *Block) error {
	var err error
	if b.mapping != nil {
		err = b.mapping.Close()
		b.mapping = nil
	}
	b.columns = nil
	b.owner = nil
	b.active = 0
	c.opts.resources.ReleaseMemory(b.footprint)
	return err
}

// Blocks returns the live blocks in allocation order.
func (c *Container) Blocks() []*Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.blocks)
}

// Len returns the number of live blocks.
func (c *Container) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.blocks)
}

// ActiveCount returns the total number of occupied slots over all blocks.
func (c *Container) ActiveCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, b := range c.blocks {
		n += b.active
	}
	return n
}

// Grow marks n more slots as active, filling partially used blocks first and
// allocating new blocks as needed. New slots are reset to the attribute
// defaults. It returns one Span per block that received particles, in block
// order. On error the spans activated so far are returned.
//
// Concurrent calls never hand out the same slot twice.
func (c *Container) Grow(ctx context.Context, n int) ([]Span, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrClosed
	}

	var spans []Span
	for _, b := range c.blocks {
		if n <= 0 {
			break
		}
		if k := min(b.Unused(), n); k > 0 {
			spans = append(spans, c.activate(b, k, false))
			n -= k
		}
	}
	for n > 0 {
		if err := ctx.Err(); err != nil {
			return spans, err
		}
		b, err := c.newBlockLocked()
		if err != nil {
			return spans, err
		}
		k := min(c.capacity, n)
		spans = append(spans, c.activate(b, k, true))
		n -= k
	}
	return spans, nil
}

// activate must be called with c.mu held.
func (c *Container) activate(b *Block, k int, fresh bool) Span {
	span := Span{Block: b, Start: b.active, Len: k, Fresh: fresh}
	for i, col := range b.columns {
		bulk.FillRange(col, c.info.ElementSize(i), span.Start, k, c.info.DefaultValue(i))
	}
	b.active += k
	return span
}

// Span is a contiguous run of slots inside one block.
type Span struct {
	Block *Block
	Start int
	Len   int
	// Fresh reports whether Grow allocated the block.
	Fresh bool
}

// Close releases every block. It is idempotent.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	var errs []error
	for _, b := range c.blocks {
		if err := c.free(b); err != nil {
			errs = append(errs, err)
		}
	}
	c.opts.logger.Debug("container closed", "blocks", len(c.blocks))
	c.blocks = nil
	return errors.Join(errs...)
}

// Resources returns the controller memory is accounted against, or nil.
func (c *Container) Resources() *resource.Controller {
	return c.opts.resources
}

func alignUp(n int) int {
	return (n + mem.Alignment - 1) &^ (mem.Alignment - 1)
}

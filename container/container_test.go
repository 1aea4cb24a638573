package container

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/particlestore/attribute"
	"github.com/hupe1980/particlestore/internal/mem"
	"github.com/hupe1980/particlestore/internal/resource"
)

func testInfo() *attribute.Info {
	return attribute.NewBuilder().
		AddByte("Kill State", 0).
		AddInteger("ID", -1).
		AddFloat("Size", 0.25).
		AddFloat3("Position", attribute.Float3{X: 1, Y: 2, Z: 3}).
		MustBuild()
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil, 10)
	assert.ErrorIs(t, err, ErrNilInfo)

	_, err = New(testInfo(), 0)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestNewBlock(t *testing.T) {
	for _, offHeap := range []bool{false, true} {
		name := "heap"
		var opts []Option
		if offHeap {
			name = "offheap"
			opts = append(opts, WithOffHeap())
		}
		t.Run(name, func(t *testing.T) {
			c, err := New(testInfo(), 100, opts...)
			require.NoError(t, err)
			defer c.Close()

			b, err := c.NewBlock()
			require.NoError(t, err)

			assert.Equal(t, offHeap, b.OffHeap())
			assert.Equal(t, 100, b.Capacity())
			assert.Equal(t, 0, b.ActiveAmount())
			assert.Equal(t, 100, b.Unused())
			assert.True(t, b.IsEmpty())
			assert.False(t, b.IsFull())
			assert.Same(t, c.Info(), b.Info())

			for i := 0; i < c.Info().Len(); i++ {
				col := b.Column(i)
				width := c.Info().ElementSize(i)
				assert.Len(t, col, 100*width)
				assert.True(t, mem.IsAligned(col), "column %d must be aligned", i)
				assert.Equal(t, c.Info().DefaultValue(i), col[:width])
				assert.Equal(t, c.Info().DefaultValue(i), col[99*width:])
			}
		})
	}
}

func TestBlockIDsAndOrder(t *testing.T) {
	c, err := New(testInfo(), 4)
	require.NoError(t, err)
	defer c.Close()

	b0, _ := c.NewBlock()
	b1, _ := c.NewBlock()
	b2, _ := c.NewBlock()
	assert.Equal(t, []uint64{0, 1, 2}, []uint64{b0.ID(), b1.ID(), b2.ID()})

	require.NoError(t, c.Release(b1))
	assert.Equal(t, []*Block{b0, b2}, c.Blocks())
	assert.Equal(t, 2, c.Len())

	b3, _ := c.NewBlock()
	assert.Equal(t, uint64(3), b3.ID())
}

func TestRelease_Errors(t *testing.T) {
	c1, _ := New(testInfo(), 4)
	c2, _ := New(testInfo(), 4)
	defer c1.Close()
	defer c2.Close()

	b, err := c1.NewBlock()
	require.NoError(t, err)

	assert.ErrorIs(t, c2.Release(b), ErrForeignBlock)
	assert.ErrorIs(t, c1.Release(nil), ErrForeignBlock)
	require.NoError(t, c1.Release(b))
	assert.ErrorIs(t, c1.Release(b), ErrForeignBlock)
}

func TestSetActiveAmount(t *testing.T) {
	c, _ := New(testInfo(), 8)
	defer c.Close()
	b, _ := c.NewBlock()

	require.NoError(t, b.SetActiveAmount(8))
	assert.True(t, b.IsFull())
	assert.Equal(t, 8, c.ActiveCount())

	var ea *ErrActiveAmount
	assert.ErrorAs(t, b.SetActiveAmount(9), &ea)
	assert.ErrorAs(t, b.SetActiveAmount(-1), &ea)
	assert.Equal(t, 8, b.ActiveAmount())

	require.NoError(t, b.SetActiveAmount(3))
	assert.Len(t, b.ActiveColumn(3), 3*12)
}

func TestGetAndValues(t *testing.T) {
	c, _ := New(testInfo(), 8)
	defer c.Close()
	b, _ := c.NewBlock()
	require.NoError(t, b.SetActiveAmount(2))

	attribute.Encode(b.Column(2)[4:], float32(9.5))

	v, err := Get[float32](b, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, float32(9.5), v)

	sizes, err := Values[float32](b, 2)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, 9.5}, sizes)

	pos, err := ValuesByName[attribute.Float3](b, "Position")
	require.NoError(t, err)
	assert.Equal(t, []attribute.Float3{{X: 1, Y: 2, Z: 3}, {X: 1, Y: 2, Z: 3}}, pos)

	var tm *attribute.ErrTypeMismatch
	_, err = Get[int32](b, 2, 0)
	assert.ErrorAs(t, err, &tm)
	_, err = Values[uint8](b, 2)
	assert.ErrorAs(t, err, &tm)

	var so *ErrSlotOutOfRange
	_, err = Get[float32](b, 2, 2)
	assert.ErrorAs(t, err, &so)

	var nf *attribute.ErrAttributeNotFound
	_, err = ValuesByName[float32](b, "Mass")
	assert.ErrorAs(t, err, &nf)
	_, err = b.ColumnByName("Mass")
	assert.ErrorAs(t, err, &nf)

	col, err := b.ColumnByName("Size")
	require.NoError(t, err)
	assert.Len(t, col, 8*4)
}

func TestGrow(t *testing.T) {
	c, _ := New(testInfo(), 4)
	defer c.Close()

	spans, err := c.Grow(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, 0, spans[0].Start)
	assert.Equal(t, 3, spans[0].Len)
	assert.True(t, spans[0].Fresh)

	// Dirty a slot beyond the active prefix; Grow must reset it.
	b0 := spans[0].Block
	attribute.Encode(b0.Column(1)[3*4:], int32(77))

	spans, err = c.Grow(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, spans, 3)
	assert.Equal(t, Span{Block: b0, Start: 3, Len: 1}, spans[0])
	assert.Equal(t, 4, spans[1].Len)
	assert.True(t, spans[1].Fresh)
	assert.Equal(t, 1, spans[2].Len)
	assert.Equal(t, 9, c.ActiveCount())
	assert.Equal(t, 3, c.Len())

	id, err := Get[int32](b0, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(-1), id)
}

func TestGrow_Canceled(t *testing.T) {
	c, _ := New(testInfo(), 4)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Grow(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, c.Len())
}

func TestGrow_Concurrent(t *testing.T) {
	c, _ := New(testInfo(), 64)
	defer c.Close()

	_, err := c.Grow(context.Background(), 10)
	require.NoError(t, err)

	const workers = 8
	results := make([][]Span, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			spans, err := c.Grow(context.Background(), 5)
			assert.NoError(t, err)
			results[w] = spans
		}()
	}
	wg.Wait()

	type slot struct {
		block *Block
		index int
	}
	seen := make(map[slot]bool)
	for _, spans := range results {
		for _, span := range spans {
			for i := span.Start; i < span.Start+span.Len; i++ {
				key := slot{span.Block, i}
				assert.False(t, seen[key], "slot %d of block %d handed out twice", i, span.Block.ID())
				seen[key] = true
			}
		}
	}
	assert.Len(t, seen, workers*5)
	assert.Equal(t, 10+workers*5, c.ActiveCount())
	assert.Equal(t, 1, c.Len())
}

func TestNewBlockFrom(t *testing.T) {
	info := testInfo()
	c, _ := New(info, 4)
	defer c.Close()

	cols := make([][]byte, info.Len())
	for i := range cols {
		cols[i] = make([]byte, 2*info.ElementSize(i))
	}
	attribute.Encode(cols[1][4:], int32(9))

	b, err := c.NewBlockFrom(cols, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, b.ActiveAmount())
	ids, err := Values[int32](b, 1)
	require.NoError(t, err)
	assert.Equal(t, []int32{0, 9}, ids)

	// Slots past the copied prefix keep their defaults.
	spans, err := c.Grow(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, Span{Block: b, Start: 2, Len: 1}, spans[0])

	var ea *ErrActiveAmount
	_, err = c.NewBlockFrom(cols, 5)
	assert.ErrorAs(t, err, &ea)
	_, err = c.NewBlockFrom(cols[:1], 1)
	assert.ErrorIs(t, err, ErrColumnCount)
}

func TestGrow_Closed(t *testing.T) {
	c, _ := New(testInfo(), 4)
	require.NoError(t, c.Close())

	_, err := c.Grow(context.Background(), 1)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestMemoryAccounting(t *testing.T) {
	info := testInfo()
	c0, _ := New(info, 16, WithOffHeap())
	blockSize := int64(c0.BlockSize())
	require.NoError(t, c0.Close())

	rc := resource.NewController(resource.Config{MemoryLimitBytes: 2 * blockSize})
	c, err := New(info, 16, WithOffHeap(), WithResourceController(rc))
	require.NoError(t, err)
	assert.Same(t, rc, c.Resources())

	b0, err := c.NewBlock()
	require.NoError(t, err)
	_, err = c.NewBlock()
	require.NoError(t, err)
	assert.Equal(t, 2*blockSize, rc.MemoryUsage())

	_, err = c.NewBlock()
	assert.ErrorIs(t, err, resource.ErrMemoryLimitExceeded)
	assert.Equal(t, 2, c.Len())

	require.NoError(t, c.Release(b0))
	assert.Equal(t, blockSize, rc.MemoryUsage())

	require.NoError(t, c.Close())
	assert.Equal(t, int64(0), rc.MemoryUsage())
}

func TestClose(t *testing.T) {
	c, _ := New(testInfo(), 4)
	_, _ = c.NewBlock()

	require.NoError(t, c.Close())
	assert.NoError(t, c.Close())
	assert.Empty(t, c.Blocks())

	_, err := c.NewBlock()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, c.Release(&Block{}), ErrClosed)
}

func TestBlockSize(t *testing.T) {
	c, _ := New(testInfo(), 10)
	// 10, 40, 40, 120 bytes, each rounded up to 64.
	assert.Equal(t, 64+64+64+128, c.BlockSize())
	assert.Equal(t, 10, c.BlockCapacity())
}

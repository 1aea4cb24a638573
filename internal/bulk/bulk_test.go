package bulk

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

var widths = []int{1, 3, 4, 8, 12, 16, 20}

// element returns a width-byte element whose bytes all equal v.
func element(width int, v byte) []byte {
	return bytes.Repeat([]byte{v}, width)
}

func elements(width int, vs ...byte) []byte {
	var out []byte
	for _, v := range vs {
		out = append(out, element(width, v)...)
	}
	return out
}

// slot returns the bytes of slot i in a column of the given width.
func slot(col []byte, width, i int) []byte {
	return col[i*width : (i+1)*width]
}

func TestScatter(t *testing.T) {
	for _, w := range widths {
		t.Run(fmt.Sprintf("width=%d", w), func(t *testing.T) {
			col := element(w*8, 0xcc)
			src := elements(w, 1, 2, 3)

			Scatter(col, w, []uint32{1, 4, 6}, src)

			expected := elements(w, 0xcc, 1, 0xcc, 0xcc, 2, 0xcc, 3, 0xcc)
			assert.Equal(t, expected, col)
		})
	}
}

func TestScatter_IgnoresExtraSource(t *testing.T) {
	col := make([]byte, 8)
	Scatter(col, 4, []uint32{1}, elements(4, 9, 8))
	assert.Equal(t, elements(4, 0, 9), col)
}

func TestScatter_Empty(t *testing.T) {
	col := element(8, 0xcc)
	Scatter(col, 4, nil, nil)
	assert.Equal(t, element(8, 0xcc), col)
}

func TestScatterRange(t *testing.T) {
	col := make([]byte, 5*4)
	ScatterRange(col, 4, 1, 3, elements(4, 1, 2, 3, 4))
	assert.Equal(t, elements(4, 0, 1, 2, 3, 0), col)

	ScatterRange(col, 4, 0, 0, nil)
	assert.Equal(t, elements(4, 0, 1, 2, 3, 0), col)
}

func TestRepeat(t *testing.T) {
	for _, w := range widths {
		t.Run(fmt.Sprintf("width=%d", w), func(t *testing.T) {
			col := make([]byte, 5*w)
			src := elements(w, 0xa, 0xb)

			next := Repeat(col, w, []uint32{0, 1, 2, 3, 4}, src, 0)

			assert.Equal(t, elements(w, 0xa, 0xb, 0xa, 0xb, 0xa), col)
			assert.Equal(t, 1, next)
		})
	}
}

func TestRepeat_ContinuesOffset(t *testing.T) {
	w := 4
	first := make([]byte, 3*w)
	second := make([]byte, 4*w)
	src := elements(w, 1, 2)

	next := Repeat(first, w, []uint32{0}, src, 0)
	assert.Equal(t, 1, next)

	next = Repeat(second, w, []uint32{1, 2, 3}, src, next)
	assert.Equal(t, 1, next)

	assert.Equal(t, elements(w, 1, 0, 0), first)
	assert.Equal(t, elements(w, 0, 2, 1, 2), second)
}

func TestRepeatRange(t *testing.T) {
	for _, w := range widths {
		t.Run(fmt.Sprintf("width=%d", w), func(t *testing.T) {
			col := make([]byte, 7*w)
			src := elements(w, 1, 2, 3)

			next := RepeatRange(col, w, 1, 5, src, 2)

			assert.Equal(t, elements(w, 0, 3, 1, 2, 3, 1, 0), col)
			assert.Equal(t, 1, next)
		})
	}

	col := make([]byte, 4)
	assert.Equal(t, 1, RepeatRange(col, 4, 0, 0, elements(4, 1, 2), 1))
}

func TestRepeatMatchesRangeForm(t *testing.T) {
	const w, n = 12, 37
	src := elements(w, 1, 2, 3, 4, 5)
	pindices := make([]uint32, n)
	for i := range pindices {
		pindices[i] = uint32(i)
	}

	a := make([]byte, n*w)
	b := make([]byte, n*w)
	offA := Repeat(a, w, pindices, src, 3)
	offB := RepeatRange(b, w, 0, n, src, 3)

	assert.Equal(t, a, b)
	assert.Equal(t, offA, offB)
}

func TestFill(t *testing.T) {
	for _, w := range widths {
		t.Run(fmt.Sprintf("width=%d", w), func(t *testing.T) {
			col := make([]byte, 6*w)
			pattern := element(w, 7)

			Fill(col, w, []uint32{0, 3, 5}, pattern)

			assert.Equal(t, elements(w, 7, 0, 0, 7, 0, 7), col)
		})
	}
}

func TestFill_MixedBytePattern(t *testing.T) {
	col := make([]byte, 3*12)
	pattern := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}

	Fill(col, 12, []uint32{2}, pattern)

	assert.Equal(t, pattern, slot(col, 12, 2))
	assert.Equal(t, make([]byte, 24), col[:24])
}

func TestFillRange(t *testing.T) {
	for _, w := range widths {
		for _, n := range []int{1, 2, 3, 7, 64} {
			t.Run(fmt.Sprintf("width=%d/n=%d", w, n), func(t *testing.T) {
				col := element((n+2)*w, 0xcc)
				pattern := make([]byte, w)
				for i := range pattern {
					pattern[i] = byte(i + 1)
				}

				FillRange(col, w, 1, n, pattern)

				assert.Equal(t, element(w, 0xcc), slot(col, w, 0))
				for i := 1; i <= n; i++ {
					assert.Equal(t, pattern, slot(col, w, i))
				}
				assert.Equal(t, element(w, 0xcc), slot(col, w, n+1))
			})
		}
	}
}

func BenchmarkScatter(b *testing.B) {
	for _, w := range []int{1, 4, 12} {
		b.Run(fmt.Sprintf("width=%d", w), func(b *testing.B) {
			const n = 1000
			col := make([]byte, 2*n*w)
			src := make([]byte, n*w)
			pindices := make([]uint32, n)
			for i := range pindices {
				pindices[i] = uint32(2 * i)
			}
			b.SetBytes(int64(n * w))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Scatter(col, w, pindices, src)
			}
		})
	}
}

func BenchmarkFill(b *testing.B) {
	const n, w = 1000, 12
	col := make([]byte, n*w)
	pattern := make([]byte, w)
	pindices := make([]uint32, n)
	for i := range pindices {
		pindices[i] = uint32(i)
	}

	b.Run("indices", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			Fill(col, w, pindices, pattern)
		}
	})
	b.Run("range", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			FillRange(col, w, 0, n, pattern)
		}
	})
}

func TestGather(t *testing.T) {
	for _, w := range widths {
		t.Run(fmt.Sprintf("width=%d", w), func(t *testing.T) {
			col := elements(w, 0, 1, 2, 3, 4, 5)
			out := make([]byte, 3*w)

			Gather(out, w, []uint32{1, 3, 5}, col)

			assert.Equal(t, elements(w, 1, 3, 5), out)
		})
	}
}

func TestGatherInvertsScatter(t *testing.T) {
	const w = 12
	pindices := []uint32{0, 2, 3, 9}
	src := elements(w, 10, 20, 30, 40)
	col := make([]byte, 10*w)

	Scatter(col, w, pindices, src)
	out := make([]byte, len(src))
	Gather(out, w, pindices, col)

	assert.Equal(t, src, out)
}

package bulk

import "unsafe"

type elem interface {
	[1]byte | [4]byte | [8]byte | [12]byte | [16]byte
}

// asElems reinterprets b as a slice of fixed-size elements.
// Byte arrays have alignment 1, so any b is valid.
func asElems[E elem](b []byte) []E {
	var zero E
	n := len(b) / int(unsafe.Sizeof(zero))
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*E)(unsafe.Pointer(&b[0])), n) //nolint:gosec // fixed-size byte arrays over a byte slice
}

// Scatter copies element i of src to slot pindices[i] of dst.
// src must hold at least len(pindices) elements.
func Scatter(dst []byte, width int, pindices []uint32, src []byte) {
	if len(pindices) == 0 {
		return
	}
	switch width {
	case 1:
		scatter[[1]byte](dst, pindices, src)
	case 4:
		scatter[[4]byte](dst, pindices, src)
	case 8:
		scatter[[8]byte](dst, pindices, src)
	case 12:
		scatter[[12]byte](dst, pindices, src)
	case 16:
		scatter[[16]byte](dst, pindices, src)
	default:
		for i, p := range pindices {
			off := int(p) * width
			copy(dst[off:off+width], src[i*width:(i+1)*width])
		}
	}
}

func scatter[E elem](dst []byte, pindices []uint32, src []byte) {
	d := asElems[E](dst)
	s := asElems[E](src)[:len(pindices)]
	for i, p := range pindices {
		d[p] = s[i]
	}
}

// ScatterRange copies n elements of src to the contiguous slots [start, start+n).
func ScatterRange(dst []byte, width, start, n int, src []byte) {
	if n <= 0 {
		return
	}
	copy(dst[start*width:(start+n)*width], src[:n*width])
}

// Repeat writes the elements of src to the slots in pindices, cycling through
// src starting at element offset and wrapping to 0 at the end. It returns the
// offset of the next element to write so a caller can continue the tiling in
// another column. src must hold at least one element and offset must be a
// valid element index of src.
func Repeat(dst []byte, width int, pindices []uint32, src []byte, offset int) int {
	if len(pindices) == 0 {
		return offset
	}
	switch width {
	case 1:
		return repeat[[1]byte](dst, pindices, src, offset)
	case 4:
		return repeat[[4]byte](dst, pindices, src, offset)
	case 8:
		return repeat[[8]byte](dst, pindices, src, offset)
	case 12:
		return repeat[[12]byte](dst, pindices, src, offset)
	case 16:
		return repeat[[16]byte](dst, pindices, src, offset)
	}
	amount := len(src) / width
	for _, p := range pindices {
		off := int(p) * width
		copy(dst[off:off+width], src[offset*width:(offset+1)*width])
		offset++
		if offset == amount {
			offset = 0
		}
	}
	return offset
}

func repeat[E elem](dst []byte, pindices []uint32, src []byte, offset int) int {
	d := asElems[E](dst)
	s := asElems[E](src)
	for _, p := range pindices {
		d[p] = s[offset]
		offset++
		if offset == len(s) {
			offset = 0
		}
	}
	return offset
}

// RepeatRange is Repeat for the contiguous slots [start, start+n).
func RepeatRange(dst []byte, width, start, n int, src []byte, offset int) int {
	if n <= 0 {
		return offset
	}
	amount := len(src) / width
	out := dst[start*width : (start+n)*width]
	for len(out) > 0 {
		c := copy(out, src[offset*width:])
		out = out[c:]
		offset += c / width
		if offset == amount {
			offset = 0
		}
	}
	return offset
}

// Fill writes the width-byte pattern to every slot in pindices.
func Fill(dst []byte, width int, pindices []uint32, pattern []byte) {
	if len(pindices) == 0 {
		return
	}
	switch width {
	case 1:
		fill[[1]byte](dst, pindices, pattern)
	case 4:
		fill[[4]byte](dst, pindices, pattern)
	case 8:
		fill[[8]byte](dst, pindices, pattern)
	case 12:
		fill[[12]byte](dst, pindices, pattern)
	case 16:
		fill[[16]byte](dst, pindices, pattern)
	default:
		pattern = pattern[:width]
		for _, p := range pindices {
			off := int(p) * width
			copy(dst[off:off+width], pattern)
		}
	}
}

func fill[E elem](dst []byte, pindices []uint32, pattern []byte) {
	d := asElems[E](dst)
	v := asElems[E](pattern)[0]
	for _, p := range pindices {
		d[p] = v
	}
}

// FillRange writes the pattern to the contiguous slots [start, start+n).
// The first element is written directly and then doubled with copy.
func FillRange(dst []byte, width, start, n int, pattern []byte) {
	if n <= 0 {
		return
	}
	out := dst[start*width : (start+n)*width]
	filled := copy(out, pattern[:width])
	for filled < len(out) {
		filled += copy(out[filled:], out[:filled])
	}
}

// Gather copies slot pindices[i] of src to element i of dst.
func Gather(dst []byte, width int, pindices []uint32, src []byte) {
	if len(pindices) == 0 {
		return
	}
	switch width {
	case 1:
		gather[[1]byte](dst, pindices, src)
	case 4:
		gather[[4]byte](dst, pindices, src)
	case 8:
		gather[[8]byte](dst, pindices, src)
	case 12:
		gather[[12]byte](dst, pindices, src)
	case 16:
		gather[[16]byte](dst, pindices, src)
	default:
		for i, p := range pindices {
			off := int(p) * width
			copy(dst[i*width:(i+1)*width], src[off:off+width])
		}
	}
}

func gather[E elem](dst []byte, pindices []uint32, src []byte) {
	d := asElems[E](dst)[:len(pindices)]
	s := asElems[E](src)
	for i, p := range pindices {
		d[i] = s[p]
	}
}

package attribute

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// Type is the primitive kind of an attribute column.
type Type uint8

const (
	// TypeByte is a 1-byte unsigned integer.
	TypeByte Type = iota
	// TypeInteger is a 4-byte signed integer.
	TypeInteger
	// TypeFloat is a 4-byte IEEE-754 float.
	TypeFloat
	// TypeFloat3 is a vector of three 4-byte floats.
	TypeFloat3
)

var typeSizes = [...]int{
	TypeByte:    1,
	TypeInteger: 4,
	TypeFloat:   4,
	TypeFloat3:  12,
}

// String returns the string representation of the Type.
func (t Type) String() string {
	switch t {
	case TypeByte:
		return "Byte"
	case TypeInteger:
		return "Integer"
	case TypeFloat:
		return "Float"
	case TypeFloat3:
		return "Float3"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is one of the known kinds.
func (t Type) Valid() bool {
	return int(t) < len(typeSizes)
}

// SizeOf returns the byte width of one element of type t.
// It returns 0 for unknown types.
func SizeOf(t Type) int {
	if !t.Valid() {
		return 0
	}
	return typeSizes[t]
}

// Float3 is a three-component float vector.
type Float3 struct {
	X, Y, Z float32
}

// Add returns the component-wise sum.
func (f Float3) Add(o Float3) Float3 {
	return Float3{f.X + o.X, f.Y + o.Y, f.Z + o.Z}
}

// Scale multiplies every component by s.
func (f Float3) Scale(s float32) Float3 {
	return Float3{f.X * s, f.Y * s, f.Z * s}
}

// Value is the set of Go types that map onto an attribute Type.
type Value interface {
	uint8 | int32 | float32 | Float3
}

// TypeOf returns the attribute Type that T is stored as.
func TypeOf[T Value]() Type {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return TypeByte
	case int32:
		return TypeInteger
	case float32:
		return TypeFloat
	default:
		return TypeFloat3
	}
}

// Encode writes v into dst using the little-endian layout of its Type.
// dst must hold at least SizeOf(TypeOf[T]()) bytes.
func Encode[T Value](dst []byte, v T) {
	switch x := any(v).(type) {
	case uint8:
		dst[0] = x
	case int32:
		binary.LittleEndian.PutUint32(dst, uint32(x))
	case float32:
		binary.LittleEndian.PutUint32(dst, math.Float32bits(x))
	case Float3:
		_ = dst[11]
		binary.LittleEndian.PutUint32(dst[0:], math.Float32bits(x.X))
		binary.LittleEndian.PutUint32(dst[4:], math.Float32bits(x.Y))
		binary.LittleEndian.PutUint32(dst[8:], math.Float32bits(x.Z))
	}
}

// Decode reads one value of type T from src.
func Decode[T Value](src []byte) T {
	var out T
	switch p := any(&out).(type) {
	case *uint8:
		*p = src[0]
	case *int32:
		*p = int32(binary.LittleEndian.Uint32(src))
	case *float32:
		*p = math.Float32frombits(binary.LittleEndian.Uint32(src))
	case *Float3:
		_ = src[11]
		p.X = math.Float32frombits(binary.LittleEndian.Uint32(src[0:]))
		p.Y = math.Float32frombits(binary.LittleEndian.Uint32(src[4:]))
		p.Z = math.Float32frombits(binary.LittleEndian.Uint32(src[8:]))
	}
	return out
}

// Bytes returns the encoded form of v.
func Bytes[T Value](v T) []byte {
	buf := make([]byte, SizeOf(TypeOf[T]()))
	Encode(buf, v)
	return buf
}

// AppendValues appends the encoded form of every element of values to dst.
func AppendValues[T Value](dst []byte, values []T) []byte {
	width := SizeOf(TypeOf[T]())
	start := len(dst)
	dst = append(dst, make([]byte, width*len(values))...)
	for i, v := range values {
		Encode(dst[start+i*width:], v)
	}
	return dst
}

var littleEndianHost = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// RawBytes returns the encoded bytes of values. On little-endian hosts the
// result aliases the memory of values instead of copying it; callers must
// treat it as read-only.
func RawBytes[T Value](values []T) []byte {
	if len(values) == 0 {
		return nil
	}
	if littleEndianHost {
		size := len(values) * SizeOf(TypeOf[T]())
		return unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), size) //nolint:gosec // value types have no padding
	}
	return AppendValues(nil, values)
}

package attribute

import (
	"bytes"
	"fmt"
)

// Descriptor describes one attribute column.
type Descriptor struct {
	Name    string
	Type    Type
	Default []byte
}

// Info is an ordered, immutable attribute schema for one particle type.
type Info struct {
	descs   []Descriptor
	indices map[string]int
}

// Len returns the number of attributes.
func (i *Info) Len() int {
	return len(i.descs)
}

// Index resolves an attribute name to its index.
func (i *Info) Index(name string) (int, error) {
	idx, ok := i.indices[name]
	if !ok {
		return -1, &ErrAttributeNotFound{Name: name}
	}
	return idx, nil
}

// HasAttribute reports whether name is part of the schema.
func (i *Info) HasAttribute(name string) bool {
	_, ok := i.indices[name]
	return ok
}

// CheckIndex returns an error if index is not a valid attribute index.
func (i *Info) CheckIndex(index int) error {
	if index < 0 || index >= len(i.descs) {
		return &ErrIndexOutOfRange{Index: index, Len: len(i.descs)}
	}
	return nil
}

// CheckType returns an error unless index is valid and declared with type t.
func (i *Info) CheckType(index int, t Type) error {
	if err := i.CheckIndex(index); err != nil {
		return err
	}
	if d := i.descs[index]; d.Type != t {
		return &ErrTypeMismatch{Attribute: d.Name, Expected: d.Type, Actual: t}
	}
	return nil
}

// TypeOf returns the type of the attribute at index.
// It panics if index is out of range.
func (i *Info) TypeOf(index int) Type {
	return i.descs[index].Type
}

// Name returns the name of the attribute at index.
func (i *Info) Name(index int) string {
	return i.descs[index].Name
}

// ElementSize returns the byte width of the attribute at index.
func (i *Info) ElementSize(index int) int {
	return SizeOf(i.descs[index].Type)
}

// DefaultValue returns the encoded default of the attribute at index.
// The slice is exactly ElementSize(index) bytes and must not be modified.
func (i *Info) DefaultValue(index int) []byte {
	return i.descs[index].Default
}

// Descriptor returns a copy of the descriptor at index.
func (i *Info) Descriptor(index int) Descriptor {
	d := i.descs[index]
	d.Default = bytes.Clone(d.Default)
	return d
}

// Names returns the attribute names in index order.
func (i *Info) Names() []string {
	names := make([]string, len(i.descs))
	for j, d := range i.descs {
		names[j] = d.Name
	}
	return names
}

// NamesOfType returns the names of all attributes of type t in index order.
func (i *Info) NamesOfType(t Type) []string {
	var names []string
	for _, d := range i.descs {
		if d.Type == t {
			names = append(names, d.Name)
		}
	}
	return names
}

// Equal reports whether two schemas have identical names, types, and defaults
// in the same order.
func (i *Info) Equal(o *Info) bool {
	if i == o {
		return true
	}
	if i == nil || o == nil || len(i.descs) != len(o.descs) {
		return false
	}
	for j := range i.descs {
		a, b := i.descs[j], o.descs[j]
		if a.Name != b.Name || a.Type != b.Type || !bytes.Equal(a.Default, b.Default) {
			return false
		}
	}
	return true
}

// String returns a compact description such as "Info[Position:Float3 Size:Float]".
func (i *Info) String() string {
	var b bytes.Buffer
	b.WriteString("Info[")
	for j, d := range i.descs {
		if j > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s:%s", d.Name, d.Type)
	}
	b.WriteByte(']')
	return b.String()
}

// Builder accumulates attribute descriptors for an Info.
// Errors are deferred until Build.
type Builder struct {
	descs []Descriptor
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends an attribute with a raw encoded default value.
func (b *Builder) Add(name string, t Type, def []byte) *Builder {
	b.descs = append(b.descs, Descriptor{Name: name, Type: t, Default: bytes.Clone(def)})
	return b
}

// AddByte appends a Byte attribute.
func (b *Builder) AddByte(name string, def uint8) *Builder {
	return b.Add(name, TypeByte, Bytes(def))
}

// AddInteger appends an Integer attribute.
func (b *Builder) AddInteger(name string, def int32) *Builder {
	return b.Add(name, TypeInteger, Bytes(def))
}

// AddFloat appends a Float attribute.
func (b *Builder) AddFloat(name string, def float32) *Builder {
	return b.Add(name, TypeFloat, Bytes(def))
}

// AddFloat3 appends a Float3 attribute.
func (b *Builder) AddFloat3(name string, def Float3) *Builder {
	return b.Add(name, TypeFloat3, Bytes(def))
}

// Build validates the accumulated descriptors and returns the Info.
func (b *Builder) Build() (*Info, error) {
	info := &Info{
		descs:   make([]Descriptor, len(b.descs)),
		indices: make(map[string]int, len(b.descs)),
	}
	for i, d := range b.descs {
		if !d.Type.Valid() {
			return nil, fmt.Errorf("%w: %q has type %d", ErrInvalidType, d.Name, d.Type)
		}
		if _, ok := info.indices[d.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, d.Name)
		}
		size := SizeOf(d.Type)
		switch len(d.Default) {
		case 0:
			d.Default = make([]byte, size)
		case size:
			d.Default = bytes.Clone(d.Default)
		default:
			return nil, fmt.Errorf("%w: %q expects %d bytes, got %d", ErrInvalidDefault, d.Name, size, len(d.Default))
		}
		info.descs[i] = d
		info.indices[d.Name] = i
	}
	return info, nil
}

// MustBuild is like Build but panics on error. Intended for static schemas.
func (b *Builder) MustBuild() *Info {
	info, err := b.Build()
	if err != nil {
		panic(err)
	}
	return info
}

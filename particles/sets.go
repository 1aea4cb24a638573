package particles

import (
	"slices"

	"github.com/hupe1980/particlestore/attribute"
	"github.com/hupe1980/particlestore/internal/bulk"
)

// Sets is an ordered collection of Set views over blocks of one particle
// type. Membership is fixed at construction.
type Sets struct {
	typeName string
	info     *attribute.Info
	sets     []Set
	size     int
}

// NewSets builds the collection. Every set's block must use info as its
// schema. The sets slice is copied.
func NewSets(typeName string, info *attribute.Info, sets []Set) (*Sets, error) {
	if info == nil {
		return nil, ErrNilInfo
	}
	size := 0
	for _, set := range sets {
		if set.block == nil {
			return nil, ErrNilBlock
		}
		if bi := set.block.Info(); bi != info && !bi.Equal(info) {
			return nil, ErrSchemaMismatch
		}
		size += set.Size()
	}
	return &Sets{
		typeName: typeName,
		info:     info,
		sets:     slices.Clone(sets),
		size:     size,
	}, nil
}

// Sets returns the constituent sets in order. The slice must not be modified.
func (s *Sets) Sets() []Set { return s.sets }

// ParticleTypeName returns the name of the particle type.
func (s *Sets) ParticleTypeName() string { return s.typeName }

// AttributesInfo returns the shared schema.
func (s *Sets) AttributesInfo() *attribute.Info { return s.info }

// Size returns the total number of particles over all sets.
func (s *Sets) Size() int { return s.size }

// setElements scatters data, one element per destination in enumeration order.
func (s *Sets) setElements(index int, data []byte) {
	width := s.info.ElementSize(index)
	for _, set := range s.sets {
		n := set.Size()
		dst := set.Column(index)
		if set.PIndicesAreTrivial() {
			bulk.ScatterRange(dst, width, 0, n, data)
		} else {
			bulk.Scatter(dst, width, set.pindices, data)
		}
		data = data[n*width:]
	}
}

// setRepeatedElements tiles data over all destinations. data holds at least
// one element.
func (s *Sets) setRepeatedElements(index int, data []byte) {
	width := s.info.ElementSize(index)
	offset := 0
	for _, set := range s.sets {
		dst := set.Column(index)
		if set.PIndicesAreTrivial() {
			offset = bulk.RepeatRange(dst, width, 0, set.Size(), data, offset)
		} else {
			offset = bulk.Repeat(dst, width, set.pindices, data, offset)
		}
	}
}

// fillElements writes pattern to every destination.
func (s *Sets) fillElements(index int, pattern []byte) {
	width := s.info.ElementSize(index)
	for _, set := range s.sets {
		dst := set.Column(index)
		if set.PIndicesAreTrivial() {
			bulk.FillRange(dst, width, 0, set.Size(), pattern)
		} else {
			bulk.Fill(dst, width, set.pindices, pattern)
		}
	}
}

// gatherElements reads every destination in enumeration order into out.
func (s *Sets) gatherElements(index int, out []byte) {
	width := s.info.ElementSize(index)
	for _, set := range s.sets {
		n := set.Size()
		src := set.Column(index)
		if set.PIndicesAreTrivial() {
			copy(out[:n*width], src[:n*width])
		} else {
			bulk.Gather(out, width, set.pindices, src)
		}
		out = out[n*width:]
	}
}

// SetBytes scatters raw encoded elements into the attribute at index.
// raw must hold exactly Size() elements of the attribute's width.
func (s *Sets) SetBytes(index int, raw []byte) error {
	if err := s.info.CheckIndex(index); err != nil {
		return err
	}
	width := s.info.ElementSize(index)
	if len(raw)%width != 0 {
		return &ErrWidthMismatch{Attribute: s.info.Name(index), Width: width, Bytes: len(raw)}
	}
	if n := len(raw) / width; n != s.size {
		return &ErrSizeMismatch{Expected: s.size, Actual: n}
	}
	s.setElements(index, raw)
	return nil
}

// SetRepeatedBytes tiles raw encoded elements over the attribute at index.
// An empty raw fills with the attribute default.
func (s *Sets) SetRepeatedBytes(index int, raw []byte) error {
	if err := s.info.CheckIndex(index); err != nil {
		return err
	}
	width := s.info.ElementSize(index)
	if len(raw)%width != 0 {
		return &ErrWidthMismatch{Attribute: s.info.Name(index), Width: width, Bytes: len(raw)}
	}
	if len(raw) == 0 {
		s.fillElements(index, s.info.DefaultValue(index))
		return nil
	}
	s.setRepeatedElements(index, raw)
	return nil
}

// FillBytes writes one raw encoded element to every destination.
func (s *Sets) FillBytes(index int, pattern []byte) error {
	if err := s.info.CheckIndex(index); err != nil {
		return err
	}
	width := s.info.ElementSize(index)
	if len(pattern) != width {
		return &ErrWidthMismatch{Attribute: s.info.Name(index), Width: width, Bytes: len(pattern)}
	}
	s.fillElements(index, pattern)
	return nil
}

// FillDefault writes the attribute's schema default to every destination.
func (s *Sets) FillDefault(index int) error {
	if err := s.info.CheckIndex(index); err != nil {
		return err
	}
	s.fillElements(index, s.info.DefaultValue(index))
	return nil
}

// GatherBytes returns the raw elements of the attribute at index for every
// destination in enumeration order.
func (s *Sets) GatherBytes(index int) ([]byte, error) {
	if err := s.info.CheckIndex(index); err != nil {
		return nil, err
	}
	out := make([]byte, s.size*s.info.ElementSize(index))
	s.gatherElements(index, out)
	return out, nil
}

// FillByte writes value to every destination of a Byte attribute.
func (s *Sets) FillByte(index int, value uint8) error {
	return Fill(s, index, value)
}

// FillByteByName is FillByte with name resolution.
func (s *Sets) FillByteByName(name string, value uint8) error {
	return FillByName(s, name, value)
}

// FillInteger writes value to every destination of an Integer attribute.
func (s *Sets) FillInteger(index int, value int32) error {
	return Fill(s, index, value)
}

// FillIntegerByName is FillInteger with name resolution.
func (s *Sets) FillIntegerByName(name string, value int32) error {
	return FillByName(s, name, value)
}

// FillFloat writes value to every destination of a Float attribute.
func (s *Sets) FillFloat(index int, value float32) error {
	return Fill(s, index, value)
}

// FillFloatByName is FillFloat with name resolution.
func (s *Sets) FillFloatByName(name string, value float32) error {
	return FillByName(s, name, value)
}

// FillFloat3 writes value to every destination of a Float3 attribute.
func (s *Sets) FillFloat3(index int, value attribute.Float3) error {
	return Fill(s, index, value)
}

// FillFloat3ByName is FillFloat3 with name resolution.
func (s *Sets) FillFloat3ByName(name string, value attribute.Float3) error {
	return FillByName(s, name, value)
}

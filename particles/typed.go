package particles

import (
	"github.com/hupe1980/particlestore/attribute"
)

// SetValues scatters values into the attribute at index: values[i] goes to
// the i-th destination in set-then-pindex order. len(values) must equal
// s.Size() and T must match the attribute's declared type.
func SetValues[T attribute.Value](s *Sets, index int, values []T) error {
	if err := s.info.CheckType(index, attribute.TypeOf[T]()); err != nil {
		return err
	}
	if len(values) != s.size {
		return &ErrSizeMismatch{Expected: s.size, Actual: len(values)}
	}
	s.setElements(index, attribute.RawBytes(values))
	return nil
}

// SetValuesByName is SetValues with name resolution.
func SetValuesByName[T attribute.Value](s *Sets, name string, values []T) error {
	index, err := s.info.Index(name)
	if err != nil {
		return err
	}
	return SetValues(s, index, values)
}

// SetRepeated tiles values cyclically over every destination of the
// attribute at index. The last tile is truncated when s.Size() is not a
// multiple of len(values). An empty values fills with the schema default.
func SetRepeated[T attribute.Value](s *Sets, index int, values []T) error {
	if err := s.info.CheckType(index, attribute.TypeOf[T]()); err != nil {
		return err
	}
	if len(values) == 0 {
		s.fillElements(index, s.info.DefaultValue(index))
		return nil
	}
	s.setRepeatedElements(index, attribute.RawBytes(values))
	return nil
}

// SetRepeatedByName is SetRepeated with name resolution.
func SetRepeatedByName[T attribute.Value](s *Sets, name string, values []T) error {
	index, err := s.info.Index(name)
	if err != nil {
		return err
	}
	return SetRepeated(s, index, values)
}

// Fill writes value to every destination of the attribute at index.
func Fill[T attribute.Value](s *Sets, index int, value T) error {
	if err := s.info.CheckType(index, attribute.TypeOf[T]()); err != nil {
		return err
	}
	s.fillElements(index, attribute.Bytes(value))
	return nil
}

// FillByName is Fill with name resolution.
func FillByName[T attribute.Value](s *Sets, name string, value T) error {
	index, err := s.info.Index(name)
	if err != nil {
		return err
	}
	return Fill(s, index, value)
}

// Values reads the attribute at index for every destination in
// set-then-pindex order.
func Values[T attribute.Value](s *Sets, index int) ([]T, error) {
	if err := s.info.CheckType(index, attribute.TypeOf[T]()); err != nil {
		return nil, err
	}
	width := s.info.ElementSize(index)
	raw := make([]byte, s.size*width)
	s.gatherElements(index, raw)

	out := make([]T, s.size)
	for i := range out {
		out[i] = attribute.Decode[T](raw[i*width:])
	}
	return out, nil
}

// ValuesByName is Values with name resolution.
func ValuesByName[T attribute.Value](s *Sets, name string) ([]T, error) {
	index, err := s.info.Index(name)
	if err != nil {
		return nil, err
	}
	return Values[T](s, index)
}

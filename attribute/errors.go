package attribute

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateName is returned by Build when two attributes share a name.
	ErrDuplicateName = errors.New("attribute: duplicate name")
	// ErrInvalidType is returned by Build for an unknown attribute type.
	ErrInvalidType = errors.New("attribute: invalid type")
	// ErrInvalidDefault is returned by Build when a default value has the wrong width.
	ErrInvalidDefault = errors.New("attribute: invalid default value")
)

// ErrAttributeNotFound indicates a name lookup against an Info failed.
type ErrAttributeNotFound struct {
	Name string
}

func (e *ErrAttributeNotFound) Error() string {
	return fmt.Sprintf("attribute %q not found", e.Name)
}

// ErrIndexOutOfRange indicates an attribute index beyond the schema length.
type ErrIndexOutOfRange struct {
	Index int
	Len   int
}

func (e *ErrIndexOutOfRange) Error() string {
	return fmt.Sprintf("attribute index %d out of range [0, %d)", e.Index, e.Len)
}

// ErrTypeMismatch indicates a value type that differs from the attribute's
// declared type.
type ErrTypeMismatch struct {
	Attribute string
	Expected  Type
	Actual    Type
}

func (e *ErrTypeMismatch) Error() string {
	return fmt.Sprintf("attribute %q has type %s, got %s", e.Attribute, e.Expected, e.Actual)
}

package container

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by operations on a closed container.
	ErrClosed = errors.New("container: closed")
	// ErrInvalidCapacity is returned for a non-positive block capacity.
	ErrInvalidCapacity = errors.New("container: block capacity must be positive")
	// ErrForeignBlock is returned when releasing a block the container does not own.
	ErrForeignBlock = errors.New("container: block not owned by this container")
	// ErrNilInfo is returned when a container is created without a schema.
	ErrNilInfo = errors.New("container: attribute info is nil")
	// ErrColumnCount is returned when block data does not carry one column per attribute.
	ErrColumnCount = errors.New("container: column count does not match schema")
)

// ErrActiveAmount indicates an active amount outside [0, capacity].
type ErrActiveAmount struct {
	Amount   int
	Capacity int
}

func (e *ErrActiveAmount) Error() string {
	return fmt.Sprintf("active amount %d outside block capacity %d", e.Amount, e.Capacity)
}

// ErrSlotOutOfRange indicates a slot beyond the active prefix of a block.
type ErrSlotOutOfRange struct {
	Slot   int
	Active int
}

func (e *ErrSlotOutOfRange) Error() string {
	return fmt.Sprintf("slot %d outside active range [0, %d)", e.Slot, e.Active)
}

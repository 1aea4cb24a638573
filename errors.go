package particlestore

import (
	"errors"
	"fmt"

	"github.com/hupe1980/particlestore/attribute"
	"github.com/hupe1980/particlestore/container"
	"github.com/hupe1980/particlestore/internal/resource"
	"github.com/hupe1980/particlestore/particles"
	"github.com/hupe1980/particlestore/snapshot"
)

var (
	// ErrNotFound is returned when a particle type or attribute is not found.
	ErrNotFound = errors.New("not found")
	// ErrTypeExists is returned when a particle type name is registered twice.
	ErrTypeExists = errors.New("particle type already registered")
	// ErrClosed is returned when the store has been closed.
	ErrClosed = errors.New("store closed")
	// ErrMemoryLimitExceeded is returned when a block allocation would exceed
	// the configured memory limit.
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")
	// ErrSchemaMismatch is returned when data encoded with one schema is applied
	// to a type with another.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrInvalidArgument is returned for invalid counts and nil inputs.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ErrUnknownType indicates a particle type name that was never registered.
//
// It matches ErrNotFound via errors.Is.
type ErrUnknownType struct {
	Name string
}

func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("unknown particle type %q", e.Name)
}

func (e *ErrUnknownType) Unwrap() error { return ErrNotFound }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Not found unification.
	var anf *attribute.ErrAttributeNotFound
	if errors.As(err, &anf) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	// Lifecycle.
	if errors.Is(err, container.ErrClosed) {
		return fmt.Errorf("%w: %w", ErrClosed, err)
	}
	if errors.Is(err, resource.ErrMemoryLimitExceeded) {
		return fmt.Errorf("%w: %w", ErrMemoryLimitExceeded, err)
	}

	// Schema normalization.
	if errors.Is(err, snapshot.ErrSchemaMismatch) || errors.Is(err, particles.ErrSchemaMismatch) {
		return fmt.Errorf("%w: %w", ErrSchemaMismatch, err)
	}
	if errors.Is(err, container.ErrNilInfo) || errors.Is(err, particles.ErrNilInfo) || errors.Is(err, container.ErrInvalidCapacity) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return err
}

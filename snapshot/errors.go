package snapshot

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMagic is returned when the stream does not start with a snapshot header.
	ErrInvalidMagic = errors.New("snapshot: invalid magic")
	// ErrChecksumMismatch is returned when a payload or chunk fails CRC32C verification.
	ErrChecksumMismatch = errors.New("snapshot: checksum mismatch")
	// ErrCorrupt is returned for structurally invalid snapshot data.
	ErrCorrupt = errors.New("snapshot: corrupt data")
	// ErrSchemaMismatch is returned by Restore when the target container uses
	// a different schema.
	ErrSchemaMismatch = errors.New("snapshot: schema mismatch")
	// ErrInvalidCompression is returned for an unknown compression algorithm.
	ErrInvalidCompression = errors.New("snapshot: invalid compression")
)

// ErrUnsupportedVersion indicates a snapshot written by a newer format.
type ErrUnsupportedVersion struct {
	Version uint32
}

func (e *ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("snapshot: unsupported version %d", e.Version)
}

// ErrBlockTooLarge indicates a snapshot block with more particles than the
// target container's block capacity.
type ErrBlockTooLarge struct {
	Block    int
	Active   int
	Capacity int
}

func (e *ErrBlockTooLarge) Error() string {
	return fmt.Sprintf("snapshot: block %d holds %d particles, target capacity is %d", e.Block, e.Active, e.Capacity)
}

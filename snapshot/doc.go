// Package snapshot encodes the occupied particles of a container to a byte
// stream and restores them into another container with the same schema.
//
// # Format
//
// A snapshot starts with a fixed 16-byte header followed by a metadata
// payload and one chunk per block per attribute:
//
//	Header:   Magic (4) | Version (4) | CRC32C(payload) (4) | PayloadLen (4)
//	Payload:  TypeName | Capacity | Compression | Attributes... | Blocks...
//	Chunk:    RawLen (4) | StoredLen (4) | CRC32C(raw) (4) | Data
//
// Only the active prefix of each column is written. A StoredLen of zero
// marks a chunk that is stored uncompressed, which also happens when
// compression does not pay off.
//
// # Usage
//
//	err := snapshot.Write(ctx, w, "Main", c, snapshot.WithCompression(snapshot.CompressionZSTD))
//
//	snap, err := snapshot.Read(ctx, r)
//	err = snap.Restore(target)
package snapshot

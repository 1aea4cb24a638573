package snapshot

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/particlestore/attribute"
	"github.com/hupe1980/particlestore/container"
	"github.com/hupe1980/particlestore/internal/hash"
	"github.com/hupe1980/particlestore/internal/resource"
)

const (
	magic   = 0x50534E50 // "PNSP"
	version = 1

	headerSize      = 16
	chunkHeaderSize = 12

	// maxPayloadSize bounds the schema and block table section.
	maxPayloadSize = 64 << 20
	// eagerReadSize is the largest buffer allocated before its bytes arrive.
	eagerReadSize = 1 << 20
)

// Snapshot is a decoded particle dump of one container.
type Snapshot struct {
	// TypeName is the particle type the container was registered under.
	TypeName string
	// Info is the schema the columns are encoded with.
	Info *attribute.Info
	// Capacity is the block capacity of the source container.
	Capacity int
	// Compression is the algorithm the chunks were written with.
	Compression Compression
	// Blocks holds, per source block, the active prefix of every column.
	Blocks []BlockData
}

// BlockData is the occupied prefix of one block.
type BlockData struct {
	Active  int
	Columns [][]byte
}

// Len returns the total number of particles in the snapshot.
func (s *Snapshot) Len() int {
	n := 0
	for _, b := range s.Blocks {
		n += b.Active
	}
	return n
}

// Write encodes the active particles of every block of c to w.
func Write(ctx context.Context, w io.Writer, typeName string, c *container.Container, optFns ...Option) error {
	o := applyOptions(optFns)
	if !o.compression.Valid() {
		return ErrInvalidCompression
	}
	if o.resources != nil {
		w = resource.NewRateLimitedWriter(ctx, w, o.resources)
	}

	info := c.Info()
	blocks := c.Blocks()

	pb := newPayloadBuffer(make([]byte, 0, 64+len(blocks)*4+info.Len()*32))
	pb.writeString(typeName)
	pb.writeInt(c.BlockCapacity())
	pb.writeUint8(uint8(o.compression))
	pb.writeInt(info.Len())
	for i := 0; i < info.Len(); i++ {
		pb.writeString(info.Name(i))
		pb.writeUint8(uint8(info.TypeOf(i)))
		pb.writeBytes(info.DefaultValue(i))
	}
	pb.writeInt(len(blocks))
	for _, b := range blocks {
		pb.writeInt(b.ActiveAmount())
	}
	if pb.err != nil {
		return pb.err
	}

	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(header[0:4], magic)
	binary.LittleEndian.PutUint32(header[4:8], version)
	binary.LittleEndian.PutUint32(header[8:12], hash.CRC32C(pb.buf))
	binary.LittleEndian.PutUint32(header[12:16], uint32(len(pb.buf)))

	if _, err := w.Write(header); err != nil {
		return err
	}
	if _, err := w.Write(pb.buf); err != nil {
		return err
	}

	var raw, stored int
	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := 0; i < info.Len(); i++ {
			n, err := writeChunk(w, b.ActiveColumn(i), o.compression)
			if err != nil {
				return err
			}
			raw += len(b.ActiveColumn(i))
			stored += n
		}
	}

	o.logger.Debug("snapshot written",
		"type", typeName,
		"blocks", len(blocks),
		"compression", o.compression.String(),
		"raw_bytes", raw,
		"stored_bytes", stored,
	)
	return nil
}

// writeChunk writes one column prefix and returns the number of data bytes
// written after the chunk header.
func writeChunk(w io.Writer, data []byte, c Compression) (int, error) {
	compressed, err := compress(data, c)
	if err != nil {
		return 0, err
	}

	body := data
	if compressed != nil {
		body = compressed
	}

	header := make([]byte, chunkHeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], uint32(len(data)))
	if compressed != nil {
		binary.LittleEndian.PutUint32(header[4:8], uint32(len(compressed)))
	}
	binary.LittleEndian.PutUint32(header[8:12], hash.CRC32C(data))

	if _, err := w.Write(header); err != nil {
		return 0, err
	}
	if _, err := w.Write(body); err != nil {
		return 0, err
	}
	return len(body), nil
}

// Read decodes a snapshot written by Write.
func Read(ctx context.Context, r io.Reader, optFns ...Option) (*Snapshot, error) {
	o := applyOptions(optFns)
	if o.resources != nil {
		r = resource.NewRateLimitedReader(ctx, r, o.resources)
	}

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	if m := binary.LittleEndian.Uint32(header[0:4]); m != magic {
		return nil, fmt.Errorf("%w: %x", ErrInvalidMagic, m)
	}
	if v := binary.LittleEndian.Uint32(header[4:8]); v != version {
		return nil, &ErrUnsupportedVersion{Version: v}
	}
	checksum := binary.LittleEndian.Uint32(header[8:12])
	length := binary.LittleEndian.Uint32(header[12:16])

	if length > maxPayloadSize {
		return nil, fmt.Errorf("%w: payload of %d bytes", ErrCorrupt, length)
	}
	payload, err := readN(r, int(length))
	if err != nil {
		return nil, err
	}
	if hash.CRC32C(payload) != checksum {
		return nil, ErrChecksumMismatch
	}

	pb := newPayloadBuffer(payload)
	s := &Snapshot{}
	s.TypeName = pb.readString()
	s.Capacity = pb.readInt()
	s.Compression = Compression(pb.readUint8())

	builder := attribute.NewBuilder()
	numAttrs := pb.readInt()
	for i := 0; i < numAttrs && pb.err == nil; i++ {
		name := pb.readString()
		t := attribute.Type(pb.readUint8())
		def := pb.readBytes()
		builder.Add(name, t, def)
	}

	numBlocks := pb.readInt()
	actives := make([]int, 0, min(numBlocks, 1<<16))
	for i := 0; i < numBlocks && pb.err == nil; i++ {
		actives = append(actives, pb.readInt())
	}
	if pb.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, pb.err)
	}
	if !s.Compression.Valid() {
		return nil, ErrInvalidCompression
	}

	info, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	s.Info = info

	s.Blocks = make([]BlockData, len(actives))
	for bi, active := range actives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if active > s.Capacity {
			return nil, fmt.Errorf("%w: block %d active %d exceeds capacity %d", ErrCorrupt, bi, active, s.Capacity)
		}
		cols := make([][]byte, info.Len())
		for i := range cols {
			col, err := readChunk(r, s.Compression, active*info.ElementSize(i))
			if err != nil {
				return nil, fmt.Errorf("block %d attribute %q: %w", bi, info.Name(i), err)
			}
			cols[i] = col
		}
		s.Blocks[bi] = BlockData{Active: active, Columns: cols}
	}

	o.logger.Debug("snapshot read",
		"type", s.TypeName,
		"blocks", len(s.Blocks),
		"particles", s.Len(),
		"compression", s.Compression.String(),
	)
	return s, nil
}

// readChunk reads one column chunk that must decode to exactly want bytes.
func readChunk(r io.Reader, c Compression, want int) ([]byte, error) {
	header := make([]byte, chunkHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, err
	}
	rawLen := int(binary.LittleEndian.Uint32(header[0:4]))
	storedLen := int(binary.LittleEndian.Uint32(header[4:8]))
	checksum := binary.LittleEndian.Uint32(header[8:12])

	if rawLen != want {
		return nil, fmt.Errorf("%w: chunk of %d bytes, want %d", ErrCorrupt, rawLen, want)
	}
	// Write only keeps compressed chunks smaller than the raw column.
	if storedLen >= rawLen && storedLen != 0 {
		return nil, fmt.Errorf("%w: compressed chunk of %d bytes for %d raw", ErrCorrupt, storedLen, rawLen)
	}

	var data []byte
	if storedLen == 0 {
		var err error
		if data, err = readN(r, rawLen); err != nil {
			return nil, err
		}
	} else {
		stored, err := readN(r, storedLen)
		if err != nil {
			return nil, err
		}
		if data, err = decompress(stored, rawLen, c); err != nil {
			return nil, err
		}
	}

	if hash.CRC32C(data) != checksum {
		return nil, ErrChecksumMismatch
	}
	return data, nil
}

// readN reads exactly n bytes. Large reads grow with the data that actually
// arrives, so a truncated stream cannot force an n-byte allocation.
func readN(r io.Reader, n int) ([]byte, error) {
	if n <= eagerReadSize {
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		return buf, nil
	}

	var buf bytes.Buffer
	buf.Grow(eagerReadSize)
	if _, err := io.CopyN(&buf, r, int64(n)); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return buf.Bytes(), nil
}

// Restore appends one new block to c per snapshot block and copies the
// columns into it. c must use an equal schema and a block capacity large
// enough for every snapshot block. On error, blocks restored so far remain
// in c.
func (s *Snapshot) Restore(c *container.Container) error {
	if !c.Info().Equal(s.Info) {
		return ErrSchemaMismatch
	}
	for bi, data := range s.Blocks {
		if data.Active > c.BlockCapacity() {
			return &ErrBlockTooLarge{Block: bi, Active: data.Active, Capacity: c.BlockCapacity()}
		}
	}

	for _, data := range s.Blocks {
		if _, err := c.NewBlockFrom(data.Columns, data.Active); err != nil {
			return err
		}
	}
	return nil
}

package snapshot

import (
	"encoding/binary"
	"io"

	"github.com/hupe1980/particlestore/internal/conv"
)

// payloadBuffer appends or consumes little-endian fields, latching the first
// error so callers check once at the end.
type payloadBuffer struct {
	buf []byte
	pos int
	err error
}

func newPayloadBuffer(b []byte) *payloadBuffer {
	return &payloadBuffer{buf: b}
}

func (p *payloadBuffer) writeUint8(v uint8) {
	if p.err != nil {
		return
	}
	p.buf = append(p.buf, v)
}

func (p *payloadBuffer) writeUint32(v uint32) {
	if p.err != nil {
		return
	}
	p.buf = binary.LittleEndian.AppendUint32(p.buf, v)
}

func (p *payloadBuffer) writeInt(v int) {
	if p.err != nil {
		return
	}
	u, err := conv.IntToUint32(v)
	if err != nil {
		p.err = err
		return
	}
	p.writeUint32(u)
}

func (p *payloadBuffer) writeBytes(b []byte) {
	if p.err != nil {
		return
	}
	l, err := conv.IntToUint16(len(b))
	if err != nil {
		p.err = err
		return
	}
	p.buf = binary.LittleEndian.AppendUint16(p.buf, l)
	p.buf = append(p.buf, b...)
}

func (p *payloadBuffer) writeString(s string) {
	p.writeBytes([]byte(s))
}

func (p *payloadBuffer) readUint8() uint8 {
	if p.err != nil {
		return 0
	}
	if p.pos+1 > len(p.buf) {
		p.err = io.ErrUnexpectedEOF
		return 0
	}
	v := p.buf[p.pos]
	p.pos++
	return v
}

func (p *payloadBuffer) readUint32() uint32 {
	if p.err != nil {
		return 0
	}
	if p.pos+4 > len(p.buf) {
		p.err = io.ErrUnexpectedEOF
		return 0
	}
	v := binary.LittleEndian.Uint32(p.buf[p.pos:])
	p.pos += 4
	return v
}

func (p *payloadBuffer) readInt() int {
	v := p.readUint32()
	if p.err != nil {
		return 0
	}
	n, err := conv.Uint32ToInt(v)
	if err != nil {
		p.err = err
	}
	return n
}

func (p *payloadBuffer) readBytes() []byte {
	if p.err != nil {
		return nil
	}
	if p.pos+2 > len(p.buf) {
		p.err = io.ErrUnexpectedEOF
		return nil
	}
	l := int(binary.LittleEndian.Uint16(p.buf[p.pos:]))
	p.pos += 2

	if p.pos+l > len(p.buf) {
		p.err = io.ErrUnexpectedEOF
		return nil
	}
	b := make([]byte, l)
	copy(b, p.buf[p.pos:p.pos+l])
	p.pos += l
	return b
}

func (p *payloadBuffer) readString() string {
	return string(p.readBytes())
}

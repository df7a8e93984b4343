package sm3

import (
	"encoding"
	"encoding/binary"

	"github.com/bytom/sm3/errors"
)

const (
	magic         = "sm3\x03"
	marshaledSize = len(magic) + 8*4 + BlockSize + 8
)

var (
	_ encoding.BinaryMarshaler   = (*Digest)(nil)
	_ encoding.BinaryUnmarshaler = (*Digest)(nil)
)

// MarshalBinary checkpoints a partially written Digest. A finalized Digest
// has no state left to save and returns ErrFinalized.
func (d *Digest) MarshalBinary() ([]byte, error) {
	if d.finalized {
		return nil, ErrFinalized
	}

	b := make([]byte, 0, marshaledSize)
	b = append(b, magic...)
	for _, s := range d.h {
		b = binary.BigEndian.AppendUint32(b, s)
	}
	b = append(b, d.x[:d.nx]...)
	b = b[:len(b)+len(d.x)-d.nx] // already zero
	b = binary.BigEndian.AppendUint64(b, d.len)
	return b, nil
}

// UnmarshalBinary restores a state produced by MarshalBinary.
func (d *Digest) UnmarshalBinary(b []byte) error {
	if len(b) < len(magic) || string(b[:len(magic)]) != magic {
		return errors.WithDetail(ErrInvalidState, "invalid hash state identifier")
	}
	if len(b) != marshaledSize {
		return errors.WithDetailf(ErrInvalidState, "state is %d bytes, want %d", len(b), marshaledSize)
	}

	b = b[len(magic):]
	var h [8]uint32
	for i := range h {
		h[i] = binary.BigEndian.Uint32(b)
		b = b[4:]
	}
	var x [BlockSize]byte
	b = b[copy(x[:], b):]
	length := binary.BigEndian.Uint64(b)
	if length > maxLen {
		return errors.WithDetailf(ErrInvalidState, "length %d out of range", length)
	}

	d.h = h
	d.x = x
	d.len = length
	d.nx = int(length % BlockSize)
	d.finalized = false
	return nil
}

// Package sm3 implements the SM3 hash algorithm as defined in GB/T 32905-2016.
//
// A Digest accumulates input in arbitrary chunks and produces a 32-byte
// checksum. Digests are not safe for concurrent use; Compress is a pure
// function and may be called from any goroutine.
package sm3

import (
	"encoding/binary"
	"hash"

	"github.com/bytom/sm3/errors"
)

// The size of an SM3 checksum in bytes.
const Size = 32

// The blocksize of SM3 in bytes.
const BlockSize = 64

const (
	init0 = 0x7380166F
	init1 = 0x4914B2B9
	init2 = 0x172442D7
	init3 = 0xDA8A0600
	init4 = 0xA96F30BC
	init5 = 0x163138AA
	init6 = 0xE38DEE4D
	init7 = 0xB0FB0E4E

	// maxLen is the largest byte count whose bit length fits the 64-bit
	// length suffix.
	maxLen = 1<<61 - 1
)

var (
	// ErrFinalized is the panic value raised when a finalized Digest is
	// written to or finalized again without a Reset.
	ErrFinalized = errors.New("sm3: digest already finalized")
	// ErrInputTooLarge is returned by Write when the total input would
	// exceed 2^64 bits.
	ErrInputTooLarge = errors.New("sm3: input length exceeds 2^64 bits")
	// ErrInvalidState is returned by UnmarshalBinary for malformed state.
	ErrInvalidState = errors.New("sm3: invalid hash state")
)

var (
	_ hash.Hash = (*Digest)(nil)
)

// Digest represents the partial evaluation of an SM3 checksum.
type Digest struct {
	h         [8]uint32
	x         [BlockSize]byte
	nx        int
	len       uint64
	finalized bool
}

// New returns a new hash.Hash computing the SM3 checksum.
func New() hash.Hash {
	return NewDigest()
}

// NewDigest returns a freshly initialized Digest. Unlike New it exposes
// Finalize and the state marshaling methods.
func NewDigest() *Digest {
	d := new(Digest)
	d.Reset()
	return d
}

// Reset restores the initial state, including after Finalize.
func (d *Digest) Reset() {
	d.h = [8]uint32{init0, init1, init2, init3, init4, init5, init6, init7}
	d.nx = 0
	d.len = 0
	d.finalized = false
}

func (d *Digest) Size() int { return Size }

func (d *Digest) BlockSize() int { return BlockSize }

// Write absorbs p. It only fails with ErrInputTooLarge, in which case
// nothing is consumed. Writing to a finalized Digest panics.
func (d *Digest) Write(p []byte) (nn int, err error) {
	if d.finalized {
		panic(ErrFinalized)
	}
	if uint64(len(p)) > maxLen-d.len {
		return 0, errors.WithDetailf(ErrInputTooLarge, "%d bytes hashed, %d more offered", d.len, len(p))
	}

	nn = len(p)
	d.len += uint64(nn)
	if d.nx > 0 {
		n := copy(d.x[d.nx:], p)
		d.nx += n
		if d.nx == BlockSize {
			blocks(d, d.x[:])
			d.nx = 0
		}
		p = p[n:]
	}
	if len(p) >= BlockSize {
		n := len(p) &^ (BlockSize - 1)
		blocks(d, p[:n])
		p = p[n:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return
}

// Sum appends the current checksum to in. It does not change the
// underlying state, so the caller can keep writing.
func (d *Digest) Sum(in []byte) []byte {
	if d.finalized {
		panic(ErrFinalized)
	}
	d0 := *d
	hash := d0.checkSum()
	return append(in, hash[:]...)
}

// Finalize pads the buffered input, processes the last block(s) and
// returns the checksum. The Digest is consumed: any further Write, Sum or
// Finalize panics with ErrFinalized until Reset is called.
func (d *Digest) Finalize() [Size]byte {
	if d.finalized {
		panic(ErrFinalized)
	}
	digest := d.checkSum()
	d.finalized = true
	return digest
}

func (d *Digest) checkSum() [Size]byte {
	bitLen := d.len << 3

	// Padding. Add a 1 bit and 0 bits until 56 bytes mod 64.
	d.x[d.nx] = 0x80
	d.nx++
	if d.nx > BlockSize-8 {
		clear(d.x[d.nx:])
		blocks(d, d.x[:])
		d.nx = 0
	}
	clear(d.x[d.nx : BlockSize-8])
	binary.BigEndian.PutUint64(d.x[BlockSize-8:], bitLen)
	blocks(d, d.x[:])
	d.nx = 0

	var digest [Size]byte
	for i, s := range d.h {
		binary.BigEndian.PutUint32(digest[i*4:], s)
	}
	return digest
}

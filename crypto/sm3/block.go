package sm3

import (
	"encoding/binary"
	"math/bits"
)

const (
	t0 = 0x79CC4519
	t1 = 0x7A879D8A
)

// _T holds the round constants already rotated left by j mod 32.
var _T = func() (t [64]uint32) {
	for j := 0; j < 16; j++ {
		t[j] = bits.RotateLeft32(t0, j)
	}
	for j := 16; j < 64; j++ {
		t[j] = bits.RotateLeft32(t1, j%32)
	}
	return
}()

func p0(x uint32) uint32 { return x ^ bits.RotateLeft32(x, 9) ^ bits.RotateLeft32(x, 17) }
func p1(x uint32) uint32 { return x ^ bits.RotateLeft32(x, 15) ^ bits.RotateLeft32(x, 23) }

// Compress runs the SM3 compression function over one block and returns
// the chaining value that follows state.
func Compress(state [8]uint32, block *[BlockSize]byte) [8]uint32 {
	return compress(state, block[:])
}

// blocks feeds every whole block of p through the compression function.
func blocks(d *Digest, p []byte) {
	v := d.h
	for len(p) >= BlockSize {
		v = compress(v, p[:BlockSize])
		p = p[BlockSize:]
	}
	d.h = v
}

func compress(v [8]uint32, p []byte) [8]uint32 {
	var w [68]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(p[i*4:])
	}
	for j := 16; j < 68; j++ {
		w[j] = p1(w[j-16]^w[j-9]^bits.RotateLeft32(w[j-3], 15)) ^ bits.RotateLeft32(w[j-13], 7) ^ w[j-6]
	}

	a, b, c, d, e, f, g, h := v[0], v[1], v[2], v[3], v[4], v[5], v[6], v[7]

	// FF and GG are plain XOR for the first 16 rounds and boolean
	// majority/choice afterwards.
	j := 0
	for ; j < 16; j++ {
		a12 := bits.RotateLeft32(a, 12)
		ss1 := bits.RotateLeft32(a12+e+_T[j], 7)
		ss2 := ss1 ^ a12
		tt1 := (a ^ b ^ c) + d + ss2 + (w[j] ^ w[j+4])
		tt2 := (e ^ f ^ g) + h + ss1 + w[j]
		d, c, b, a = c, bits.RotateLeft32(b, 9), a, tt1
		h, g, f, e = g, bits.RotateLeft32(f, 19), e, p0(tt2)
	}
	for ; j < 64; j++ {
		a12 := bits.RotateLeft32(a, 12)
		ss1 := bits.RotateLeft32(a12+e+_T[j], 7)
		ss2 := ss1 ^ a12
		tt1 := (a&b | a&c | b&c) + d + ss2 + (w[j] ^ w[j+4])
		tt2 := (e&f | ^e&g) + h + ss1 + w[j]
		d, c, b, a = c, bits.RotateLeft32(b, 9), a, tt1
		h, g, f, e = g, bits.RotateLeft32(f, 19), e, p0(tt2)
	}

	v[0] ^= a
	v[1] ^= b
	v[2] ^= c
	v[3] ^= d
	v[4] ^= e
	v[5] ^= f
	v[6] ^= g
	v[7] ^= h
	return v
}

package crypto

import (
	"encoding/binary"
	"math"

	"github.com/bytom/sm3/crypto/sm3"
	"github.com/bytom/sm3/errors"
)

// ErrBadLength is returned by KDF for a key length it cannot produce.
var ErrBadLength = errors.New("invalid key length")

// KDF derives klen bytes from the shared secret z using the SM3 counter
// construction of GB/T 32918.4: SM3(z || ct) for ct = 1, 2, ... encoded as
// a 32-bit big-endian counter, truncated to klen bytes.
func KDF(z []byte, klen int) ([]byte, error) {
	if klen <= 0 || uint64(klen) > uint64(math.MaxUint32)*sm3.Size {
		return nil, errors.WithDetailf(ErrBadLength, "klen %d", klen)
	}

	var (
		out = make([]byte, 0, klen+sm3.Size)
		ct  [4]byte
		d   = sm3.NewDigest()
	)
	for i := uint32(1); len(out) < klen; i++ {
		binary.BigEndian.PutUint32(ct[:], i)
		d.Reset()
		d.Write(z)
		d.Write(ct[:])
		sum := d.Finalize()
		out = append(out, sum[:]...)
	}
	return out[:klen], nil
}

package crypto

import (
	"hash"
	"io"

	"github.com/bytom/sm3/common"
	"github.com/bytom/sm3/crypto/sm3"
	"github.com/bytom/sm3/errors"
)

// DefaultReadBuffer is the chunk size Sm3Reader uses when none is given.
const DefaultReadBuffer = 32 * 1024

func Sm3(data ...[]byte) []byte {
	return writeAll(sm3.New(), data).Sum(nil)
}

func Sm3Hash(data ...[]byte) (h common.Hash) {
	writeAll(sm3.New(), data).Sum(h[:0])
	return h
}

// writeAll feeds every slice to d. Like sm3.Sum256 it panics when d refuses
// input, which for SM3 means more than 2^61-1 bytes in total.
func writeAll(d hash.Hash, data [][]byte) hash.Hash {
	for _, b := range data {
		if _, err := d.Write(b); err != nil {
			panic(errors.Wrap(err, "sm3 write"))
		}
	}
	return d
}

// Sm3Reader hashes r until EOF, reading bufSize bytes at a time. Memory use
// does not depend on the length of the stream.
func Sm3Reader(r io.Reader, bufSize int) (h common.Hash, err error) {
	if bufSize <= 0 {
		bufSize = DefaultReadBuffer
	}

	d := sm3.NewDigest()
	if _, err = io.CopyBuffer(d, onlyReader{r}, make([]byte, bufSize)); err != nil {
		return h, errors.Wrap(err, "read input")
	}
	return common.Hash(d.Finalize()), nil
}

// onlyReader hides WriterTo and friends so io.CopyBuffer honors the buffer.
type onlyReader struct {
	io.Reader
}

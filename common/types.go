package common

import (
	"encoding/hex"
	"encoding/json"

	"github.com/bytom/sm3/errors"
)

const (
	// HashLength is the size, in bytes, of an SM3 digest.
	HashLength = 32
)

// ErrHashLength is returned when hex input does not decode to exactly
// HashLength bytes.
var ErrHashLength = errors.New("common: hash must be exactly 32 bytes")

type (
	Hash [HashLength]byte
)

// HexToHash parses a 64 digit hex string, with or without a 0x prefix.
// Upper and lower case digits are both accepted.
func HexToHash(s string) (Hash, error) {
	var h Hash
	if has0xPrefix(s) {
		s = s[2:]
	}
	if len(s) != HashLength*2 {
		return h, errors.WithDetailf(ErrHashLength, "got %d hex digits", len(s))
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return h, errors.Wrap(err, "decode hash")
	}
	return h, nil
}

func (h Hash) Bytes() []byte { return h[:] }

// String renders the hash as lowercase hex without prefix.
func (h Hash) String() string { return Bytes2Hex(h[:]) }

// MarshalText encodes the hash as lowercase hex.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText parses a hash in its hex form.
func (h *Hash) UnmarshalText(input []byte) error {
	parsed, err := HexToHash(string(input))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// UnmarshalJSON parses a hash in its hex from to a hash.
func (h *Hash) UnmarshalJSON(input []byte) error {
	var s string
	if err := json.Unmarshal(input, &s); err != nil {
		return errors.Wrap(err, "unmarshal hash")
	}
	return h.UnmarshalText([]byte(s))
}

// Serialize given hash to JSON
func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// Equal reports whether h and other hold the same digest.
func (h Hash) Equal(other Hash) bool { return h == other }

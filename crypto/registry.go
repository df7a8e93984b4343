package crypto

import (
	"crypto/sha256"
	"hash"
	"sort"

	"golang.org/x/crypto/sha3"

	"github.com/bytom/sm3/crypto/sm3"
	"github.com/bytom/sm3/errors"
)

// ErrUnknownHash is returned by NewHash for unregistered algorithm names.
var ErrUnknownHash = errors.New("unknown hash algorithm")

var hashFactories = map[string]func() hash.Hash{
	"sm3":      sm3.New,
	"sha3-256": sha3.New256,
	"sha256":   sha256.New,
}

// NewHash returns a fresh hash.Hash for the named algorithm.
func NewHash(name string) (hash.Hash, error) {
	factory, ok := hashFactories[name]
	if !ok {
		return nil, errors.WithDetailf(ErrUnknownHash, "%q", name)
	}
	return factory(), nil
}

// HashNames lists the registered algorithm names in sorted order.
func HashNames() []string {
	names := make([]string, 0, len(hashFactories))
	for name := range hashFactories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

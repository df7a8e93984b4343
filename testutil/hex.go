package testutil

import (
	"encoding/hex"

	"github.com/bytom/sm3/common"
)

func MustDecodeHash(s string) common.Hash {
	h, err := common.HexToHash(s)
	if err != nil {
		panic(err)
	}
	return h
}

func MustDecodeHexString(s string) []byte {
	bytes, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return bytes
}

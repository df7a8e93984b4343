package common

import "encoding/hex"

func Bytes2Hex(d []byte) string {
	return hex.EncodeToString(d)
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

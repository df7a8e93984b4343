package sm3

import "encoding/hex"

// Sum256 returns the SM3 digest of the data.
func Sum256(data []byte) (digest [Size]byte) {
	var d Digest
	d.Reset()
	if _, err := d.Write(data); err != nil {
		panic(err)
	}
	return d.checkSum()
}

// Sum calculate data into hash
func Sum(hash, data []byte) {
	tmp := Sum256(data)
	copy(hash, tmp[:])
}

// SumHex returns the SM3 digest of the UTF-8 bytes of text as 64 lowercase
// hex digits.
func SumHex(text string) string {
	digest := Sum256([]byte(text))
	return hex.EncodeToString(digest[:])
}

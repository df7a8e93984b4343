package sm3

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bytom/sm3/errors"
)

func TestMarshalResume(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789"), 30)
	want := Sum256(data)

	for _, split := range []int{0, 1, 63, 64, 65, 150, len(data)} {
		d := NewDigest()
		d.Write(data[:split])
		state, err := d.MarshalBinary()
		require.NoError(t, err)
		assert.Len(t, state, marshaledSize)

		resumed := new(Digest)
		require.NoError(t, resumed.UnmarshalBinary(state))
		resumed.Write(data[split:])
		assert.Equal(t, want, resumed.Finalize(), "split at %d", split)
	}
}

func TestMarshalFinalized(t *testing.T) {
	d := NewDigest()
	d.Finalize()
	_, err := d.MarshalBinary()
	assert.Equal(t, ErrFinalized, err)
}

func TestUnmarshalInvalid(t *testing.T) {
	d := NewDigest()
	d.Write([]byte("abc"))
	good, err := d.MarshalBinary()
	require.NoError(t, err)

	badMagic := append([]byte(nil), good...)
	badMagic[0] = 'x'

	badLen := append([]byte(nil), good...)
	for i := range badLen[len(badLen)-8:] {
		badLen[len(badLen)-8+i] = 0xff
	}

	cases := [][]byte{nil, []byte("sm3"), badMagic, good[:len(good)-1], append(good, 0), badLen}
	for i, c := range cases {
		err := new(Digest).UnmarshalBinary(c)
		assert.Equal(t, ErrInvalidState, errors.Root(err), "case %d", i)
	}
}

func TestUnmarshalClearsFinalized(t *testing.T) {
	fresh, err := NewDigest().MarshalBinary()
	require.NoError(t, err)

	d := NewDigest()
	d.Finalize()
	require.NoError(t, d.UnmarshalBinary(fresh))
	d.Write([]byte("abc"))
	assert.Equal(t, Sum256([]byte("abc")), d.Finalize())
}

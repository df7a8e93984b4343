package version

import (
	"fmt"
	"math/rand"
	"testing"

	gover "github.com/hashicorp/go-version"
	"github.com/stretchr/testify/assert"
)

func TestRevisionLen(t *testing.T) {
	if revisionLen > 16 {
		t.Error("revisionLen too long")
	}
}

func TestCompare(t *testing.T) {
	i := rand.Uint64()
	rev := fmt.Sprintf("%016x", i)[:revisionLen]

	v1, err := gover.NewVersion(Version)
	if err != nil {
		t.Error("Version 1 format error.")
	}
	v2, err := gover.NewVersion(Version + "+" + rev)
	if err != nil {
		t.Error("Version 2 format error.")
	}
	if v1.GreaterThan(v2) || v2.GreaterThan(v1) {
		t.Error("Version comparison error.")
	}
}

func TestWithRevision(t *testing.T) {
	cases := []struct {
		commit string
		want   string
	}{
		{commit: "", want: "1.0.0"},
		{commit: "abc", want: "1.0.0+abc"},
		{commit: "0123456789ab", want: "1.0.0+0123456789ab"},
		{commit: "0123456789abcdef0123", want: "1.0.0+0123456789ab"},
	}

	for _, c := range cases {
		var got string
		assert.NotPanics(t, func() { got = withRevision("1.0.0", c.commit) }, c.commit)
		assert.Equal(t, c.want, got, c.commit)

		_, err := gover.NewVersion(got)
		assert.NoError(t, err, got)
	}
}

func TestCompatibleWith(t *testing.T) {
	cases := []struct {
		other   string
		want    bool
		wantErr bool
	}{
		{other: "", want: true},
		{other: Version, want: true},
		{other: "1.9.3", want: true},
		{other: "2.0.0", want: false},
		{other: "0.1.0", want: false},
		{other: "not-a-version", wantErr: true},
	}

	for _, c := range cases {
		got, err := CompatibleWith(c.other)
		if c.wantErr {
			assert.Error(t, err, c.other)
			continue
		}
		assert.NoError(t, err, c.other)
		assert.Equal(t, c.want, got, c.other)
	}
}

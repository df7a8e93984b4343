package version

import (
	gover "github.com/hashicorp/go-version"

	"github.com/bytom/sm3/errors"
)

const revisionLen = 12

var (
	// The full version string
	Version = "1.0.0"
	// GitCommit is set with --ldflags "-X github.com/bytom/sm3/version.GitCommit=$(git rev-parse HEAD)"
	GitCommit string
)

func init() {
	Version = withRevision(Version, GitCommit)
}

// withRevision appends the first revisionLen characters of commit to v as
// build metadata. Shorter commits are used whole.
func withRevision(v, commit string) string {
	if commit == "" {
		return v
	}
	return v + "+" + commit[:min(len(commit), revisionLen)]
}

// CompatibleWith reports whether state written by version other, such as a
// config file, can be read by this build. Versions sharing a major number
// are compatible; an empty string is treated as compatible.
func CompatibleWith(other string) (bool, error) {
	if other == "" {
		return true, nil
	}

	localVersion, err := gover.NewVersion(Version)
	if err != nil {
		return false, errors.Wrap(err, "parse local version")
	}
	otherVersion, err := gover.NewVersion(other)
	if err != nil {
		return false, errors.Wrapf(err, "parse version %q", other)
	}
	return localVersion.Segments()[0] == otherVersion.Segments()[0], nil
}

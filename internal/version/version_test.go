package version

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersion_DefaultValues(t *testing.T) {
	require.NotEmpty(t, Version)
	require.NotContains(t, Version, "\x1b[", "version must stay plain for JSON output")
}

func TestVersion_CanBeOverridden(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = origVersion, origCommit })

	// как при сборке с -ldflags
	Version = "1.2.3"
	GitCommit = "abc123def456"
	require.Equal(t, "1.2.3", Version)
	require.Equal(t, "abc123def456", GitCommit)
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestColored(t *testing.T) {
	require.Equal(t, "1.2.3-rc.1", Colored("1.2.3-rc.1", false))
	require.Equal(t, "nightly", Colored("nightly", true))

	got := Colored("1.2.3-rc.1+build.5", true)
	require.Contains(t, got, "\x1b[")
	require.True(t, strings.HasSuffix(got, "-rc.1+build.5"))

	plain := ansiEscape.ReplaceAllString(got, "")
	require.Equal(t, "1.2.3-rc.1+build.5", plain)
}

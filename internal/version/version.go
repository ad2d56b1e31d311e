// Package version holds build fingerprints of the tagcheck CLI.
// The variables can be overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored paints the major, minor and patch parts of v in distinct colors.
// Pre-release and build suffixes stay plain. Strings that are not
// MAJOR.MINOR.PATCH are returned unchanged.
func Colored(v string, enabled bool) string {
	if !enabled {
		return v
	}
	core, suffix := v, ""
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		core, suffix = v[:i], v[i:]
	}
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return v
	}
	return sprint(majorColor, parts[0]) + "." + sprint(minorColor, parts[1]) + "." + sprint(patchColor, parts[2]) + suffix
}

// sprint colors s regardless of the terminal.
func sprint(c *color.Color, s string) string {
	c.EnableColor()
	return c.Sprint(s)
}

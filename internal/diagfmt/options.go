package diagfmt

import (
	"tagcheck/internal/diag"
	"tagcheck/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps short or relative paths and shortens long absolute ones.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// Document is everything a renderer needs about one checked input.
type Document struct {
	Path       string
	Loaded     bool
	WellFormed bool
	Report     []string  // fixed-format report lines; empty when not loaded
	Bag        *diag.Bag // findings plus I/O and timing entries
}

// PlainOpts configures the fixed-format report.
type PlainOpts struct {
	// Headers prefixes every document with "<path>:". Needed once more than one
	// document is printed.
	Headers  bool
	PathMode PathMode
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int8 // lines of source shown above the primary line
	PathMode  PathMode
	Width     uint8 // максимальная ширина строки, 0 - не ограничено
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
	InvocationArgs []string
}

func (m PathMode) name() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// ParsePathMode accepts auto|absolute|relative|basename.
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "", "auto":
		return PathModeAuto, true
	case "absolute":
		return PathModeAbsolute, true
	case "relative":
		return PathModeRelative, true
	case "basename":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

// filePath formats the path of a file registered in fs.
func filePath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	return fs.Get(id).FormatPath(mode.name(), fs.BaseDir())
}

// docPath formats a document path that may not be in any FileSet.
func docPath(fs *source.FileSet, path string, mode PathMode) string {
	if fs != nil {
		if id, ok := fs.GetLatest(path); ok {
			return filePath(fs, id, mode)
		}
	}
	f := source.File{Path: path}
	base := ""
	if fs != nil {
		base = fs.BaseDir()
	}
	return f.FormatPath(mode.name(), base)
}

// located reports whether d can be resolved against fs.
func located(fs *source.FileSet, span source.Span, code diag.Code) bool {
	return fs != nil && code.Located() && int(span.File) < fs.Len()
}

func items(b *diag.Bag) []diag.Diagnostic {
	if b == nil {
		return nil
	}
	return b.Items()
}

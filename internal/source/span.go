package source

import (
	"fmt"
)

// Span is a half-open byte range inside one file. Tag positions and
// diagnostics both point into documents through it.
type Span struct {
	File  FileID
	Start uint32 // в байтах включительно
	End   uint32 // в байтах не включительно
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Text returns the bytes of f covered by s, clamped to the content.
func (s Span) Text(f *File) string {
	n := uint32(len(f.Content))
	start, end := min(s.Start, n), min(s.End, n)
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

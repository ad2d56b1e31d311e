package matcher

import (
	"fmt"

	"fortio.org/safecast"

	"tagcheck/internal/diag"
	"tagcheck/internal/source"
)

// Code maps a finding kind to its diagnostic code.
func (k Kind) Code() diag.Code {
	switch k {
	case InteriorMismatch:
		return diag.TagInteriorMismatch
	case StrayClosing:
		return diag.TagStrayClosing
	case UnclosedAtEOF:
		return diag.TagUnclosedAtEOF
	default:
		return diag.UnknownCode
	}
}

// Span converts a position into a byte span of file. Positions past the end
// of the file are clamped.
func (p Pos) Span(file *source.File) source.Span {
	if file == nil || p.IsZero() {
		return source.Span{}
	}
	line, err := safecast.Conv[uint32](p.Line)
	if err != nil {
		return source.Span{File: file.ID}
	}
	size, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	col, err := safecast.Conv[uint32](max(p.Col-1, 0))
	if err != nil {
		col = 0
	}
	width, err := safecast.Conv[uint32](p.Len)
	if err != nil {
		width = 0
	}
	start := min(file.LineStart(line)+col, size)
	end := min(start+width, size)
	return source.Span{File: file.ID, Start: start, End: end}
}

// Report emits every finding of res as an error diagnostic against file.
// Messages keep the fixed report format; notes point at the opening tag.
func Report(r diag.Reporter, file *source.File, res Result) {
	for _, f := range res.Findings {
		b := diag.ReportError(r, f.Kind.Code(), f.At.Span(file), f.Message())
		switch f.Kind {
		case InteriorMismatch:
			b.WithNote(f.Open.Span(file), fmt.Sprintf("<%s> opened here, closed by an outer tag", f.Name))
		case UnclosedAtEOF:
			b.WithNote(f.Open.Span(file), fmt.Sprintf("<%s> is never closed", f.Name))
		}
		b.Emit()
	}
}

package diag

import (
	"tagcheck/internal/source"
)

// Note points at a secondary location, or carries a payload when the
// diagnostic has no location.
type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span // zero for I/O and timing entries
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// NewDetached builds a diagnostic about a document as a whole. Renderers
// print it without a position.
func NewDetached(sev Severity, code Code, msg string) Diagnostic {
	return New(sev, code, source.Span{}, msg)
}

// Located reports whether Primary refers to real text.
func (d Diagnostic) Located() bool {
	return d.Code.Located()
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

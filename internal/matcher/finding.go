package matcher

import "fmt"

// WellFormedMessage is the single report line of a document without findings.
const WellFormedMessage = "XML document is constructed correctly."

// Kind classifies a structural fault.
type Kind uint8

const (
	// InteriorMismatch: an open tag popped while unwinding to a deeper match.
	InteriorMismatch Kind = iota + 1
	// StrayClosing: a closing tag with no open counterpart at any depth.
	StrayClosing
	// UnclosedAtEOF: an open tag still on the stack after the last line.
	UnclosedAtEOF
)

func (k Kind) String() string {
	switch k {
	case InteriorMismatch:
		return "interior-mismatch"
	case StrayClosing:
		return "stray-closing"
	case UnclosedAtEOF:
		return "unclosed-at-eof"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Pos locates a tag inside a document. Line and Col are 1-based, Col and Len count bytes.
type Pos struct {
	Line int
	Col  int
	Len  int
}

// IsZero reports whether the position is unset.
func (p Pos) IsZero() bool { return p == Pos{} }

// Finding is one structural fault. Values are comparable so they can sit in a Queue.
type Finding struct {
	Kind Kind
	Line int    // line reported in the message; 0 for UnclosedAtEOF
	Name string // tag name without brackets
	At   Pos    // tag that triggered the finding
	Open Pos    // where the offending open tag was pushed; zero for StrayClosing
}

// Message renders the finding in the fixed report format.
func (f Finding) Message() string {
	switch f.Kind {
	case StrayClosing:
		return fmt.Sprintf("Error at line %d </%s> is not constructed correctly.", f.Line, f.Name)
	case UnclosedAtEOF:
		return fmt.Sprintf("Error at EOF: <%s> is not constructed correctly.", f.Name)
	default:
		return fmt.Sprintf("Error at line %d <%s> is not constructed correctly.", f.Line, f.Name)
	}
}

// Result is the outcome of one document.
type Result struct {
	// Findings: interior and EOF findings in discovery order, then stray closings in discovery order.
	Findings []Finding
}

// WellFormed reports whether no findings were produced.
func (r Result) WellFormed() bool { return len(r.Findings) == 0 }

// Messages returns the report lines: either WellFormedMessage alone or one line per finding.
func (r Result) Messages() []string {
	if r.WellFormed() {
		return []string{WellFormedMessage}
	}
	out := make([]string, 0, len(r.Findings))
	for _, f := range r.Findings {
		out = append(out, f.Message())
	}
	return out
}

// Count returns how many findings are of kind k.
func (r Result) Count(k Kind) int {
	n := 0
	for _, f := range r.Findings {
		if f.Kind == k {
			n++
		}
	}
	return n
}

package tagscan

// Token is one tag occurrence inside a line.
type Token struct {
	Closing     bool   // "</name>"
	Name        string // never empty; no whitespace, '/' or '>'
	SelfClosing bool   // "<name/>"
	Start       int    // byte offset of '<' within the line
	End         int    // byte offset just past '>'
}

// Kind returns a short label for dumps.
func (t Token) Kind() string {
	switch {
	case t.SelfClosing && t.Closing:
		return "close-self"
	case t.SelfClosing:
		return "self-closing"
	case t.Closing:
		return "close"
	default:
		return "open"
	}
}

// String reproduces the tag as it appeared in the source.
func (t Token) String() string {
	s := "<"
	if t.Closing {
		s += "/"
	}
	s += t.Name
	if t.SelfClosing {
		s += "/"
	}
	return s + ">"
}

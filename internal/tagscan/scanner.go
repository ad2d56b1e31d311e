package tagscan

import (
	"iter"
	"strings"
)

// Scanner finds tags in a single line, left to right, without overlap.
type Scanner struct {
	cur cursor
}

// New returns a scanner positioned at the start of line.
func New(line string) *Scanner {
	return &Scanner{cur: cursor{text: line}}
}

// Next returns the next tag in the line. ok is false once the line is exhausted.
func (s *Scanner) Next() (tok Token, ok bool) {
	for {
		idx := strings.IndexByte(s.cur.text[s.cur.off:], '<')
		if idx < 0 {
			s.cur.off = len(s.cur.text)
			return Token{}, false
		}
		start := s.cur.off + idx
		if tok, ok := s.scanAt(start); ok {
			s.cur.off = tok.End
			return tok, true
		}
		// не тег: пробуем со следующего байта
		s.cur.off = start + 1
	}
}

// scanAt tries to read `<` `/`? name `/`? `>` starting at off.
func (s *Scanner) scanAt(off int) (Token, bool) {
	c := cursor{text: s.cur.text, off: off}
	if !c.eat('<') {
		return Token{}, false
	}
	tok := Token{Start: off}
	tok.Closing = c.eat('/')
	nameStart := c.off
	if c.eatWhile(isNameByte) == 0 {
		return Token{}, false
	}
	tok.Name = c.text[nameStart:c.off]
	tok.SelfClosing = c.eat('/')
	if !c.eat('>') {
		return Token{}, false
	}
	tok.End = c.off
	return tok, true
}

// Tokens yields every tag in line.
func Tokens(line string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		s := New(line)
		for {
			tok, ok := s.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// IsDeclarationLine reports whether the whole line, trimmed, is a
// processing instruction such as `<?xml version="1.0"?>`.
// Every tag on such a line is ignored.
func IsDeclarationLine(line string) bool {
	trimmed := strings.TrimFunc(line, func(r rune) bool { return r <= ' ' })
	return strings.HasPrefix(trimmed, "<?") && strings.HasSuffix(trimmed, "?>")
}

// Ignored reports whether tok takes no part in nesting on the given line.
func Ignored(tok Token, line string) bool {
	return tok.SelfClosing || IsDeclarationLine(line)
}

// Line groups the tags found on one line.
type Line struct {
	Num         int
	Declaration bool // every token on the line is ignored by the matcher
	Tokens      []Token
}

// ScanLines collects the tags of every line that has at least one.
func ScanLines(lines iter.Seq2[int, string]) []Line {
	var out []Line
	for num, text := range lines {
		var toks []Token
		for tok := range Tokens(text) {
			toks = append(toks, tok)
		}
		if len(toks) == 0 {
			continue
		}
		out = append(out, Line{Num: num, Declaration: IsDeclarationLine(text), Tokens: toks})
	}
	return out
}

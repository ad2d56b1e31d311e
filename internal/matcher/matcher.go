// Package matcher checks tag nesting line by line.
//
// A Matcher keeps open tags on a Stack and collects faults into two Queues:
// one for interior mismatches and tags left open at end of input, one for
// closing tags that match nothing. The final report lists the first queue
// before the second; each queue keeps discovery order.
package matcher

import (
	"fmt"
	"iter"

	"tagcheck/internal/collections"
	"tagcheck/internal/tagscan"
)

type openTag struct {
	name string
	pos  Pos
}

// Matcher validates one document. It is not safe for concurrent use;
// create one per document.
type Matcher struct {
	open     *collections.Stack[openTag]
	interior *collections.Queue[Finding]
	stray    *collections.Queue[Finding]
	lines    int
}

// New returns a matcher with empty state.
func New() *Matcher {
	return &Matcher{
		open:     collections.NewStack[openTag](),
		interior: collections.NewQueue[Finding](),
		stray:    collections.NewQueue[Finding](),
	}
}

// Depth returns the number of tags currently open.
func (m *Matcher) Depth() int { return m.open.Len() }

// Lines returns how many lines were fed since the last Finish.
func (m *Matcher) Lines() int { return m.lines }

// Line feeds one line. num is the 1-based line number used in messages.
func (m *Matcher) Line(num int, text string) error {
	m.lines++
	if tagscan.IsDeclarationLine(text) {
		return nil
	}
	for tok := range tagscan.Tokens(text) {
		if tok.SelfClosing {
			continue
		}
		pos := Pos{Line: num, Col: tok.Start + 1, Len: tok.End - tok.Start}
		var err error
		if tok.Closing {
			err = m.closeTag(tok.Name, pos)
		} else {
			err = m.open.Push(openTag{name: tok.Name, pos: pos})
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", num, err)
		}
	}
	return nil
}

func (m *Matcher) closeTag(name string, at Pos) error {
	if top, err := m.open.Peek(); err == nil && top.name == name {
		_, err = m.open.Pop()
		return err
	}

	depth := m.open.SearchFunc(func(t openTag) bool { return t.name == name })
	if depth <= 0 {
		// открывающего тега нет ни на какой глубине, стек не трогаем
		return m.stray.Enqueue(Finding{Kind: StrayClosing, Line: at.Line, Name: name, At: at})
	}

	for {
		popped, err := m.open.Pop()
		if err != nil {
			return err
		}
		if popped.name == name {
			return nil
		}
		err = m.interior.Enqueue(Finding{
			Kind: InteriorMismatch,
			Line: at.Line,
			Name: popped.name,
			At:   at,
			Open: popped.pos,
		})
		if err != nil {
			return err
		}
	}
}

// Finish drains the open-tag stack into EOF findings and returns the ordered
// result. The matcher is empty afterwards.
func (m *Matcher) Finish() (Result, error) {
	for !m.open.IsEmpty() {
		t, err := m.open.Pop()
		if err != nil {
			return Result{}, err
		}
		err = m.interior.Enqueue(Finding{Kind: UnclosedAtEOF, Name: t.name, At: t.pos, Open: t.pos})
		if err != nil {
			return Result{}, err
		}
	}

	findings := make([]Finding, 0, m.interior.Len()+m.stray.Len())
	for f := range m.interior.Drain() {
		findings = append(findings, f)
	}
	for f := range m.stray.Drain() {
		findings = append(findings, f)
	}
	m.lines = 0
	return Result{Findings: findings}, nil
}

// Run feeds every line of lines and finishes the document.
func (m *Matcher) Run(lines iter.Seq2[int, string]) (Result, error) {
	for num, text := range lines {
		if err := m.Line(num, text); err != nil {
			return Result{}, err
		}
	}
	return m.Finish()
}

// Check validates lines with a fresh Matcher.
func Check(lines iter.Seq2[int, string]) (Result, error) {
	return New().Run(lines)
}

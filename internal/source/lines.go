package source

import (
	"bufio"
	"io"
	"iter"
)

// Lines yields (line number, text) pairs without line terminators, numbering from 1.
// A trailing newline does not produce an extra empty line.
func (f *File) Lines() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		start := 0
		for i, off := range f.LineIdx {
			if !yield(i+1, string(f.Content[start:off])) {
				return
			}
			start = int(off) + 1
		}
		if start < len(f.Content) {
			yield(len(f.LineIdx)+1, string(f.Content[start:]))
		}
	}
}

// SliceLines numbers an in-memory list of lines from 1.
func SliceLines(lines []string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for i, line := range lines {
			if !yield(i+1, line) {
				return
			}
		}
	}
}

// ReaderLines pulls lines from r on demand. A read error stops the sequence
// and is stored in *errp when errp is not nil.
func ReaderLines(r io.Reader, errp *error) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		n := 0
		for sc.Scan() {
			n++
			line := sc.Text()
			if l := len(line); l > 0 && line[l-1] == '\r' {
				line = line[:l-1]
			}
			if !yield(n, line) {
				return
			}
		}
		if errp != nil {
			*errp = sc.Err()
		}
	}
}

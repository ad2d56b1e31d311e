package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tagcheck/internal/diag"
	"tagcheck/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info *color.Color
	path, gutter    *color.Color
	caret, ok, note *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan),
		path:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		ok:     mk(color.FgGreen),
		note:   mk(color.FgCyan, color.Bold),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатает
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span и заметки.
// Порядок диагностик совпадает с порядком в Bag.
func Pretty(w io.Writer, docs []Document, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, doc := range docs {
		path := docPath(fs, doc.Path, opts.PathMode)
		if doc.Loaded && doc.WellFormed {
			fmt.Fprintf(w, "%s: %s\n", pal.path.Sprint(path), pal.ok.Sprint(doc.firstReportLine()))
		}
		for _, d := range items(doc.Bag) {
			prettyDiagnostic(w, &d, path, fs, opts, pal)
		}
		if doc.Bag != nil && doc.Bag.Dropped() > 0 {
			fmt.Fprintf(w, "%s: ... %d more diagnostics not shown\n", pal.path.Sprint(path), doc.Bag.Dropped())
		}
	}
}

func (d Document) firstReportLine() string {
	if len(d.Report) == 0 {
		return ""
	}
	return d.Report[0]
}

func prettyDiagnostic(w io.Writer, d *diag.Diagnostic, path string, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := pal.severity(d.Severity).Sprint(d.Severity.String())
	msg := truncateWidth(d.Message, int(opts.Width))

	if !located(fs, d.Primary, d.Code) {
		fmt.Fprintf(w, "%s: %s %s: %s\n", pal.path.Sprint(path), sev, d.Code.ID(), msg)
		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("= note:"), n.Msg)
			}
		}
		return
	}

	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.path.Sprintf("%s:%d:%d", filePath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col),
		sev, d.Code.ID(), msg)

	first := start.Line
	if opts.Context > 0 {
		if back := uint32(opts.Context); back < first {
			first -= back
		} else {
			first = 1
		}
	}
	gutter := len(fmt.Sprint(start.Line))
	for ln := first; ln <= start.Line; ln++ {
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutter, ln), expandTabs(file.GetLine(ln)))
	}
	line := file.GetLine(start.Line)
	fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*s |", gutter, ""), pal.caret.Sprint(underline(line, start.Col, d.Primary.Len())))

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		if located(fs, n.Span, d.Code) {
			nstart, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "%s %s %s\n", pal.gutter.Sprintf("%*s =", gutter, ""), pal.note.Sprint("note:"),
				fmt.Sprintf("%d:%d: %s", nstart.Line, nstart.Col, n.Msg))
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", pal.gutter.Sprintf("%*s =", gutter, ""), pal.note.Sprint("note:"), n.Msg)
	}
}

// underline builds "^~~~" under the bytes [col-1, col-1+n) of line, aligned
// by display width so wide runes and tabs line up.
func underline(line string, col, n uint32) string {
	off := int(col) - 1
	off = min(max(off, 0), len(line))
	end := min(off+int(n), len(line))
	pad := runewidth.StringWidth(expandTabs(line[:off]))
	span := max(runewidth.StringWidth(expandTabs(line[off:end])), 1)
	return strings.Repeat(" ", pad) + "^" + strings.Repeat("~", span-1)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func truncateWidth(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

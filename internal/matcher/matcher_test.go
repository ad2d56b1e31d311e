package matcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tagcheck/internal/diag"
	"tagcheck/internal/source"
)

func run(t *testing.T, lines ...string) Result {
	t.Helper()
	res, err := Check(source.SliceLines(lines))
	require.NoError(t, err)
	return res
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "balanced",
			lines: []string{"<a>", "<b>text</b>", "</a>"},
			want:  []string{WellFormedMessage},
		},
		{
			name:  "interior mismatch",
			lines: []string{"<a>", "<b>", "</a>"},
			want:  []string{"Error at line 3 <b> is not constructed correctly."},
		},
		{
			name:  "stray closing",
			lines: []string{"</z>"},
			want:  []string{"Error at line 1 </z> is not constructed correctly."},
		},
		{
			name:  "unclosed at eof",
			lines: []string{"<a>", "<b>"},
			want: []string{
				"Error at EOF: <b> is not constructed correctly.",
				"Error at EOF: <a> is not constructed correctly.",
			},
		},
		{
			name:  "self closing and declaration",
			lines: []string{`<?xml version="1.0"?>`, "<a/>", "<c></c>"},
			want:  []string{WellFormedMessage},
		},
		{
			name:  "empty document",
			lines: nil,
			want:  []string{WellFormedMessage},
		},
		{
			name:  "declaration line hides every tag on it",
			lines: []string{"<?pi <a> ?>", "<b></b>"},
			want:  []string{WellFormedMessage},
		},
		{
			name:  "tag names are case sensitive",
			lines: []string{"<A>", "</a>", "</A>"},
			want:  []string{"Error at line 2 </a> is not constructed correctly."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, run(t, tt.lines...).Messages())
		})
	}
}

func TestInteriorUnwindPopsEverythingAboveMatch(t *testing.T) {
	m := New()
	require.NoError(t, m.Line(1, "<root><a><b><c>"))
	require.Equal(t, 4, m.Depth())
	require.NoError(t, m.Line(2, "</a>"))
	require.Equal(t, 1, m.Depth())

	res, err := m.Finish()
	require.NoError(t, err)
	require.Equal(t, []string{
		"Error at line 2 <c> is not constructed correctly.",
		"Error at line 2 <b> is not constructed correctly.",
		"Error at EOF: <root> is not constructed correctly.",
	}, res.Messages())
	require.Equal(t, 0, m.Depth())
}

func TestStrayLeavesStackUntouched(t *testing.T) {
	m := New()
	require.NoError(t, m.Line(1, "<a><b>"))
	require.NoError(t, m.Line(2, "</x>"))
	require.Equal(t, 2, m.Depth())
	require.NoError(t, m.Line(3, "</b></a>"))

	res, err := m.Finish()
	require.NoError(t, err)
	require.Equal(t, []string{"Error at line 2 </x> is not constructed correctly."}, res.Messages())
}

func TestStrayAlwaysAfterInterior(t *testing.T) {
	// stray на строке 1 обнаружен раньше, но в отчёте идёт последним
	res := run(t, "</early>", "<a><b>", "</a>", "</late>", "<open>")
	require.Equal(t, []string{
		"Error at line 3 <b> is not constructed correctly.",
		"Error at EOF: <open> is not constructed correctly.",
		"Error at line 1 </early> is not constructed correctly.",
		"Error at line 4 </late> is not constructed correctly.",
	}, res.Messages())
	require.Equal(t, 1, res.Count(InteriorMismatch))
	require.Equal(t, 1, res.Count(UnclosedAtEOF))
	require.Equal(t, 2, res.Count(StrayClosing))
}

func TestDuplicateNamesUnwindToNearest(t *testing.T) {
	res := run(t, "<a>", "<a>", "<b>", "</a>", "</a>")
	require.Equal(t, []string{"Error at line 4 <b> is not constructed correctly."}, res.Messages())
}

func TestFindingPositions(t *testing.T) {
	res := run(t, "<a>", "  <b>", "x </a>", "  </q>")
	require.Len(t, res.Findings, 2)

	interior := res.Findings[0]
	require.Equal(t, InteriorMismatch, interior.Kind)
	require.Equal(t, Pos{Line: 3, Col: 3, Len: 4}, interior.At)
	require.Equal(t, Pos{Line: 2, Col: 3, Len: 3}, interior.Open)

	stray := res.Findings[1]
	require.Equal(t, StrayClosing, stray.Kind)
	require.Equal(t, Pos{Line: 4, Col: 3, Len: 4}, stray.At)
	require.True(t, stray.Open.IsZero())
}

func TestFinishResetsMatcher(t *testing.T) {
	m := New()
	res, err := m.Run(source.SliceLines([]string{"<a>"}))
	require.NoError(t, err)
	require.False(t, res.WellFormed())

	res, err = m.Run(source.SliceLines([]string{"<b></b>"}))
	require.NoError(t, err)
	require.True(t, res.WellFormed())
}

func TestRunOverNormalizedFile(t *testing.T) {
	content, flags, err := source.Normalize([]byte("\xef\xbb\xbf<a>\r\n</a>\r\n"))
	require.NoError(t, err)
	require.NotZero(t, flags&source.FileNormalizedCRLF)

	fs := source.NewFileSet()
	id := fs.Add("doc.xml", content, flags)
	res, err := New().Run(fs.Get(id).Lines())
	require.NoError(t, err)
	require.True(t, res.WellFormed())
}

func TestReportToBag(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("doc.xml", []byte("<a>\n<b>\n</a>\n</z>\n<c>\n"))
	file := fs.Get(id)

	res, err := Check(file.Lines())
	require.NoError(t, err)

	bag := diag.NewBag(0)
	Report(diag.BagReporter{Bag: bag}, file, res)
	items := bag.Items()
	require.Len(t, items, 3)

	require.Equal(t, diag.TagInteriorMismatch, items[0].Code)
	require.Equal(t, "Error at line 3 <b> is not constructed correctly.", items[0].Message)
	require.Len(t, items[0].Notes, 1)
	start, _ := fs.Resolve(items[0].Notes[0].Span)
	require.Equal(t, source.LineCol{Line: 2, Col: 1}, start)

	require.Equal(t, diag.TagUnclosedAtEOF, items[1].Code)
	start, _ = fs.Resolve(items[1].Primary)
	require.Equal(t, source.LineCol{Line: 5, Col: 1}, start)

	require.Equal(t, diag.TagStrayClosing, items[2].Code)
	require.Empty(t, items[2].Notes)
	require.Equal(t, "</z>", string(file.Content[items[2].Primary.Start:items[2].Primary.End]))
	require.True(t, bag.HasErrors())
}

func TestKindCodes(t *testing.T) {
	require.Equal(t, "TAG1001", InteriorMismatch.Code().ID())
	require.Equal(t, "TAG1002", StrayClosing.Code().ID())
	require.Equal(t, "TAG1003", UnclosedAtEOF.Code().ID())
	require.Equal(t, "stray-closing", StrayClosing.String())
}

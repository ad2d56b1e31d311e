package diag

import (
	"testing"

	"tagcheck/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	doc := fs.Add("/workspace/testdata/sample.xml", []byte("<a>\n<b>\n</a>\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     TagInteriorMismatch,
			Message:  "Error at line 3 <b> is not constructed correctly.",
			Primary:  source.Span{File: doc, Start: 8, End: 12},
			Notes: []Note{
				{Span: source.Span{File: doc, Start: 4, End: 7}, Msg: "opened\nhere"},
			},
		},
		{
			Severity: SevError,
			Code:     TagStrayClosing,
			Message:  "stray",
			Primary:  source.Span{File: doc, Start: 0, End: 3},
		},
	}

	// emission order is kept even though the second diagnostic comes first in the file
	expected := "error TAG1001 testdata/sample.xml:3:1 Error at line 3 <b> is not constructed correctly.\n" +
		"note TAG1001 testdata/sample.xml:2:1 opened here\n" +
		"error TAG1002 testdata/sample.xml:1:1 stray"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagLimitAndMerge(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		b.Add(NewError(TagStrayClosing, source.Span{Start: uint32(i)}, "x"))
	}
	if b.Len() != 2 || b.Dropped() != 1 {
		t.Fatalf("len=%d dropped=%d", b.Len(), b.Dropped())
	}

	other := NewBag(5)
	other.Add(New(SevInfo, ObsTimings, source.Span{}, "timings"))
	b.Merge(other)
	if b.Len() != 3 || b.Cap() != 3 {
		t.Fatalf("after merge len=%d cap=%d", b.Len(), b.Cap())
	}
	if b.Items()[2].Code != ObsTimings {
		t.Errorf("merge must append in order")
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Error("expected errors to count as warnings too")
	}

	onlyInfo := b.Filter(func(d Diagnostic) bool { return d.Severity == SevInfo })
	if onlyInfo.Len() != 1 || onlyInfo.HasErrors() {
		t.Errorf("filter kept %d items", onlyInfo.Len())
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		TagInteriorMismatch: "TAG1001",
		TagUnclosedAtEOF:    "TAG1003",
		IOLoadFileError:     "IO4001",
		ObsTimings:          "OBS6001",
		Code(9999):          "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if TagStrayClosing.String() != "[TAG1002]: Closing tag without opening tag" {
		t.Errorf("unexpected String(): %s", TagStrayClosing.String())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	r := BagReporter{Bag: bag}
	b := ReportError(r, TagUnclosedAtEOF, source.Span{}, "open").WithNote(source.Span{}, "note")
	b.Emit()
	b.Emit()
	if bag.Len() != 1 || len(bag.Items()[0].Notes) != 1 {
		t.Fatalf("expected single diagnostic with note, got %+v", bag.Items())
	}
}

func TestFormatShortDiagnosticsWithoutLocation(t *testing.T) {
	fs := source.NewFileSet()
	fs.AddVirtual("other.xml", []byte("<a>\n"))

	diags := []Diagnostic{NewError(IOLoadFileError, source.Span{}, "failed to load file: open x.xml: no such file")}
	want := "error IO4001 failed to load file: open x.xml: no such file"
	if got := FormatShortDiagnostics(diags, fs, true); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if !TagStrayClosing.Located() || IOLoadFileError.Located() || ObsTimings.Located() {
		t.Fatal("unexpected Located result")
	}
}

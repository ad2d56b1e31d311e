package diagfmt

import (
	"encoding/json"
	"io"

	"tagcheck/internal/diag"
	"tagcheck/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string        `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Location *LocationJSON `json:"location,omitempty"`
	Notes    []NoteJSON    `json:"notes,omitempty"`
}

// DocumentJSON is the result for one input.
type DocumentJSON struct {
	File        string           `json:"file"`
	Status      string           `json:"status"` // ok | malformed | unreadable
	Report      []string         `json:"report,omitempty"`
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Dropped     int              `json:"dropped,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Documents []DocumentJSON `json:"documents"`
	Count     int            `json:"count"`
}

// Document statuses.
const (
	StatusOK         = "ok"
	StatusMalformed  = "malformed"
	StatusUnreadable = "unreadable"
)

func (d Document) status() string {
	switch {
	case !d.Loaded:
		return StatusUnreadable
	case d.WellFormed:
		return StatusOK
	default:
		return StatusMalformed
	}
}

// makeLocation создаёт LocationJSON из Span
func makeLocation(span source.Span, fs *source.FileSet, pathMode PathMode, includePositions bool) *LocationJSON {
	loc := &LocationJSON{
		File:      filePath(fs, span.File, pathMode),
		StartByte: span.Start,
		EndByte:   span.End,
	}

	// Добавляем позиции строк/колонок если требуется
	if includePositions {
		startPos, endPos := fs.Resolve(span)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
// opts.Max limits the total number of diagnostics across documents.
func BuildDiagnosticsOutput(docs []Document, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{Documents: make([]DocumentJSON, 0, len(docs))}
	budget := opts.Max

	for _, doc := range docs {
		dj := DocumentJSON{
			File:        docPath(fs, doc.Path, opts.PathMode),
			Status:      doc.status(),
			Report:      doc.Report,
			Diagnostics: []DiagnosticJSON{},
		}
		if doc.Bag != nil {
			dj.Dropped = doc.Bag.Dropped()
		}
		for _, d := range items(doc.Bag) {
			if opts.Max > 0 && budget <= 0 {
				dj.Dropped++
				continue
			}
			budget--

			diagJSON := DiagnosticJSON{
				Severity: d.Severity.String(),
				Code:     d.Code.ID(),
				Message:  d.Message,
			}
			if located(fs, d.Primary, d.Code) {
				diagJSON.Location = makeLocation(d.Primary, fs, opts.PathMode, opts.IncludePositions)
			}

			includeNotes := opts.IncludeNotes || d.Code == diag.ObsTimings
			if includeNotes && len(d.Notes) > 0 {
				diagJSON.Notes = make([]NoteJSON, len(d.Notes))
				for j, note := range d.Notes {
					diagJSON.Notes[j] = NoteJSON{Message: note.Msg}
					if located(fs, note.Span, d.Code) {
						diagJSON.Notes[j].Location = makeLocation(note.Span, fs, opts.PathMode, opts.IncludePositions)
					}
				}
			}
			dj.Diagnostics = append(dj.Diagnostics, diagJSON)
			out.Count++
		}
		out.Documents = append(out.Documents, dj)
	}
	return out
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, docs []Document, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	// отчётные строки содержат <tag>, экранирование их только портит
	encoder.SetEscapeHTML(false)
	return encoder.Encode(BuildDiagnosticsOutput(docs, fs, opts))
}

package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"tagcheck/internal/tagscan"
)

type TokenOutput struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Text    string `json:"text"`
	Ignored bool   `json:"ignored,omitempty"`
}

func tokenOutputs(lines []tagscan.Line) []TokenOutput {
	out := make([]TokenOutput, 0, len(lines))
	for _, ln := range lines {
		for _, tok := range ln.Tokens {
			out = append(out, TokenOutput{
				Line:    ln.Num,
				Col:     tok.Start + 1,
				Kind:    tok.Kind(),
				Name:    tok.Name,
				Text:    tok.String(),
				Ignored: ln.Declaration || tok.SelfClosing,
			})
		}
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, lines []tagscan.Line) error {
	for i, tok := range tokenOutputs(lines) {
		_, err := fmt.Fprintf(w, "%3d: %-13s %-20q at %d:%d", i+1, tok.Kind, tok.Text, tok.Line, tok.Col)
		if err == nil && tok.Ignored {
			_, err = fmt.Fprint(w, " (ignored)")
		}
		if err == nil {
			_, err = fmt.Fprintln(w)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, lines []tagscan.Line) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(tokenOutputs(lines))
}

package tagscan

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func scanAll(line string) []string {
	var out []string
	for tok := range Tokens(line) {
		out = append(out, tok.String())
	}
	return out
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"open", "<a>", []string{"<a>"}},
		{"open text close", "<b>text</b>", []string{"<b>", "</b>"}},
		{"self closing", "<br/>", []string{"<br/>"}},
		{"closing self closing", "</x/>", []string{"</x/>"}},
		{"attributes are not tags", `<a href="x">`, nil},
		{"space before close", "<a >", nil},
		{"empty name", "<>", nil},
		{"double slash", "<//a>", nil},
		{"lt is a name byte", "<<a>", []string{"<<a>"}},
		{"resume after failed candidate", "<a <b>", []string{"<b>"}},
		{"unterminated then tag", "< <a>", []string{"<a>"}},
		{"no brackets", "plain text", nil},
		{"unicode name", "<тег></тег>", []string{"<тег>", "</тег>"}},
		{"name stops at slash", "<a/b>", nil},
		{"declaration tokens", `<?xml version="1.0"?>`, nil},
		{"pi single word", "<?pi?>", []string{"<?pi?>"}},
		{"non overlapping", "<a><b></b></a>", []string{"<a>", "<b>", "</b>", "</a>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, scanAll(tt.line))
		})
	}
}

func TestTokenFields(t *testing.T) {
	toks := slices.Collect(Tokens("  </item> <x/>"))
	require.Len(t, toks, 2)

	require.True(t, toks[0].Closing)
	require.False(t, toks[0].SelfClosing)
	require.Equal(t, "item", toks[0].Name)
	require.Equal(t, 2, toks[0].Start)
	require.Equal(t, 9, toks[0].End)
	require.Equal(t, "close", toks[0].Kind())

	require.True(t, toks[1].SelfClosing)
	require.Equal(t, "self-closing", toks[1].Kind())
}

func TestScannerNextAfterEnd(t *testing.T) {
	s := New("<a>")
	_, ok := s.Next()
	require.True(t, ok)
	_, ok = s.Next()
	require.False(t, ok)
	_, ok = s.Next()
	require.False(t, ok)
}

func TestIsDeclarationLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{`<?xml version="1.0"?>`, true},
		{"  \t<?xml?>  ", true},
		{`<?xml version="1.0"?><a>`, false},
		{"<a><?pi?>", false},
		{"<a>", false},
		{"", false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, IsDeclarationLine(tt.line), tt.line)
	}
}

func TestIgnored(t *testing.T) {
	line := "<?xml?>"
	for tok := range Tokens(line) {
		require.True(t, Ignored(tok, line))
	}
	require.True(t, Ignored(Token{Name: "a", SelfClosing: true}, "<a/>"))
	require.False(t, Ignored(Token{Name: "a"}, "<a>"))
}

func TestScanLines(t *testing.T) {
	lines := func(yield func(int, string) bool) {
		for i, s := range []string{`<?xml a="1"?>`, "text", "<a><b/>", "<?pi?>"} {
			if !yield(i+1, s) {
				return
			}
		}
	}
	got := ScanLines(lines)
	require.Len(t, got, 2)
	require.Equal(t, 3, got[0].Num)
	require.False(t, got[0].Declaration)
	require.Len(t, got[0].Tokens, 2)
	require.Equal(t, 4, got[1].Num)
	require.True(t, got[1].Declaration)
}

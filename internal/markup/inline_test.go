// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/bookpress/pkg/types"
)

// englishQuotes is the glyph set most tests run with.
var englishQuotes = types.QuoteSet{
	OpenDouble: "“", CloseDouble: "”",
	OpenSingle: "‘", CloseSingle: "’",
}

func TestTransform(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "reserved characters are escaped",
			in:   `Fish & Chips for $3, 50% off #1`,
			want: `Fish \& Chips for \$3, 50\% off \#1`,
		},
		{
			name: "braces and backslash",
			in:   `a \ b {c}`,
			want: `a \textbackslash{} b \{c\}`,
		},
		{
			name: "tilde and caret",
			in:   `x~y^z`,
			want: `x\textasciitilde{}y\textasciicircum{}z`,
		},
		{
			name: "accented letters pass through",
			in:   "Hon log — förlåt, små grodorna",
			want: "Hon log — förlåt, små grodorna",
		},
		{
			name: "matched emphasis",
			in:   "a _b_ c",
			want: `a \emph{b} c`,
		},
		{
			name: "unmatched trailing underscore stays literal",
			in:   "a _b_ c _d",
			want: `a \emph{b} c \_d`,
		},
		{
			name: "lone underscore stays literal",
			in:   "snake_case",
			want: `snake\_case`,
		},
		{
			name: "two emphasis spans on one line",
			in:   "_one_ and _two_",
			want: `\emph{one} and \emph{two}`,
		},
		{
			name: "spaced hyphen becomes an em dash",
			in:   "word - word",
			want: "word --- word",
		},
		{
			name: "spaced double hyphen becomes an em dash",
			in:   "word -- word",
			want: "word --- word",
		},
		{
			name: "word-internal hyphen is untouched",
			in:   "well-known",
			want: "well-known",
		},
		{
			name: "word-internal double hyphen is untouched",
			in:   "pages 12--14",
			want: "pages 12--14",
		},
		{
			name: "dialogue dash at line start",
			in:   "- Hello, she said.",
			want: "--- Hello, she said.",
		},
		{
			name: "comments are stripped",
			in:   "kept [[drop this note]] also kept",
			want: "kept  also kept",
		},
		{
			name: "double quotes alternate open and close",
			in:   `She said "yes" twice`,
			want: "She said “yes” twice",
		},
		{
			name: "single quotes alternate independently",
			in:   `'odd' and "even"`,
			want: "‘odd’ and “even”",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Transform(tt.in, englishQuotes))
		})
	}
}

func TestTransformSwedishQuotes(t *testing.T) {
	swedish := types.QuoteSet{
		OpenDouble: "”", CloseDouble: "”",
		OpenSingle: "’", CloseSingle: "’",
	}
	got := Transform(`Hon sa "hej" till alla`, swedish)
	assert.Equal(t, "Hon sa ”hej” till alla", got)
}

func TestTransformNoUnescapedReservedOutput(t *testing.T) {
	// Whatever goes in, no bare reserved character may survive.
	inputs := []string{
		`100% & more`,
		`_a & b_`,
		`#tag $var {x}`,
		`mixed _emph & "quote"_ here`,
	}
	for _, in := range inputs {
		out := Transform(in, englishQuotes)
		for i := 0; i < len(out); i++ {
			switch out[i] {
			case '&', '%', '$', '#':
				if i == 0 || out[i-1] != '\\' {
					t.Errorf("Transform(%q) = %q: unescaped %q at %d", in, out, out[i], i)
				}
			}
		}
	}
}

func TestTransformEmphasisDoesNotReescape(t *testing.T) {
	// The emphasis pass runs after escaping and must not disturb it.
	got := Transform("_a & b_", englishQuotes)
	assert.Equal(t, `\emph{a \& b}`, got)
}

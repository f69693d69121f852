// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"regexp"
	"strings"

	"github.com/pdiddy/bookpress/pkg/types"
)

// commentPattern matches inline [[...]] working notes, which never reach
// the typeset document. The match is non-greedy and stays within a line.
var commentPattern = regexp.MustCompile(`\[\[.*?\]\]`)

// spacedDashPattern matches a one- or two-hyphen clause separator flanked
// by spaces on both sides.
var spacedDashPattern = regexp.MustCompile(` --? `)

// leadingDashPattern matches a dialogue dash opening a line.
var leadingDashPattern = regexp.MustCompile(`^--? `)

// emDash is the LaTeX source form of an em dash.
const emDash = "---"

// Transform rewrites one line of content into LaTeX-embeddable text.
// The passes run in fixed order; each later pass is written so it never
// reinterprets markup emitted by an earlier one:
//
//  1. strip [[...]] comments
//  2. escape the LaTeX reserved characters (underscore excluded; the
//     emphasis pass owns it)
//  3. pair underscores into \emph{...} spans
//  4. normalize spaced hyphens to em dashes
//  5. substitute locale curly quotes for straight quotes
//
// The result contains no unescaped reserved characters. Malformed
// emphasis is never an error: an unpaired underscore comes out literal.
func Transform(text string, quotes types.QuoteSet) string {
	text = commentPattern.ReplaceAllString(text, "")
	text = escapeReserved(text)
	text = emphasize(text)
	text = normalizeDashes(text)
	return curlQuotes(text, quotes)
}

// escapeReserved escapes every character LaTeX treats as structural.
// Underscore is deliberately left alone here; emphasize handles it.
// All other characters, accented letters included, pass through.
func escapeReserved(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\textbackslash{}`)
		case '~':
			b.WriteString(`\textasciitilde{}`)
		case '^':
			b.WriteString(`\textasciicircum{}`)
		case '&', '%', '$', '#', '{', '}':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// emphasize converts matched underscore pairs into \emph spans. Pairing
// is strictly left to right within the line; a trailing underscore with
// no partner is emitted as a literal \_ instead of opening a span that
// would never close. Emphasis never crosses line boundaries.
func emphasize(s string) string {
	parts := strings.Split(s, "_")
	if len(parts) == 1 {
		return s
	}
	var b strings.Builder
	b.WriteString(parts[0])
	open := false
	for i, part := range parts[1:] {
		last := i == len(parts)-2
		switch {
		case open:
			b.WriteString("}")
			open = false
		case last:
			// No partner left for this underscore.
			b.WriteString(`\_`)
		default:
			b.WriteString(`\emph{`)
			open = true
		}
		b.WriteString(part)
	}
	return b.String()
}

// normalizeDashes rewrites a hyphen used as a clause separator into an
// em dash. Only a one- or two-hyphen run flanked by spaces qualifies,
// plus the dialogue dash opening a line; word-internal hyphens
// (well-known, 1--2) are left untouched.
func normalizeDashes(s string) string {
	s = leadingDashPattern.ReplaceAllString(s, emDash+" ")
	return spacedDashPattern.ReplaceAllString(s, " "+emDash+" ")
}

// curlQuotes replaces straight quotation marks with the locale glyph
// pair, alternating open and close by parity of occurrence within the
// line. Double and single quotes are counted independently.
func curlQuotes(s string, q types.QuoteSet) string {
	var b strings.Builder
	b.Grow(len(s))
	doubleOpen := false
	singleOpen := false
	for _, r := range s {
		switch r {
		case '"':
			if doubleOpen {
				b.WriteString(q.CloseDouble)
			} else {
				b.WriteString(q.OpenDouble)
			}
			doubleOpen = !doubleOpen
		case '\'':
			if singleOpen {
				b.WriteString(q.CloseSingle)
			} else {
				b.WriteString(q.OpenSingle)
			}
			singleOpen = !singleOpen
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

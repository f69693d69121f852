// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup translates the restricted manuscript syntax into LaTeX.
// It covers the three translation layers: classifying raw lines,
// transforming inline text, and assembling classified lines into blocks.
package markup

import "strings"

// LineKind classifies one raw manuscript line.
type LineKind int

const (
	// LineTitle is the first line of a file, whatever its content.
	LineTitle LineKind = iota

	// LineBlank is an empty or whitespace-only line.
	LineBlank

	// LineVerse carries the four-space verse prefix.
	LineVerse

	// LineQuote carries the quote marker prefix.
	LineQuote

	// LineParagraph is any other non-blank line.
	LineParagraph
)

// String returns the kind name, for diagnostics.
func (k LineKind) String() string {
	switch k {
	case LineTitle:
		return "title"
	case LineBlank:
		return "blank"
	case LineVerse:
		return "verse"
	case LineQuote:
		return "quote"
	default:
		return "paragraph"
	}
}

const (
	// versePrefix marks a verse line: exactly four spaces, never tabs.
	versePrefix = "    "

	// quoteMarker starts a quote line when followed by whitespace.
	quoteMarker = '>'
)

// Classify tags a raw line with its kind and returns the line content
// with any block-marker prefix stripped. pos is the zero-based line
// position within the file; position 0 is always the title. Leading
// whitespace that survives the verse prefix is preserved verbatim,
// since it carries poetic indentation.
//
// Classify is a pure function: the same (line, pos) always yields the
// same result, and every line maps to exactly one kind.
func Classify(line string, pos int) (LineKind, string) {
	if pos == 0 {
		return LineTitle, strings.TrimSpace(line)
	}
	if strings.TrimSpace(line) == "" {
		return LineBlank, ""
	}
	if strings.HasPrefix(line, versePrefix) {
		return LineVerse, line[len(versePrefix):]
	}
	if len(line) >= 2 && line[0] == quoteMarker && (line[1] == ' ' || line[1] == '\t') {
		return LineQuote, line[2:]
	}
	return LineParagraph, line
}

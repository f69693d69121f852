package types

import "strings"

// Book is the project manifest loaded from book.yaml. It describes a
// complete manuscript: metadata plus the ordered chapter files.
type Book struct {
	// Title is the book title.
	Title string `json:"title" yaml:"title"`

	// Author is the book author.
	Author string `json:"author" yaml:"author"`

	// Sources lists the chapter files in reading order.
	Sources []string `json:"sources" yaml:"sources"`

	// Basepath is prepended to every relative source path.
	Basepath string `json:"basepath,omitempty" yaml:"basepath,omitempty"`

	// Output is the base name for generated files.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Language is an explicit language tag; empty means auto-detect.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`

	// WideLineSpacing switches the document to one-and-a-half line spacing.
	WideLineSpacing bool `json:"wide_line_spacing,omitempty" yaml:"wide_line_spacing,omitempty"`
}

// SourceDocument is one manuscript file read fully into memory. It is
// built once and never mutated afterwards.
type SourceDocument struct {
	// Path is the file the document was read from.
	Path string `json:"path" yaml:"path"`

	// Lines holds the raw lines in file order.
	Lines []string `json:"lines" yaml:"lines"`
}

// Title returns the chapter title: the first line of the file, trimmed.
// A blank first line yields an empty title, which is not an error.
func (d SourceDocument) Title() string {
	if len(d.Lines) == 0 {
		return ""
	}
	return strings.TrimSpace(d.Lines[0])
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose renders translated chapters into a complete LaTeX
// source document. The document template uses << >> delimiters so it
// can hold LaTeX braces verbatim; a custom template may be supplied in
// place of the embedded one.
package compose

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/pdiddy/bookpress/pkg/types"
)

//go:embed template.tex
var embeddedTemplate string

// requiredPlaceholders are the fields every document template must
// reference. Validation happens once, before any chapter is rendered.
var requiredPlaceholders = []string{".Title", ".Author", ".Chapters"}

// forcedBreak ends a LaTeX line inside quote and verse environments.
const forcedBreak = `\\`

// TemplateError reports a document template unfit for rendering: a
// missing required placeholder or a syntax error. It is raised once,
// before any per-file processing.
type TemplateError struct {
	// Path is the custom template file, or empty for the embedded one.
	Path string
	Err  error
}

func (e *TemplateError) Error() string {
	name := e.Path
	if name == "" {
		name = "embedded template"
	}
	return fmt.Sprintf("document template %s: %v", name, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// Document is everything the template needs: header fields and the
// translated chapters in input order.
type Document struct {
	// Title and Author are already escaped for LaTeX embedding.
	Title  string
	Author string

	// Babel is the babel language name; empty omits the babel package.
	Babel string

	// WideLineSpacing switches on one-and-a-half line spacing.
	WideLineSpacing bool

	// MultipleChapters selects the chapter-level heading command; a
	// single short story gets a section heading instead of a book-style
	// chapter page.
	MultipleChapters bool

	// Chapters are rendered strictly in this order.
	Chapters []types.Chapter
}

// Renderer holds a validated, parsed document template.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses and validates the document template. An empty path
// selects the embedded template. A template missing a required
// placeholder fails here, before any manuscript is touched.
func NewRenderer(path string) (*Renderer, error) {
	text := embeddedTemplate
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &TemplateError{Path: path, Err: err}
		}
		text = string(data)
	}

	for _, p := range requiredPlaceholders {
		if !strings.Contains(text, p) {
			return nil, &TemplateError{Path: path, Err: fmt.Errorf("missing required placeholder %s", p)}
		}
	}

	tmpl, err := template.New("document").Delims("<<", ">>").Parse(text)
	if err != nil {
		return nil, &TemplateError{Path: path, Err: err}
	}
	return &Renderer{tmpl: tmpl}, nil
}

// renderedChapter is the template-facing view of one chapter.
type renderedChapter struct {
	Heading string
	Body    string
}

// Render produces the complete LaTeX source text for a document.
// Chapters appear in the exact order given.
func (r *Renderer) Render(doc Document) (string, error) {
	chapters := make([]renderedChapter, len(doc.Chapters))
	for i, ch := range doc.Chapters {
		chapters[i] = renderedChapter{
			Heading: ch.Heading,
			Body:    renderBody(ch.Blocks),
		}
	}

	var b strings.Builder
	err := r.tmpl.Execute(&b, struct {
		Title            string
		Author           string
		Babel            string
		WideLineSpacing  bool
		MultipleChapters bool
		Chapters         []renderedChapter
	}{doc.Title, doc.Author, doc.Babel, doc.WideLineSpacing, doc.MultipleChapters, chapters})
	if err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}
	return b.String(), nil
}

// renderBody joins a chapter's blocks with paragraph separation.
func renderBody(blocks []types.Block) string {
	parts := make([]string, len(blocks))
	for i, blk := range blocks {
		parts[i] = renderBlock(blk)
	}
	return strings.Join(parts, "\n\n")
}

// renderBlock maps one block to its LaTeX environment.
func renderBlock(blk types.Block) string {
	switch blk.Kind {
	case types.BlockQuote:
		// One forced break per source line break.
		return "\\begin{quote}\n" +
			strings.Join(blk.Segments, forcedBreak+"\n") +
			"\n\\end{quote}"
	case types.BlockVerse:
		return "\\begin{verse}\n" + renderVerse(blk.Segments) + "\n\\end{verse}"
	case types.BlockSceneBreak:
		return "\\vspace{6mm}"
	default:
		// Paragraph lines flow together with interword joins.
		return strings.Join(blk.Segments, " ")
	}
}

// renderVerse lays out verse lines with hard breaks. An empty segment
// is a stanza break: the preceding line drops its trailing break and a
// blank line separates the stanzas.
func renderVerse(segments []string) string {
	var stanzas [][]string
	var current []string
	for _, seg := range segments {
		if seg == "" {
			if len(current) > 0 {
				stanzas = append(stanzas, current)
				current = nil
			}
			continue
		}
		current = append(current, seg)
	}
	if len(current) > 0 {
		stanzas = append(stanzas, current)
	}

	rendered := make([]string, len(stanzas))
	for i, stanza := range stanzas {
		rendered[i] = strings.Join(stanza, forcedBreak+"\n")
	}
	return strings.Join(rendered, "\n\n")
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compose

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/bookpress/pkg/types"
)

func mustRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer("")
	if err != nil {
		t.Fatalf("embedded template did not validate: %v", err)
	}
	return r
}

func TestNewRendererCustomTemplate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "valid custom template",
			content: "<<.Title>> <<.Author>> <<range .Chapters>><<.Body>><<end>>",
		},
		{
			name:    "missing author placeholder",
			content: "<<.Title>> <<range .Chapters>><<.Body>><<end>>",
			wantErr: "missing required placeholder .Author",
		},
		{
			name:    "missing chapters placeholder",
			content: "<<.Title>> <<.Author>>",
			wantErr: "missing required placeholder .Chapters",
		},
		{
			name:    "broken template syntax",
			content: "<<.Title>> <<.Author>> <<range .Chapters>",
			wantErr: "template",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "custom.tex")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			_, err := NewRenderer(path)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var terr *TemplateError
			if !errors.As(err, &terr) {
				t.Fatalf("error %v is not a TemplateError", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewRendererMissingFile(t *testing.T) {
	_, err := NewRenderer(filepath.Join(t.TempDir(), "nope.tex"))
	if err == nil {
		t.Fatal("expected error for missing template file")
	}
}

func TestRenderChapterOrder(t *testing.T) {
	// Two chapters composed with title T and author A: everything must
	// come out in input order, header first.
	r := mustRenderer(t)
	out, err := r.Render(Document{
		Title:            "T",
		Author:           "A",
		Babel:            "english",
		MultipleChapters: true,
		Chapters: []types.Chapter{
			{
				Heading: "Chapter One",
				Blocks:  []types.Block{{Kind: types.BlockParagraph, Segments: []string{"Hello world."}}},
			},
			{
				Heading: "Chapter Two",
				Blocks:  []types.Block{{Kind: types.BlockParagraph, Segments: []string{"Goodbye."}}},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	markers := []string{
		`\title{T}`,
		`\author{A}`,
		`\chapter*{Chapter One}`,
		"Hello world.",
		`\chapter*{Chapter Two}`,
		"Goodbye.",
	}
	pos := -1
	for _, m := range markers {
		i := strings.Index(out, m)
		if i < 0 {
			t.Fatalf("output missing %q:\n%s", m, out)
		}
		if i < pos {
			t.Fatalf("%q appears out of order", m)
		}
		pos = i
	}
}

func TestRenderSingleChapterHeading(t *testing.T) {
	// One short story keeps its heading, but as a section instead of a
	// book-style chapter page.
	r := mustRenderer(t)
	out, err := r.Render(Document{
		Title:  "T",
		Author: "A",
		Chapters: []types.Chapter{
			{
				Heading: "The Only Story",
				Blocks:  []types.Block{{Kind: types.BlockParagraph, Segments: []string{"Once."}}},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `\section*{The Only Story}`) {
		t.Errorf("single-chapter heading missing:\n%s", out)
	}
	if strings.Contains(out, `\chapter*`) {
		t.Errorf("book-style chapter heading used for a single chapter:\n%s", out)
	}
}

func TestRenderBlockKinds(t *testing.T) {
	tests := []struct {
		name  string
		block types.Block
		want  string
	}{
		{
			name:  "paragraph joins with interword spaces",
			block: types.Block{Kind: types.BlockParagraph, Segments: []string{"one", "two", "three"}},
			want:  "one two three",
		},
		{
			name:  "quote preserves line structure",
			block: types.Block{Kind: types.BlockQuote, Segments: []string{"a", "b", "c"}},
			want:  "\\begin{quote}\na\\\\\nb\\\\\nc\n\\end{quote}",
		},
		{
			name:  "verse with stanza break",
			block: types.Block{Kind: types.BlockVerse, Segments: []string{"line1", "", "line2"}},
			want:  "\\begin{verse}\nline1\n\nline2\n\\end{verse}",
		},
		{
			name:  "multi-line stanza keeps hard breaks",
			block: types.Block{Kind: types.BlockVerse, Segments: []string{"a", "b", "", "c"}},
			want:  "\\begin{verse}\na\\\\\nb\n\nc\n\\end{verse}",
		},
		{
			name:  "scene break",
			block: types.Block{Kind: types.BlockSceneBreak},
			want:  "\\vspace{6mm}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderBlock(tt.block)
			if got != tt.want {
				t.Errorf("renderBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderQuoteBreakCount(t *testing.T) {
	// Three quoted source lines carry exactly two forced breaks.
	out := renderBlock(types.Block{Kind: types.BlockQuote, Segments: []string{"x", "y", "z"}})
	if n := strings.Count(out, `\\`); n != 2 {
		t.Errorf("forced breaks = %d, want 2\n%s", n, out)
	}
}

func TestRenderTemplateOptions(t *testing.T) {
	r := mustRenderer(t)

	out, err := r.Render(Document{Title: "T", Author: "A", Babel: "swedish", WideLineSpacing: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `\usepackage[swedish]{babel}`) {
		t.Error("babel language missing from output")
	}
	if !strings.Contains(out, `\onehalfspacing`) {
		t.Error("wide line spacing missing from output")
	}

	out, err = r.Render(Document{Title: "T", Author: "A"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out, "babel") {
		t.Error("babel loaded without a language")
	}
	if strings.Contains(out, `\onehalfspacing`) {
		t.Error("wide line spacing on by default")
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package press runs the full build: manuscripts in, LaTeX source out,
// and optionally a PDF through the external engine. It owns the staging
// of temp build directories and the salvage of debug files when the
// engine fails.
package press

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/bookpress/internal/compose"
	"github.com/pdiddy/bookpress/internal/language"
	"github.com/pdiddy/bookpress/internal/manuscript"
	"github.com/pdiddy/bookpress/internal/markup"
	"github.com/pdiddy/bookpress/pkg/types"
)

// defaultOutput is the base name used when none is configured.
const defaultOutput = "book"

// Compiler turns a .tex source into a PDF. The engine package provides
// the production implementation; tests inject fakes.
type Compiler interface {
	// Compile runs the toolchain on texPath inside buildDir and returns
	// the path of the produced PDF.
	Compile(texPath, buildDir string) (string, error)
}

// Result reports what a build produced.
type Result struct {
	// TexPath is the written LaTeX source, set only in tex-only builds.
	TexPath string

	// PDFPath is the final PDF, empty in tex-only builds.
	PDFPath string

	// Language is the resolved language tag.
	Language string
}

// Build runs the whole pipeline for one book. The template is validated
// first, before any manuscript is read; any fatal error aborts the run
// with nothing handed to the engine. Progress lines go to w.
func Build(cfg types.BuildConfig, c Compiler, w io.Writer) (Result, error) {
	renderer, err := compose.NewRenderer(cfg.TemplatePath)
	if err != nil {
		return Result{}, err
	}

	if len(cfg.Sources) == 0 {
		return Result{}, fmt.Errorf("no manuscript sources given")
	}

	docs, err := manuscript.LoadAll(cfg.Basepath, cfg.Sources)
	if err != nil {
		return Result{}, err
	}

	locale := resolveLocale(cfg.Language, docs)
	fmt.Fprintf(w, "language: %s\n", locale.Tag)

	// Chapters keep the exact source order; no sorting, ever.
	chapters := make([]types.Chapter, len(docs))
	for i, doc := range docs {
		chapters[i] = markup.Assemble(doc, locale.Quotes)
	}

	texSource, err := renderer.Render(compose.Document{
		Title:            markup.Transform(cfg.Title, locale.Quotes),
		Author:           markup.Transform(cfg.Author, locale.Quotes),
		Babel:            locale.Babel,
		WideLineSpacing:  cfg.WideLineSpacing,
		MultipleChapters: len(chapters) > 1,
		Chapters:         chapters,
	})
	if err != nil {
		return Result{}, err
	}

	outDir := cfg.OutputDir
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory: %w", err)
	}
	output := cfg.Output
	if output == "" {
		output = defaultOutput
	}

	if cfg.NoPDF {
		texPath := filepath.Join(outDir, output+".tex")
		if err := os.WriteFile(texPath, []byte(texSource), 0o644); err != nil {
			return Result{}, fmt.Errorf("writing %s: %w", texPath, err)
		}
		fmt.Fprintf(w, "wrote %s\n", texPath)
		return Result{TexPath: texPath, Language: locale.Tag}, nil
	}

	buildDir, err := os.MkdirTemp("", "bookpress-")
	if err != nil {
		return Result{}, fmt.Errorf("creating build directory: %w", err)
	}
	defer os.RemoveAll(buildDir)

	texPath := filepath.Join(buildDir, output+".tex")
	if err := os.WriteFile(texPath, []byte(texSource), 0o644); err != nil {
		return Result{}, fmt.Errorf("writing %s: %w", texPath, err)
	}

	fmt.Fprintf(w, "compiling %s.tex\n", output)
	pdf, err := c.Compile(texPath, buildDir)
	if err != nil {
		salvage(buildDir, output, outDir, w)
		return Result{}, err
	}

	dest := filepath.Join(outDir, output+".pdf")
	if err := copyFile(pdf, dest); err != nil {
		return Result{}, fmt.Errorf("copying PDF: %w", err)
	}
	fmt.Fprintf(w, "wrote %s\n", dest)

	return Result{PDFPath: dest, Language: locale.Tag}, nil
}

// resolveLocale uses the explicit tag when given, otherwise detects the
// language from the concatenated manuscript text.
func resolveLocale(tag string, docs []types.SourceDocument) language.Locale {
	if tag != "" {
		return language.ForTag(tag)
	}
	var sample strings.Builder
	for _, doc := range docs {
		sample.WriteString(strings.Join(doc.Lines, "\n"))
		sample.WriteString("\n")
	}
	return language.Detect(sample.String())
}

// salvage copies the .tex and .log out of a failed build directory so
// the engine's complaint can be inspected after the temp dir is gone.
func salvage(buildDir, output, outDir string, w io.Writer) {
	for _, ext := range []string{".tex", ".log"} {
		src := filepath.Join(buildDir, output+ext)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dest := filepath.Join(outDir, output+ext)
		if err := copyFile(src, dest); err == nil {
			fmt.Fprintf(w, "salvaged %s\n", dest)
		}
	}
}

// copyFile copies src to dest, creating or truncating dest.
func copyFile(src, dest string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

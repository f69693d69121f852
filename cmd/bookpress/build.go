// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bookpress/internal/engine"
	"github.com/pdiddy/bookpress/internal/history"
	"github.com/pdiddy/bookpress/internal/manuscript"
	"github.com/pdiddy/bookpress/internal/press"
	"github.com/pdiddy/bookpress/pkg/types"
)

var buildCmd = &cobra.Command{
	Use:   "build [sources...]",
	Short: "Typeset manuscript files into a PDF",
	Long: `Build translates the given manuscript files into LaTeX and compiles
them into one PDF. Chapters appear in the exact order the sources are
given. Sources, title and author can also come from a book.yaml
manifest; command-line flags override manifest values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveBuildConfig(cmd, args)
		if err != nil {
			return err
		}
		return runBuild(cfg, os.Stderr)
	},
}

func init() {
	buildCmd.Flags().String("book", "", "book manifest (default: ./book.yaml when present)")
	buildCmd.Flags().String("title", "", "document title")
	buildCmd.Flags().String("author", "", "document author")
	buildCmd.Flags().String("basepath", "", "base path of the manuscript files")
	buildCmd.Flags().String("output", "", "output base name")
	buildCmd.Flags().String("output-dir", "", "directory for generated files")
	buildCmd.Flags().String("language", "", "language tag (default: detected from the text)")
	buildCmd.Flags().String("template", "", "custom document template (default: built in)")
	buildCmd.Flags().Bool("wide-line-spacing", false, "extra wide line spacing")
	buildCmd.Flags().Bool("no-pdf", false, "stop after writing the .tex source")

	rootCmd.AddCommand(buildCmd)
}

// resolveBuildConfig merges manifest, config file and flags into one
// BuildConfig. Flags win over the manifest, the manifest wins over the
// config file defaults.
func resolveBuildConfig(cmd *cobra.Command, args []string) (types.BuildConfig, error) {
	var book types.Book

	bookPath, _ := cmd.Flags().GetString("book")
	if bookPath == "" {
		if _, err := os.Stat(manuscript.ManifestFile); err == nil {
			bookPath = manuscript.ManifestFile
		}
	}
	if bookPath != "" {
		b, err := manuscript.LoadBook(bookPath)
		if err != nil {
			return types.BuildConfig{}, err
		}
		book = *b
	}

	cfg := types.BuildConfig{
		Title:           book.Title,
		Author:          book.Author,
		Sources:         book.Sources,
		Basepath:        book.Basepath,
		Output:          book.Output,
		Language:        book.Language,
		WideLineSpacing: book.WideLineSpacing,
	}

	if len(args) > 0 {
		cfg.Sources = args
	}
	if cmd.Flags().Changed("title") {
		cfg.Title, _ = cmd.Flags().GetString("title")
	}
	if cmd.Flags().Changed("author") {
		cfg.Author, _ = cmd.Flags().GetString("author")
	}
	if cmd.Flags().Changed("basepath") {
		cfg.Basepath, _ = cmd.Flags().GetString("basepath")
	}
	if cmd.Flags().Changed("output") {
		cfg.Output, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("language") {
		cfg.Language, _ = cmd.Flags().GetString("language")
	}
	if cmd.Flags().Changed("wide-line-spacing") {
		cfg.WideLineSpacing, _ = cmd.Flags().GetBool("wide-line-spacing")
	}

	cfg.TemplatePath, _ = cmd.Flags().GetString("template")
	cfg.NoPDF, _ = cmd.Flags().GetBool("no-pdf")

	cfg.OutputDir, _ = cmd.Flags().GetString("output-dir")
	if cfg.OutputDir == "" {
		cfg.OutputDir = viper.GetString("output_dir")
	}
	if cfg.Output == "" {
		cfg.Output = viper.GetString("output")
	}

	return cfg, nil
}

// runBuild executes one build and records it in the history store.
func runBuild(cfg types.BuildConfig, w io.Writer) error {
	var compiler press.Compiler
	if !cfg.NoPDF {
		eng, err := engine.Detect()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "engine: %s\n", eng.Name())
		compiler = eng
	}

	started := time.Now()
	result, err := press.Build(cfg, compiler, w)
	recordBuild(cfg, result, started, err == nil)
	return err
}

// recordBuild appends the run to the history database. History is a
// convenience; a broken store never fails the build.
func recordBuild(cfg types.BuildConfig, result press.Result, started time.Time, ok bool) {
	store, err := history.Open(viper.GetString("history.dir"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: build history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	rec := history.Record{
		StartedAt: started,
		Output:    cfg.Output,
		Sources:   cfg.Sources,
		Language:  result.Language,
		TexOnly:   cfg.NoPDF,
		Succeeded: ok,
	}
	if err := store.Add(rec); err != nil {
		fmt.Fprintf(os.Stderr, "warning: recording build: %v\n", err)
	}
}

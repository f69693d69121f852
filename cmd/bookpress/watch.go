// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/bookpress/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [sources...]",
	Short: "Rebuild the document whenever a manuscript changes",
	Long: `Watch runs an initial build and then keeps rebuilding whenever one of
the manuscript files is saved. Interrupt with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveBuildConfig(cmd, args)
		if err != nil {
			return err
		}

		if err := runBuild(cfg, os.Stderr); err != nil {
			// Keep watching: the next save may fix the manuscript.
			fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		}

		paths := make([]string, len(cfg.Sources))
		for i, src := range cfg.Sources {
			if cfg.Basepath != "" && !filepath.IsAbs(src) {
				src = filepath.Join(cfg.Basepath, src)
			}
			paths[i] = src
		}

		debounceMillis, _ := cmd.Flags().GetInt("debounce")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		fmt.Fprintf(os.Stderr, "watching %d file(s)\n", len(paths))
		err = watch.Watch(ctx, watch.Config{
			Paths:    paths,
			Debounce: time.Duration(debounceMillis) * time.Millisecond,
			OnChange: func(path string) {
				fmt.Fprintf(os.Stderr, "changed: %s\n", path)
				if err := runBuild(cfg, os.Stderr); err != nil {
					fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
				}
			},
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	watchCmd.Flags().String("book", "", "book manifest (default: ./book.yaml when present)")
	watchCmd.Flags().String("title", "", "document title")
	watchCmd.Flags().String("author", "", "document author")
	watchCmd.Flags().String("basepath", "", "base path of the manuscript files")
	watchCmd.Flags().String("output", "", "output base name")
	watchCmd.Flags().String("output-dir", "", "directory for generated files")
	watchCmd.Flags().String("language", "", "language tag (default: detected from the text)")
	watchCmd.Flags().String("template", "", "custom document template (default: built in)")
	watchCmd.Flags().Bool("wide-line-spacing", false, "extra wide line spacing")
	watchCmd.Flags().Bool("no-pdf", false, "stop after writing the .tex source")
	watchCmd.Flags().Int("debounce", 500, "debounce window in milliseconds")

	rootCmd.AddCommand(watchCmd)
}

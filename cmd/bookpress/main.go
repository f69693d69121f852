// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bookpress CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the bookpress CLI.
var rootCmd = &cobra.Command{
	Use:   "bookpress",
	Short: "Typeset plain-text manuscripts into a PDF",
	Long: `bookpress turns plain-text manuscripts written in a restricted
Markdown-like syntax into a single typeset PDF. Each input file is one
chapter: the first line is the heading, paragraphs are separated by
blank lines, _underscores_ mark emphasis, "> " opens a quotation and a
four-space indent opens verse. bookpress translates the text to LaTeX
and hands it to the LaTeX toolchain installed on this machine.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bookpress.yaml or ~/.config/bookpress/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bookpress")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bookpress"))
		}
	}

	viper.SetDefault("output", "book")
	viper.SetDefault("output_dir", ".")
	viper.SetDefault("history.dir", ".bookpress")
	viper.SetDefault("history.max_results", 20)

	viper.SetEnvPrefix("BOOKPRESS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

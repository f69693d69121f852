// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bookpress/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent builds",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		if !cmd.Flags().Changed("limit") {
			limit = viper.GetInt("history.max_results")
		}

		store, err := history.Open(viper.GetString("history.dir"))
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.Recent(limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("no builds recorded yet")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tOUTPUT\tLANG\tMODE\tRESULT\tSOURCES")
		for _, r := range records {
			mode := "pdf"
			if r.TexOnly {
				mode = "tex"
			}
			result := "ok"
			if !r.Succeeded {
				result = "failed"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				r.StartedAt.Local().Format("2006-01-02 15:04"),
				r.Output, r.Language, mode, result,
				strings.Join(r.Sources, " "))
		}
		return w.Flush()
	},
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum number of builds to list")

	rootCmd.AddCommand(historyCmd)
}

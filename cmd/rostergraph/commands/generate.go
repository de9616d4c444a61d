package commands

import (
	"fmt"
	"log/slog"
	"rostergraph/internal/pipeline"
	"rostergraph/lib/serviceutil"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var outPath string

func init() {
	generateCmd.Flags().StringVarP(&outPath, "out", "o", "", "The script file to write, overrides the config's output.")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate [--config <rostergraph.json5>] [--out <script.txt>] [--fixtures <dir>]",
	Short: "Fetches every configured season and writes the graph creation script.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if outPath != "" {
			cfg.Output = outPath
		}

		t1 := time.Now()
		report, err := pipeline.WriteFile(cmd.Context(), cfg, source(cfg), cfg.Output)
		if err != nil {
			serviceutil.Fatal("failed to generate script", err)
		}
		slog.Info("generation time", "seconds", time.Since(t1).Seconds(), "output", cfg.Output)

		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Seasons", "Players", "High schools", "Relationships", "Failures", "Aliases"})
		t.AppendRow(table.Row{
			report.Seasons,
			report.Stats.Players,
			report.Stats.HighSchools,
			report.Stats.Relationships,
			len(report.Failures),
			len(report.Aliases),
		})
		t.Render()

		if len(report.Failures) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "run `rostergraph inspect --failures` to list rows that could not be parsed")
		}
	},
}

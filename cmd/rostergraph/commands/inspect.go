package commands

import (
	"fmt"
	"io"
	"rostergraph/internal/pipeline"
	"rostergraph/internal/roster"
	"rostergraph/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	showPlayers  bool
	showFailures bool
	showAliases  bool
)

func init() {
	flags := inspectCmd.Flags()
	flags.BoolVar(&showPlayers, "players", false, "Print the resolved players.")
	flags.BoolVar(&showFailures, "failures", false, "Print the rows that could not be parsed completely.")
	flags.BoolVar(&showAliases, "aliases", false, "Print pairs of names that may belong to the same player.")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [--players] [--failures] [--aliases]",
	Short: "Resolves every configured season and prints what would be written, without writing a script.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		report, err := pipeline.Resolve(cmd.Context(), cfg, source(cfg))
		if err != nil {
			serviceutil.Fatal("failed to resolve rosters", err)
		}

		all := !showPlayers && !showFailures && !showAliases
		out := cmd.OutOrStdout()
		if all || showPlayers {
			renderPlayers(out, report.Resolution)
		}
		if all || showFailures {
			renderFailures(out, report.Failures)
		}
		if all || showAliases {
			renderAliases(out, report.Aliases)
		}
	},
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func renderPlayers(w io.Writer, res roster.Resolution) {
	t := newTable(w)
	t.SetTitle("Players")
	t.AppendHeader(table.Row{"Name", "Position", "City", "State", "High school", "Years"})
	for _, p := range res.Players {
		t.AppendRow(table.Row{
			p.Record.Name,
			p.Record.Position,
			p.Record.City,
			p.Record.State,
			p.HighSchool,
			fmt.Sprint(p.Years),
		})
	}
	t.SetCaption("%d players, %d high schools", len(res.Players), len(res.HighSchools))
	t.Render()
}

func renderFailures(w io.Writer, failures []roster.Failure) {
	t := newTable(w)
	t.SetTitle("Failures")
	t.AppendHeader(table.Row{"Year", "Player", "Kind", "Raw"})
	for _, f := range failures {
		t.AppendRow(table.Row{f.Year, f.Player, f.Kind.String(), f.Raw})
	}
	t.Render()
}

func renderAliases(w io.Writer, aliases []roster.AliasCandidate) {
	t := newTable(w)
	t.SetTitle("Alias candidates")
	t.AppendHeader(table.Row{"Left", "Right", "Similarity"})
	for _, a := range aliases {
		t.AppendRow(table.Row{a.Left, a.Right, fmt.Sprintf("%.3f", a.Similarity)})
	}
	t.Render()
}

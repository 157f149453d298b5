package commands

import (
	"os"
	"time"

	"partdb-tools/lib/serviceutil"
	"partdb-tools/services/importer"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history <runs.db> [run-id]",
	Short: "Lists recorded import runs, or the per-part outcomes of one run.",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		history, err := importer.OpenHistory(args[0])
		if err != nil {
			serviceutil.Fatal("failed to open run history", err)
		}
		defer history.Close()

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleRounded)

		if len(args) == 1 {
			runs, err := history.Runs(cmd.Context())
			if err != nil {
				serviceutil.Fatal("failed to list runs", err)
			}
			t.AppendHeader(table.Row{"Run", "Parts", "Started"})
			for _, run := range runs {
				t.AppendRow(table.Row{
					run.RunId,
					run.Parts,
					time.Unix(run.StartedAt, 0).Format(time.DateTime),
				})
			}
			t.Render()
			return
		}

		outcomes, err := history.Outcomes(cmd.Context(), args[1])
		if err != nil {
			serviceutil.Fatal("failed to list run outcomes", err)
		}
		t.AppendHeader(table.Row{"Identifier", "Quantity", "Outcome", "Reason"})
		for _, row := range outcomes {
			t.AppendRow(table.Row{row.Identifier, row.Quantity, row.Outcome, row.Reason})
		}
		t.Render()
	},
}

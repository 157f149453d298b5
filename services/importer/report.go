package importer

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderReport writes the end-of-run summary: per-outcome counts out
// of the total, followed by the failed identifiers when there are any.
func (s Summary) RenderReport(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Outcome", "Count"})
	t.AppendRows([]table.Row{
		{"Created", s.Created},
		{"Skipped (already exist)", s.Skipped},
		{"Failed", s.Failed},
	})
	t.AppendFooter(table.Row{"Total", s.Total})
	t.SetStyle(table.StyleRounded)
	t.Render()

	if len(s.FailedIDs) == 0 {
		return
	}

	f := table.NewWriter()
	f.SetOutputMirror(w)
	f.AppendHeader(table.Row{"Failed Parts"})
	for _, id := range s.FailedIDs {
		f.AppendRow(table.Row{id})
	}
	f.SetStyle(table.StyleRounded)
	f.Render()
}

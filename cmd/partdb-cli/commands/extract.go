package commands

import (
	"io"
	"log/slog"
	"os"

	"partdb-tools/lib/extract"
	"partdb-tools/lib/serviceutil"

	"github.com/spf13/cobra"
)

var idColumn *string
var qtyColumn *string

func init() {
	idColumn = extractCmd.Flags().String("id-column", "LCSC Part Number", "Header name of the part identifier column.")
	qtyColumn = extractCmd.Flags().String("qty-column", "Quantity", "Header name of the quantity column.")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <input.csv> [output.csv]",
	Short: "Reduces a supplier CSV export to identifier,quantity rows.",
	Args:  cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		in, err := os.Open(args[0])
		if err != nil {
			serviceutil.Fatal("failed to open input", err)
		}
		defer in.Close()

		var out io.Writer = os.Stdout
		if len(args) > 1 {
			f, err := os.Create(args[1])
			if err != nil {
				serviceutil.Fatal("failed to create output", err)
			}
			defer f.Close()
			out = f
		}

		n, err := extract.Fields(in, out, extract.Options{
			IdentifierColumn: *idColumn,
			QuantityColumn:   *qtyColumn,
		})
		if err != nil {
			serviceutil.Fatal("failed to extract fields", err)
		}
		slog.Info("extracted part rows", "rows", n)
	},
}

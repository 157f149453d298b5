package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

type Options struct {
	// header names looked up in the input's first row
	IdentifierColumn string
	QuantityColumn   string
}

func (o Options) withDefaults() Options {
	if o.IdentifierColumn == "" {
		o.IdentifierColumn = "LCSC Part Number"
	}
	if o.QuantityColumn == "" {
		o.QuantityColumn = "Quantity"
	}
	return o
}

// Fields projects a supplier CSV export down to `<identifier>,<quantity>`
// lines. rows where either column is blank after trimming are dropped
// without comment, row order is preserved and no validation is done on
// the quantity, that happens at import time. returns the number of
// lines written.
func Fields(r io.Reader, w io.Writer, opts Options) (int, error) {
	opts = opts.withDefaults()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return 0, fmt.Errorf("input is empty")
	}
	if err != nil {
		return 0, err
	}

	idCol := -1
	qtyCol := -1
	for i, name := range header {
		// column names are matched verbatim, no case folding
		switch name {
		case opts.IdentifierColumn:
			idCol = i
		case opts.QuantityColumn:
			qtyCol = i
		}
	}
	if idCol < 0 {
		return 0, fmt.Errorf("input has no %q column", opts.IdentifierColumn)
	}
	if qtyCol < 0 {
		return 0, fmt.Errorf("input has no %q column", opts.QuantityColumn)
	}

	written := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return written, err
		}
		if idCol >= len(row) || qtyCol >= len(row) {
			continue
		}

		id := strings.TrimSpace(row[idCol])
		qty := strings.TrimSpace(row[qtyCol])
		if id == "" || qty == "" {
			continue
		}

		_, err = fmt.Fprintf(w, "%s,%s\n", id, qty)
		if err != nil {
			return written, err
		}
		written++
	}

	return written, nil
}

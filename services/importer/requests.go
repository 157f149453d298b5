package importer

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

var ErrNoRequests = errors.New("no valid part requests in input")

var identifierRegex = regexp.MustCompile(`^C\d+$`)

// ParseRequests reads headerless `identifier,quantity` rows. rows with
// the wrong field count, a malformed identifier or a non-integer
// quantity are logged and skipped, the run only fails when nothing
// valid remains.
func ParseRequests(r io.Reader) ([]PartRequest, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var requests []PartRequest
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(row) != 2 {
			slog.Warn("skipping invalid row", "row", strings.Join(row, ","))
			continue
		}

		identifier := strings.TrimSpace(row[0])
		rawQuantity := strings.TrimSpace(row[1])

		if !identifierRegex.MatchString(identifier) {
			slog.Warn("invalid part identifier format", "identifier", identifier)
			continue
		}

		quantity, err := strconv.Atoi(rawQuantity)
		if err != nil {
			slog.Warn("invalid quantity", "identifier", identifier, "quantity", rawQuantity)
			continue
		}

		requests = append(requests, PartRequest{
			Identifier: identifier,
			Quantity:   quantity,
		})
	}

	if len(requests) == 0 {
		return nil, ErrNoRequests
	}
	return requests, nil
}

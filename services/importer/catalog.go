package importer

import (
	"context"
	"fmt"

	"partdb-tools/lib/telemetry"
)

var tracer = telemetry.Tracer("partdb-tools.services.importer")

// PartRequest is one row of importer input: a supplier part code and
// the stock amount to record for it.
type PartRequest struct {
	Identifier string
	Quantity   int
}

// CategoryPath is a two-level category placement derived from a
// provider hint. deeper hierarchies are truncated to (first, last),
// matching what the catalog's own category control accepts.
type CategoryPath struct {
	Parent string
	Leaf   string
}

func (c CategoryPath) IsZero() bool {
	return c.Parent == "" && c.Leaf == ""
}

func (c CategoryPath) String() string {
	if c.Parent == "" {
		return c.Leaf
	}
	return fmt.Sprintf("%s -> %s", c.Parent, c.Leaf)
}

// RecordRef points at an existing catalog record returned by a search.
type RecordRef struct {
	ID   string
	Href string
}

// Catalog is the boundary to the external catalog service. the core
// never talks HTTP itself, lib/scrapers/partdb provides the real
// implementation and tests provide stubs.
type Catalog interface {
	// keyword search across the catalog's indexed fields
	Search(ctx context.Context, keyword string) ([]RecordRef, error)
	// the displayed supplier part codes linked from an existing record
	SupplierIdentifiers(ctx context.Context, ref RecordRef) ([]string, error)
	// the provider's category suggestion text for a part about to be
	// created, "" when the catalog shows none
	CategoryHint(ctx context.Context, identifier string) (string, error)
	// persist a new record, creating the named category on demand
	CreateRecord(ctx context.Context, identifier string, quantity int, category CategoryPath) error
}

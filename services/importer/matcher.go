package importer

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Matcher decides whether a part identifier already has a record in
// the catalog.
type Matcher struct {
	Catalog Catalog
}

// Exists searches the catalog for the identifier and inspects each
// candidate's supplier links. only an exact, case-sensitive match on
// the displayed identifier counts: C1991 showing up inside C19915 is
// not a duplicate. any error along the way is reported as "not found"
// so the caller proceeds to creation instead of aborting the run.
func (m Matcher) Exists(ctx context.Context, identifier string) bool {
	ctx, span := tracer.Start(ctx, "matcher:Exists", trace.WithAttributes(
		attribute.String("identifier", identifier),
	))
	defer span.End()

	refs, err := m.Catalog.Search(ctx, identifier)
	if err != nil {
		slog.Warn("duplicate check failed, assuming part does not exist",
			"identifier", identifier, "err", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		return false
	}

	for _, ref := range refs {
		displayed, err := m.Catalog.SupplierIdentifiers(ctx, ref)
		if err != nil {
			slog.Warn("duplicate check failed, assuming part does not exist",
				"identifier", identifier, "record", ref.ID, "err", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, "supplier lookup failed")
			return false
		}

		for _, text := range displayed {
			if text == identifier {
				span.AddEvent("exact match", trace.WithAttributes(
					attribute.String("record", ref.ID),
				))
				return true
			}
		}
	}

	return false
}

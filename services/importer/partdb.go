package importer

import (
	"context"

	"partdb-tools/lib/scrapers/partdb"
)

// PartdbCatalog adapts the Part-DB scraper client to the Catalog
// boundary the core logic runs against.
type PartdbCatalog struct {
	Client *partdb.Client
}

func (c PartdbCatalog) Search(ctx context.Context, keyword string) ([]RecordRef, error) {
	parts, err := c.Client.SearchParts(ctx, keyword)
	if err != nil {
		return nil, err
	}
	refs := make([]RecordRef, len(parts))
	for i, p := range parts {
		refs[i] = RecordRef{ID: p.Id, Href: p.Href}
	}
	return refs, nil
}

func (c PartdbCatalog) SupplierIdentifiers(ctx context.Context, ref RecordRef) ([]string, error) {
	return c.Client.SupplierLinks(ctx, partdb.Part{Id: ref.ID, Href: ref.Href})
}

func (c PartdbCatalog) CategoryHint(ctx context.Context, identifier string) (string, error) {
	return c.Client.CategoryHelpText(ctx, identifier)
}

func (c PartdbCatalog) CreateRecord(ctx context.Context, identifier string, quantity int, category CategoryPath) error {
	return c.Client.CreatePart(ctx, partdb.CreatePartOptions{
		Identifier: identifier,
		Quantity:   quantity,
		Category:   category.String(),
	})
}

package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// stubCatalog is an in-memory Catalog. records maps a record id to the
// supplier identifiers its info page displays.
type stubCatalog struct {
	records      map[string][]string
	hints        map[string]string
	failCreate   map[string]error
	searchErr    error
	supplierErr  error
	hintErr      error
	created      []PartRequest
	createdPaths map[string]CategoryPath
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{
		records:      map[string][]string{},
		hints:        map[string]string{},
		failCreate:   map[string]error{},
		createdPaths: map[string]CategoryPath{},
	}
}

func (c *stubCatalog) Search(ctx context.Context, keyword string) ([]RecordRef, error) {
	if c.searchErr != nil {
		return nil, c.searchErr
	}
	var refs []RecordRef
	for id, suppliers := range c.records {
		for _, s := range suppliers {
			// keyword search is substring based, which is exactly why
			// the matcher has to re-verify exactly
			if strings.Contains(s, keyword) {
				refs = append(refs, RecordRef{ID: id})
				break
			}
		}
	}
	return refs, nil
}

func (c *stubCatalog) SupplierIdentifiers(ctx context.Context, ref RecordRef) ([]string, error) {
	if c.supplierErr != nil {
		return nil, c.supplierErr
	}
	return c.records[ref.ID], nil
}

func (c *stubCatalog) CategoryHint(ctx context.Context, identifier string) (string, error) {
	if c.hintErr != nil {
		return "", c.hintErr
	}
	return c.hints[identifier], nil
}

func (c *stubCatalog) CreateRecord(ctx context.Context, identifier string, quantity int, category CategoryPath) error {
	if err := c.failCreate[identifier]; err != nil {
		return err
	}
	c.created = append(c.created, PartRequest{Identifier: identifier, Quantity: quantity})
	c.createdPaths[identifier] = category
	c.records["r-"+identifier] = []string{identifier}
	return nil
}

func TestMatcherExactMatch(t *testing.T) {
	catalog := newStubCatalog()
	catalog.records["8"] = []string{"C1991"}

	m := Matcher{Catalog: catalog}
	require.True(t, m.Exists(context.Background(), "C1991"))
}

func TestMatcherRejectsPrefixMatch(t *testing.T) {
	catalog := newStubCatalog()
	catalog.records["8"] = []string{"C19915"}

	m := Matcher{Catalog: catalog}
	// C1991 is a prefix of C19915, a keyword search will surface the
	// record but it must not count as a duplicate
	require.False(t, m.Exists(context.Background(), "C1991"))
}

func TestMatcherRejectsCaseInsensitiveMatch(t *testing.T) {
	catalog := newStubCatalog()
	catalog.records["8"] = []string{"c1991"}

	m := Matcher{Catalog: catalog}
	require.False(t, m.Exists(context.Background(), "C1991"))
}

func TestMatcherSearchErrorMeansNotFound(t *testing.T) {
	catalog := newStubCatalog()
	catalog.records["8"] = []string{"C1991"}
	catalog.searchErr = errors.New("timeout")

	m := Matcher{Catalog: catalog}
	require.False(t, m.Exists(context.Background(), "C1991"))
}

func TestMatcherSupplierErrorMeansNotFound(t *testing.T) {
	catalog := newStubCatalog()
	catalog.records["8"] = []string{"C1991"}
	catalog.supplierErr = errors.New("parse error")

	m := Matcher{Catalog: catalog}
	require.False(t, m.Exists(context.Background(), "C1991"))
}

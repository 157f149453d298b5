package partdb

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"partdb-tools/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Part references an existing catalog record found via search.
type Part struct {
	Id   string
	Href string
}

var partHrefRegex = regexp.MustCompile(`/en/part/(\d+)/`)

// SearchParts runs the catalog's keyword search across all of its
// indexed fields and returns the referenced part records.
func (c *Client) SearchParts(ctx context.Context, keyword string) ([]Part, error) {
	ctx, span := tracer.Start(ctx, "client:SearchParts", trace.WithAttributes(
		attribute.String("keyword", keyword),
	))
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"name":          "1",
			"category":      "1",
			"description":   "1",
			"mpn":           "1",
			"tags":          "1",
			"storelocation": "1",
			"comment":       "1",
			"ipn":           "1",
			"ordernr":       "1",
			"keyword":       keyword,
		}).
		Get("/en/parts/search")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch search results")
		return nil, err
	}
	if redirectedToLogin(res) {
		span.SetStatus(codes.Error, ErrSessionExpired.Error())
		return nil, ErrSessionExpired
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse search results html")
		return nil, err
	}

	anchors := htmlutil.GetAnchors(ctx, doc.Find(`a[href*="/en/part/"][href*="/info"]`))

	var parts []Part
	seen := map[string]struct{}{}
	for _, a := range anchors {
		groups := partHrefRegex.FindStringSubmatch(a.Href)
		if len(groups) < 2 {
			continue
		}
		id := groups[1]
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		parts = append(parts, Part{Id: id, Href: a.Href})
	}

	span.SetAttributes(attribute.Int("results", len(parts)))
	return parts, nil
}

// SupplierLinks returns the displayed text of every supplier link on a
// part's info page. callers match these against supplier part codes.
func (c *Client) SupplierLinks(ctx context.Context, part Part) ([]string, error) {
	ctx, span := tracer.Start(ctx, "client:SupplierLinks", trace.WithAttributes(
		attribute.String("part", part.Id),
	))
	defer span.End()

	endpoint := fmt.Sprintf("/en/part/%s/info", part.Id)

	body, err := c.cache.get(ctx, endpoint)
	if err != nil {
		if err != errPageNotCached {
			span.RecordError(err)
		}

		res, err := c.Http.R().
			SetContext(ctx).
			Get(endpoint)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch part info")
			return nil, err
		}
		if redirectedToLogin(res) {
			span.SetStatus(codes.Error, ErrSessionExpired.Error())
			return nil, ErrSessionExpired
		}
		body = res.Body()

		err = c.cache.set(ctx, endpoint, body)
		if err != nil {
			span.RecordError(err)
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(body))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse part info html")
		return nil, err
	}

	var links []string
	for _, node := range doc.Find(`a[href*="lcsc.com"]`).Nodes {
		text := strings.TrimSpace(htmlutil.GetText(node))
		if text != "" {
			links = append(links, text)
		}
	}

	span.SetAttributes(attribute.Int("links", len(links)))
	return links, nil
}

package partdb

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"partdb-tools/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func createFormEndpoint(identifier string) string {
	return fmt.Sprintf("/en/part/from_info_provider/lcsc/%s/create", identifier)
}

func (c *Client) fetchCreateForm(ctx context.Context, identifier string) (*goquery.Document, error) {
	res, err := c.Http.R().
		SetContext(ctx).
		Get(createFormEndpoint(identifier))
	if err != nil {
		return nil, err
	}
	if redirectedToLogin(res) {
		return nil, ErrSessionExpired
	}
	return goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
}

// CategoryHelpText returns the hint the catalog renders next to the
// category field on the provider create form, "" when there is none.
func (c *Client) CategoryHelpText(ctx context.Context, identifier string) (string, error) {
	ctx, span := tracer.Start(ctx, "client:CategoryHelpText", trace.WithAttributes(
		attribute.String("identifier", identifier),
	))
	defer span.End()

	doc, err := c.fetchCreateForm(ctx, identifier)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch create form")
		return "", err
	}

	help := doc.Find("#part_base_category_help")
	if len(help.Nodes) == 0 {
		span.AddEvent("no category help text")
		return "", nil
	}
	return htmlutil.CleanText(help.Text()), nil
}

type CreatePartOptions struct {
	Identifier string
	Quantity   int
	// rendered category path ("Parent -> Leaf" or just "Leaf"), ""
	// leaves the form's preselected category untouched
	Category string
}

// CreatePart drives the provider create form over HTTP: load it, carry
// its fields over, fill in the stock amount and category, submit. the
// catalog creates a missing category on demand when the submitted text
// names one it does not have yet.
func (c *Client) CreatePart(ctx context.Context, opts CreatePartOptions) error {
	ctx, span := tracer.Start(ctx, "client:CreatePart", trace.WithAttributes(
		attribute.String("identifier", opts.Identifier),
		attribute.Int("quantity", opts.Quantity),
	))
	defer span.End()

	doc, err := c.fetchCreateForm(ctx, opts.Identifier)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch create form")
		return err
	}
	if len(doc.Find("#part_base_save").Nodes) == 0 {
		span.SetStatus(codes.Error, "create form not found")
		return fmt.Errorf("create form not found for %s", opts.Identifier)
	}

	form := collectFormValues(doc)

	// a fresh stock lot, the form itself starts with none
	form.Set("part_base[partLots][0][amount][value]", strconv.Itoa(opts.Quantity))
	form.Set("part_base[partLots][0][storage_location]", "")

	if opts.Category != "" {
		form.Set("part_base[category]", resolveCategoryValue(doc, opts.Category))
	}
	form.Set("part_base[save]", "")

	res, err := c.Http.R().
		SetContext(ctx).
		SetHeader("content-type", "application/x-www-form-urlencoded").
		SetBody(form.Encode()).
		Post(createFormEndpoint(opts.Identifier))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to submit create form")
		return err
	}
	if redirectedToLogin(res) {
		span.SetStatus(codes.Error, ErrSessionExpired.Error())
		return ErrSessionExpired
	}

	resultDoc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse create response html")
		return err
	}
	if feedback := formFeedback(resultDoc); feedback != "" {
		span.SetStatus(codes.Error, "catalog rejected the part")
		return fmt.Errorf("catalog rejected %s: %s", opts.Identifier, feedback)
	}
	if res.StatusCode() >= 400 {
		span.SetStatus(codes.Error, "unexpected status")
		return fmt.Errorf("create returned status %d for %s", res.StatusCode(), opts.Identifier)
	}

	return nil
}

// carries the prefilled provider form over into the submission so only
// the fields we touch change
func collectFormValues(doc *goquery.Document) url.Values {
	form := url.Values{}

	doc.Find(`input[name^="part_base"]`).Each(func(_ int, s *goquery.Selection) {
		name := s.AttrOr("name", "")
		inputType := s.AttrOr("type", "text")
		switch inputType {
		case "submit", "button", "file":
			return
		case "checkbox", "radio":
			if _, checked := s.Attr("checked"); !checked {
				return
			}
		}
		form.Set(name, s.AttrOr("value", ""))
	})

	doc.Find(`select[name^="part_base"]`).Each(func(_ int, s *goquery.Selection) {
		name := s.AttrOr("name", "")
		selected := s.Find("option[selected]")
		form.Set(name, selected.AttrOr("value", ""))
	})

	doc.Find(`textarea[name^="part_base"]`).Each(func(_ int, s *goquery.Selection) {
		form.Set(s.AttrOr("name", ""), s.Text())
	})

	return form
}

// the category select lists existing categories, an exact
// (case-insensitive) match on the rendered path reuses that entry.
// anything else is submitted as raw text for on-demand creation.
func resolveCategoryValue(doc *goquery.Document, category string) string {
	value := category
	doc.Find("select#part_base_category option").Each(func(_ int, s *goquery.Selection) {
		if strings.EqualFold(htmlutil.CleanText(s.Text()), category) {
			if v, ok := s.Attr("value"); ok {
				value = v
			}
		}
	})
	return value
}

func formFeedback(doc *goquery.Document) string {
	feedback := doc.Find(".invalid-feedback, .alert-danger").First()
	if len(feedback.Nodes) == 0 {
		return ""
	}
	return htmlutil.CleanText(feedback.Text())
}

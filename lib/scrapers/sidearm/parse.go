package sidearm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"rostergraph/internal/roster"
	"rostergraph/lib/htmlutil"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DefaultTableSelector matches the roster table of the sidearm "grid template 1" layout.
const DefaultTableSelector = "table.sidearm-table.sidearm-table-grid-template-1.sidearm-table-grid-template-1-breakdown-large"

var ErrTableNotFound = errors.New("roster table not found")

// YearFromLocator returns the last path segment of a url or file path.
func YearFromLocator(locator string) string {
	if u, err := url.Parse(locator); err == nil && u.Scheme != "" {
		return path.Base(strings.TrimSuffix(u.Path, "/"))
	}
	base := filepath.Base(strings.TrimSuffix(locator, "/"))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ParsePage reads the first table matching the selector, the header row is dropped.
func ParsePage(ctx context.Context, locator string, body io.Reader, selector string) (roster.Page, error) {
	ctx, span := tracer.Start(ctx, "ParsePage")
	defer span.End()
	span.SetAttributes(attribute.String("locator", locator))

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return roster.Page{}, err
	}

	table := doc.Find(selector).First()
	if table.Length() == 0 {
		err := fmt.Errorf("%w: %s (selector %q)", ErrTableNotFound, locator, selector)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to find roster table")
		return roster.Page{}, err
	}

	page := roster.Page{
		Locator: locator,
		Year:    YearFromLocator(locator),
	}
	for _, cells := range htmlutil.TableRows(ctx, table, 1) {
		page.Rows = append(page.Rows, roster.Row{Cells: cells})
	}
	span.SetAttributes(attribute.Int("rows", len(page.Rows)))
	return page, nil
}

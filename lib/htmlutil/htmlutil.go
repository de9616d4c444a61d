package htmlutil

import (
	"bytes"
	"context"
	"rostergraph/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("rostergraph.lib.htmlutil")

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

// CellTexts returns the text of every cell of a table row with
// embedded line breaks removed, in document order.
func CellTexts(row *goquery.Selection) []string {
	cells := row.Find("td").Nodes
	out := make([]string, len(cells))
	for i, n := range cells {
		out[i] = textutil.StripLineBreaks(GetText(n))
	}
	return out
}

// TableRows returns the cell texts of every row of the table, the first
// `skip` rows (usually the header) are dropped.
func TableRows(ctx context.Context, table *goquery.Selection, skip int) [][]string {
	_, span := tracer.Start(ctx, "TableRows")
	defer span.End()

	rows := table.Find("tr")
	var out [][]string
	rows.Each(func(i int, row *goquery.Selection) {
		if i < skip {
			return
		}
		out = append(out, CellTexts(row))
	})

	span.SetAttributes(
		attribute.Int("rows.total", rows.Length()),
		attribute.Int("rows.kept", len(out)),
	)
	return out
}

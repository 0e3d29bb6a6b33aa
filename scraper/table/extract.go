package table

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"boxoffice-report/models"
	"boxoffice-report/scraper/browser"
)

// Extract reads the session's current document and returns the rows matching
// rowSelector that have at least minColumns cells.
func Extract(ctx context.Context, session browser.Session, rowSelector string, minColumns int) ([]models.RawTableRow, error) {
	doc, err := session.HTML(ctx)
	if err != nil {
		return nil, err
	}
	return ParseRows(doc, rowSelector, minColumns)
}

// ParseRows is Extract over an already rendered document. Rows with fewer
// than minColumns td cells (headers, footers, "no data" rows) are skipped.
func ParseRows(document, rowSelector string, minColumns int) ([]models.RawTableRow, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("table: parse document: %w", err)
	}

	var rows []models.RawTableRow
	doc.Find(rowSelector).Each(func(_ int, tr *goquery.Selection) {
		cells := tr.ChildrenFiltered("td")
		if cells.Length() < minColumns {
			return
		}
		row := make(models.RawTableRow, 0, cells.Length())
		cells.Each(func(_ int, td *goquery.Selection) {
			row = append(row, CellText(td))
		})
		rows = append(rows, row)
	})
	return rows, nil
}

// blockElements break lines the way a browser's innerText does.
var blockElements = map[string]bool{
	"p": true, "div": true, "li": true, "ul": true, "ol": true,
	"dl": true, "dt": true, "dd": true, "table": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// CellText approximates the rendered text of a cell: <br> and block
// boundaries become line breaks, whitespace inside a line collapses, and
// blank lines are dropped.
func CellText(s *goquery.Selection) string {
	var b strings.Builder
	for _, n := range s.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeText(&b, c)
		}
	}

	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		switch n.Data {
		case "br":
			b.WriteByte('\n')
			return
		case "script", "style":
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteByte('\n')
	}
}

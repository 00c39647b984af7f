package history

import (
	"github.com/PuerkitoBio/goquery"

	"yahoofs/document"
	"yahoofs/utils"
)

// Page is the raw content of one history table: header labels and the cell
// text of every body row.
type Page struct {
	Headers []string
	Rows    [][]string
}

// ExtractTable reads the history table addressed by anchor. Header labels
// lose their footnote markers and cell text loses thousands separators.
func ExtractTable(doc *document.Document, anchor document.Anchor) (Page, error) {
	table, err := doc.FindAnchor(anchor)
	if err != nil {
		return Page{}, err
	}

	var page Page
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		page.Headers = append(page.Headers, utils.StripMarker(document.Text(th)))
	})

	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := make([]string, 0, len(page.Headers))
		tr.ChildrenFiltered("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, utils.StripSeparators(document.Text(td)))
		})
		page.Rows = append(page.Rows, cells)
	})
	return page, nil
}

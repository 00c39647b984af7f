package finance

import (
	"github.com/PuerkitoBio/goquery"

	"yahoofs/document"
	"yahoofs/utils"
)

// ExtractAnalystTable builds a row key -> column -> value mapping from every
// table whose first header cell, whitespace collapsed, equals label. Column labels come from the
// header row and align with body cells by position. Matching tables
// accumulate, later row keys overwriting earlier ones. An empty table is
// returned when nothing matches.
func ExtractAnalystTable(doc *document.Document, label string) AnalystTable {
	result := make(AnalystTable)

	doc.FindAll("table").Each(func(_ int, table *goquery.Selection) {
		header := table.Find("thead tr").First().ChildrenFiltered("th")
		if header.Length() == 0 || utils.CleanText(header.Eq(0).Text()) != label {
			return
		}

		columns := make([]string, 0, header.Length()-1)
		header.Slice(1, goquery.ToEnd).Each(func(_ int, th *goquery.Selection) {
			columns = append(columns, document.Text(th))
		})

		table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.ChildrenFiltered("td")
			if cells.Length() == 0 {
				return
			}
			record := make(Record, len(columns))
			cells.Slice(1, goquery.ToEnd).Each(func(i int, td *goquery.Selection) {
				if i < len(columns) {
					record[columns[i]] = document.Text(td)
				}
			})
			result[document.Text(cells.Eq(0))] = record
		})
	})

	return result
}

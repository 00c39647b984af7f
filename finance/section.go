package finance

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"yahoofs/document"
	"yahoofs/utils"
)

const headingSelector = "h1, h2, h3, h4, h5, h6"

// section returns the body that follows the first heading whose text equals
// label exactly once runs of whitespace are collapsed, so a heading wrapped
// across source lines still matches.
func section(doc *document.Document, label string) (*goquery.Selection, error) {
	var body *goquery.Selection
	doc.FindAll(headingSelector).EachWithBreak(func(_ int, h *goquery.Selection) bool {
		if utils.CleanText(h.Text()) == label {
			body = h.Next()
			return false
		}
		return true
	})
	if body == nil {
		return nil, fmt.Errorf("%w: %q", ErrSectionNotFound, label)
	}
	return body, nil
}

// eachRow calls fn with the key and value of every table body row in the
// section until fn returns false.
func eachRow(body *goquery.Selection, fn func(key, value string) bool) {
	body.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		more := true
		table.Find("tbody tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
			cells := row.ChildrenFiltered("td")
			if cells.Length() < 2 {
				return true
			}
			more = fn(rowLabel(cells.Eq(0)), document.Text(cells.Eq(1)))
			return more
		})
		return more
	})
}

// rowLabel prefers the label element inside the cell; the rest of the cell
// holds footnote markers.
func rowLabel(cell *goquery.Selection) string {
	if span := cell.Find("span").First(); span.Length() > 0 {
		return document.Text(span)
	}
	return document.Text(cell)
}

// ExtractSection collects every row of every table in the named section into
// one Record. Later duplicate labels overwrite earlier ones.
func ExtractSection(doc *document.Document, heading string) (Record, error) {
	body, err := section(doc, heading)
	if err != nil {
		return nil, err
	}

	record := make(Record)
	eachRow(body, func(key, value string) bool {
		record[key] = value
		return true
	})
	return record, nil
}

// LookupSection returns the value of the first row labelled row in the named
// section. ok is false when the section exists but has no such row; fields
// vary by ticker, so that is not an error. Placeholder values are returned
// verbatim.
func LookupSection(doc *document.Document, heading, row string) (value string, ok bool, err error) {
	body, err := section(doc, heading)
	if err != nil {
		return "", false, err
	}

	eachRow(body, func(key, v string) bool {
		if key == row {
			value, ok = v, true
			return false
		}
		return true
	})
	return value, ok, nil
}

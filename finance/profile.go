package finance

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"yahoofs/document"
)

// Address is the company location block of the profile page.
type Address struct {
	Street  string `json:"street,omitempty"`
	Address string `json:"address,omitempty"`
	Country string `json:"country,omitempty"`
}

// CompanyAddress reads the address element's child nodes by position. The
// block renders as text nodes separated by <br> and comment markers, with the
// street, city line and country at the 2nd, 6th and 10th child.
func CompanyAddress(doc *document.Document, anchor document.Anchor) (Address, error) {
	sel, err := doc.FindAnchor(anchor)
	if err != nil {
		return Address{}, err
	}

	var addr Address
	sel.Contents().Each(func(i int, node *goquery.Selection) {
		switch i + 1 {
		case 2:
			addr.Street = nodeText(node)
		case 6:
			addr.Address = nodeText(node)
		case 10:
			addr.Country = nodeText(node)
		}
	})
	return addr, nil
}

func nodeText(node *goquery.Selection) string {
	if goquery.NodeName(node) == "#text" {
		return strings.TrimSpace(node.Nodes[0].Data)
	}
	return document.Text(node)
}

// KeyExecutives reads the executives table: one Record per body row keyed by
// the header labels.
func KeyExecutives(doc *document.Document, anchor document.Anchor) ([]Record, error) {
	table, err := doc.FindAnchor(anchor)
	if err != nil {
		return nil, err
	}

	var headings []string
	table.Find("thead tr").First().ChildrenFiltered("th").Each(func(_ int, th *goquery.Selection) {
		headings = append(headings, document.Text(th))
	})

	executives := make([]Record, 0)
	table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
		record := make(Record, len(headings))
		row.ChildrenFiltered("td").Each(func(i int, td *goquery.Selection) {
			if i < len(headings) {
				record[headings[i]] = document.Text(td)
			}
		})
		executives = append(executives, record)
	})
	return executives, nil
}

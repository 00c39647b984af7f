// Package finance extracts fields, statistics sections and analyst tables
// from parsed quote pages.
package finance

import (
	"errors"

	"yahoofs/document"
)

// ErrSectionNotFound is returned when no heading on the page carries the
// requested label.
var ErrSectionNotFound = errors.New("section not found")

// Record maps a field label to its rendered value.
type Record map[string]string

// AnalystTable maps a row key (for example a fiscal period label) to the
// row's column label -> value record.
type AnalystTable map[string]Record

// Locate returns the text of the element addressed by anchor. A missing
// anchor means the page shape changed, so the document.ErrNotFound is
// returned as is and no default is substituted.
func Locate(doc *document.Document, anchor document.Anchor) (string, error) {
	sel, err := doc.FindAnchor(anchor)
	if err != nil {
		return "", err
	}
	return document.Text(sel), nil
}

// Package document wraps a parsed markup page and exposes the small query
// contract the extractors rely on: element lookup by tag and attribute value,
// and visible text extraction.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrNotFound is returned when a required single-element lookup has no match.
var ErrNotFound = errors.New("element not found")

// Anchor addresses one element by tag and attribute value.
type Anchor struct {
	Tag       string `yaml:"tag" json:"tag"`
	Attribute string `yaml:"attribute" json:"attribute"`
	Value     string `yaml:"value" json:"value"`
}

func (a Anchor) String() string {
	return fmt.Sprintf("<%s %s=%q>", a.Tag, a.Attribute, a.Value)
}

// Document is an immutable parsed page. Callers must not mutate the
// selections it hands out.
type Document struct {
	doc *goquery.Document
}

// Parse reads and parses markup from r.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{doc: doc}, nil
}

// FromBytes parses a fetched page body.
func FromBytes(body []byte) (*Document, error) {
	return Parse(bytes.NewReader(body))
}

// Find returns the first element, in document order, with the given tag whose
// attribute equals value. A class attribute also matches on any single class
// token, so Find("table", "class", "W(100%)") matches class="W(100%) M(0)".
func (d *Document) Find(tag, attribute, value string) (*goquery.Selection, error) {
	match := d.doc.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		got, ok := s.Attr(attribute)
		if !ok {
			return false
		}
		if got == value {
			return true
		}
		if attribute == "class" {
			for _, token := range strings.Fields(got) {
				if token == value {
					return true
				}
			}
		}
		return false
	}).First()

	if match.Length() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, Anchor{Tag: tag, Attribute: attribute, Value: value})
	}
	return match, nil
}

// FindAnchor is Find addressed by an Anchor.
func (d *Document) FindAnchor(a Anchor) (*goquery.Selection, error) {
	return d.Find(a.Tag, a.Attribute, a.Value)
}

// FindAll returns every element with the given tag in document order.
func (d *Document) FindAll(tag string) *goquery.Selection {
	return d.doc.Find(tag)
}

// FindAllWith returns every element with the given tag that carries attribute.
func (d *Document) FindAllWith(tag, attribute string) *goquery.Selection {
	return d.doc.Find(tag).FilterFunction(func(_ int, s *goquery.Selection) bool {
		_, ok := s.Attr(attribute)
		return ok
	})
}

// Text returns the visible text of sel with entities decoded and surrounding
// whitespace trimmed.
func Text(sel *goquery.Selection) string {
	if sel == nil {
		return ""
	}
	return strings.TrimSpace(sel.Text())
}

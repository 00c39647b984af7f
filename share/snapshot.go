// Package share reads quote, statistics, profile, analyst and history data
// for one ticker out of its fetched pages.
package share

import (
	"errors"
	"fmt"
	"strings"

	"yahoofs/config"
	"yahoofs/document"
	"yahoofs/finance"
	"yahoofs/utils"
)

var (
	ErrPageNotLoaded = errors.New("page not loaded")
	ErrUnknownField  = errors.New("unknown field")
)

// Page names one of the per-ticker pages.
type Page string

const (
	PageSummary    Page = "summary"
	PageStatistics Page = "statistics"
	PageProfile    Page = "profile"
	PageAnalysts   Page = "analysts"
)

// AllPages is loaded when no pages are named.
var AllPages = []Page{PageSummary, PageStatistics, PageProfile, PageAnalysts}

// Snapshot is an immutable set of parsed pages for one ticker. Refreshing is
// loading a new Snapshot.
type Snapshot struct {
	Ticker  string
	docs    map[Page]*document.Document
	anchors config.Anchors
}

// NewSnapshot assembles a snapshot from already parsed pages.
func NewSnapshot(ticker string, anchors config.Anchors, docs map[Page]*document.Document) *Snapshot {
	own := make(map[Page]*document.Document, len(docs))
	for p, d := range docs {
		own[p] = d
	}
	return &Snapshot{Ticker: ticker, docs: own, anchors: anchors}
}

// Document returns the parsed page p.
func (s *Snapshot) Document(p Page) (*document.Document, error) {
	doc, ok := s.docs[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageNotLoaded, p)
	}
	return doc, nil
}

func (s *Snapshot) anchor(name string) (document.Anchor, error) {
	a, ok := s.anchors[name]
	if !ok {
		return document.Anchor{}, fmt.Errorf("%w: anchor %q", ErrUnknownField, name)
	}
	return a, nil
}

func (s *Snapshot) locate(p Page, anchorName string) (string, error) {
	doc, err := s.Document(p)
	if err != nil {
		return "", err
	}
	a, err := s.anchor(anchorName)
	if err != nil {
		return "", err
	}
	return finance.Locate(doc, a)
}

// QuoteField reads one QuoteFields entry from the summary page.
func (s *Snapshot) QuoteField(name string) (string, error) {
	field, ok := QuoteFields[name]
	if !ok {
		return "", fmt.Errorf("%w: quote field %q", ErrUnknownField, name)
	}

	text, err := s.locate(PageSummary, field.Anchor)
	if err != nil {
		return "", fmt.Errorf("quote field %s: %w", name, err)
	}
	if field.Split {
		part, ok := utils.Part(text, field.Part)
		if !ok {
			return "", fmt.Errorf("quote field %s: %w: no part %d in %q", name, document.ErrNotFound, field.Part, text)
		}
		text = part
	}
	if field.Trim != "" {
		text = strings.Trim(text, field.Trim)
	}
	if field.StripCommas {
		text = utils.StripSeparators(text)
	}
	return text, nil
}

// Quote reads every QuoteFields entry. Any missing anchor fails the whole
// quote.
func (s *Snapshot) Quote() (finance.Record, error) {
	quote := make(finance.Record, len(QuoteFields))
	for name := range QuoteFields {
		v, err := s.QuoteField(name)
		if err != nil {
			return nil, err
		}
		quote[name] = v
	}
	return quote, nil
}

// Statistic reads one StatisticFields entry. ok is false when the section
// exists but this ticker has no such row.
func (s *Snapshot) Statistic(name string) (value string, ok bool, err error) {
	field, known := StatisticFields[name]
	if !known {
		return "", false, fmt.Errorf("%w: statistic %q", ErrUnknownField, name)
	}
	return s.Lookup(field.Heading, field.Row)
}

// Lookup reads an arbitrary row of an arbitrary statistics section.
func (s *Snapshot) Lookup(heading, row string) (string, bool, error) {
	doc, err := s.Document(PageStatistics)
	if err != nil {
		return "", false, err
	}
	return finance.LookupSection(doc, heading, row)
}

// Section reads every row of one statistics section.
func (s *Snapshot) Section(heading string) (finance.Record, error) {
	doc, err := s.Document(PageStatistics)
	if err != nil {
		return nil, err
	}
	return finance.ExtractSection(doc, heading)
}

// Statistics reads every StatisticSections section, keyed by heading.
func (s *Snapshot) Statistics() (map[string]finance.Record, error) {
	out := make(map[string]finance.Record, len(StatisticSections))
	for _, heading := range StatisticSections {
		record, err := s.Section(heading)
		if err != nil {
			return nil, err
		}
		out[heading] = record
	}
	return out, nil
}

// Analysts reads one AnalystTables entry, or an arbitrary header label when
// name is not a known table.
func (s *Snapshot) Analysts(name string) (finance.AnalystTable, error) {
	doc, err := s.Document(PageAnalysts)
	if err != nil {
		return nil, err
	}
	label, ok := AnalystTables[name]
	if !ok {
		label = name
	}
	return finance.ExtractAnalystTable(doc, label), nil
}

// Profile is the company information of the profile page.
type Profile struct {
	Name       string           `json:"name"`
	Address    finance.Address  `json:"address"`
	Phone      string           `json:"phone"`
	Website    string           `json:"website"`
	Sector     string           `json:"sector"`
	Industry   string           `json:"industry"`
	Employees  string           `json:"employees"`
	Executives []finance.Record `json:"executives"`
}

// Profile reads the profile page. Any missing anchor fails the whole profile.
func (s *Snapshot) Profile() (*Profile, error) {
	doc, err := s.Document(PageProfile)
	if err != nil {
		return nil, err
	}

	p := &Profile{}
	scalars := []struct {
		anchor string
		dst    *string
	}{
		{"company_name", &p.Name},
		{"company_phone", &p.Phone},
		{"company_website", &p.Website},
		{"sector", &p.Sector},
		{"industry", &p.Industry},
		{"employees", &p.Employees},
	}
	for _, f := range scalars {
		if *f.dst, err = s.locate(PageProfile, f.anchor); err != nil {
			return nil, fmt.Errorf("profile %s: %w", f.anchor, err)
		}
	}

	a, err := s.anchor("company_address")
	if err != nil {
		return nil, err
	}
	if p.Address, err = finance.CompanyAddress(doc, a); err != nil {
		return nil, fmt.Errorf("profile company_address: %w", err)
	}

	if a, err = s.anchor("key_executives"); err != nil {
		return nil, err
	}
	if p.Executives, err = finance.KeyExecutives(doc, a); err != nil {
		return nil, fmt.Errorf("profile key_executives: %w", err)
	}
	return p, nil
}

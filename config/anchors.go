package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"yahoofs/document"
)

// Anchors maps a logical element name to where it lives on its page.
type Anchors map[string]document.Anchor

// DefaultAnchors locates the quote summary and profile facts. The
// data-reactid values are generated by the site's renderer and change with
// its markup; revalidate them against live pages and override them through
// ANCHORS_FILE rather than editing code.
var DefaultAnchors = Anchors{
	// summary page
	"exchange_currency":    {Tag: "span", Attribute: "data-reactid", Value: "9"},
	"price":                {Tag: "span", Attribute: "data-reactid", Value: "14"},
	"change":               {Tag: "span", Attribute: "data-reactid", Value: "17"},
	"market_notice":        {Tag: "div", Attribute: "id", Value: "quote-market-notice"},
	"previous_close":       {Tag: "td", Attribute: "data-test", Value: "PREV_CLOSE-value"},
	"open":                 {Tag: "td", Attribute: "data-test", Value: "OPEN-value"},
	"bid":                  {Tag: "td", Attribute: "data-test", Value: "BID-value"},
	"ask":                  {Tag: "td", Attribute: "data-test", Value: "ASK-value"},
	"day_range":            {Tag: "td", Attribute: "data-test", Value: "DAYS_RANGE-value"},
	"fifty_two_week_range": {Tag: "td", Attribute: "data-test", Value: "FIFTY_TWO_WK_RANGE-value"},
	"volume":               {Tag: "td", Attribute: "data-test", Value: "TD_VOLUME-value"},
	"avg_daily_volume":     {Tag: "td", Attribute: "data-test", Value: "AVERAGE_VOLUME_3MONTH-value"},

	// profile page
	"company_name":    {Tag: "h3", Attribute: "data-reactid", Value: "6"},
	"company_address": {Tag: "p", Attribute: "data-reactid", Value: "8"},
	"company_phone":   {Tag: "a", Attribute: "data-reactid", Value: "15"},
	"company_website": {Tag: "a", Attribute: "target", Value: "_blank"},
	"sector":          {Tag: "strong", Attribute: "data-reactid", Value: "21"},
	"industry":        {Tag: "strong", Attribute: "data-reactid", Value: "25"},
	"employees":       {Tag: "strong", Attribute: "data-reactid", Value: "29"},
	"key_executives":  {Tag: "table", Attribute: "class", Value: "W(100%)"},

	// history page
	"history_table": {Tag: "table", Attribute: "class", Value: "W(100%)"},
}

// Clone returns a copy that can be modified without touching a.
func (a Anchors) Clone() Anchors {
	out := make(Anchors, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// LoadAnchors returns DefaultAnchors with the entries of the YAML file at
// path layered on top. An empty path returns the defaults.
//
//	price:
//	  tag: span
//	  attribute: data-reactid
//	  value: "15"
func LoadAnchors(path string) (Anchors, error) {
	anchors := DefaultAnchors.Clone()
	if path == "" {
		return anchors, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read anchors file: %w", err)
	}

	var overrides Anchors
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse anchors file: %w", err)
	}

	for name, a := range overrides {
		if a.Tag == "" || a.Attribute == "" {
			return nil, fmt.Errorf("anchor %q: tag and attribute are required", name)
		}
		anchors[name] = a
	}
	return anchors, nil
}

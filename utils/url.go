package utils

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultBaseURL is the site serving the quote pages.
const DefaultBaseURL = "https://finance.yahoo.com"

// URLBuilder builds the page URLs for a ticker.
type URLBuilder struct {
	Base string
}

// NewURLBuilder returns a builder rooted at base, or DefaultBaseURL when base
// is empty.
func NewURLBuilder(base string) URLBuilder {
	if base == "" {
		base = DefaultBaseURL
	}
	return URLBuilder{Base: strings.TrimRight(base, "/")}
}

func (b URLBuilder) Summary(ticker string) string {
	return b.Base + "/quote/" + url.PathEscape(ticker)
}

func (b URLBuilder) Statistics(ticker string) string {
	return b.Summary(ticker) + "/key-statistics?p=" + url.QueryEscape(ticker)
}

func (b URLBuilder) Profile(ticker string) string {
	return b.Summary(ticker) + "/profile?p=" + url.QueryEscape(ticker)
}

func (b URLBuilder) Analysts(ticker string) string {
	return b.Summary(ticker) + "/analysts?p=" + url.QueryEscape(ticker)
}

// History builds a daily-frequency history page URL for the Unix second
// bounds period1 and period2.
func (b URLBuilder) History(ticker string, period1, period2 int64) string {
	params := url.Values{}
	params.Add("period1", strconv.FormatInt(period1, 10))
	params.Add("period2", strconv.FormatInt(period2, 10))
	params.Add("interval", "1d")
	params.Add("filter", "history")
	params.Add("frequency", "1d")
	return b.Summary(ticker) + "/history?" + params.Encode()
}

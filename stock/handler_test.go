package stock

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"yahoofs/config"
	"yahoofs/document"
	"yahoofs/fetch"
	"yahoofs/finance"
	"yahoofs/history"
	"yahoofs/share"
	"yahoofs/utils"
)

const base = "http://quotes.test"

var urls = utils.NewURLBuilder(base)

var pages = map[string]string{
	urls.Summary("AAPL"): `<html><body>
<span data-reactid="9">NasdaqGS - NasdaqGS Real Time Price. Currency in USD</span>
<span data-reactid="14">174.35</span>
<span data-reactid="17">+0.89 (+0.51%)</span>
<div id="quote-market-notice"><span>As of  4:00PM EDT. Market open.</span></div>
<table><tbody>
<tr><td data-test="PREV_CLOSE-value">173.46</td><td data-test="OPEN-value">172.50</td></tr>
<tr><td data-test="BID-value">174.30 x 100</td><td data-test="ASK-value">174.35 x 800</td></tr>
<tr><td data-test="DAYS_RANGE-value">171.96 - 174.30</td><td data-test="FIFTY_TWO_WK_RANGE-value">116.33 - 177.20</td></tr>
<tr><td data-test="TD_VOLUME-value">25,555,934</td><td data-test="AVERAGE_VOLUME_3MONTH-value">28,430,170</td></tr>
</tbody></table>
</body></html>`,
	urls.Statistics("AAPL"): `<html><body>
<h2>Valuation Measures</h2>
<div><table><tbody><tr><td><span>Market Cap (intraday)</span></td><td>889.56B</td></tr></tbody></table></div>
<h2>Financial Highlights</h2>
<div><table><tbody><tr><td><span>Revenue</span></td><td>239.18B</td></tr></tbody></table></div>
<h2>Trading Information</h2>
<div><table><tbody><tr><td><span>Beta</span></td><td>1.25</td></tr></tbody></table></div>
</body></html>`,
	urls.Analysts("AAPL"): `<html><body><table>
<thead><tr><th>Earnings Estimate</th><th>Current Qtr.</th></tr></thead>
<tbody><tr><td>Avg. Estimate</td><td>1.42</td></tr></tbody>
</table></body></html>`,
}

const historyPage = `<html><body><table class="W(100%)">
<thead><tr><th>Date</th><th>Open</th><th>High</th><th>Low</th><th>Close*</th><th>Adj Close**</th><th>Volume</th></tr></thead>
<tbody>
<tr><td>Jan 05, 2018</td><td>172.50</td><td>174.30</td><td>171.96</td><td>174.18</td><td>173.50</td><td>25,000,000</td></tr>
</tbody></table></body></html>`

// fakeFetcher answers like the site: known pages, any history window, and a
// 404 status for everything else.
type fakeFetcher struct{}

func (fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	if strings.Contains(url, "/history?") {
		return []byte(historyPage), nil
	}
	if page, ok := pages[url]; ok {
		return []byte(page), nil
	}
	return nil, &fetch.StatusError{URL: url, StatusCode: http.StatusNotFound}
}

func newRouter() *mux.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := share.NewClient(fakeFetcher{}, urls, config.DefaultAnchors, 0, logger)
	r := mux.NewRouter()
	NewHandler(client, nil, logger).Routes(r)
	return r
}

func get(t *testing.T, r http.Handler, target string) (int, map[string]interface{}) {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("%s: expected JSON content type, got %q", target, ct)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("%s: invalid JSON body %q: %v", target, rec.Body.String(), err)
	}
	return rec.Code, body
}

func TestRoutes(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name   string
		target string
		status int
		key    string
		want   interface{}
	}{
		{"quote", "/quote/aapl", http.StatusOK, "price", "174.35"},
		{"quote timezone", "/quote/AAPL", http.StatusOK, "trade_timezone", "EDT"},
		{"quote field", "/quote/AAPL/volume", http.StatusOK, "volume", "25555934"},
		{"unknown quote field", "/quote/AAPL/colour", http.StatusNotFound, "", nil},
		{"upstream 404", "/quote/NOPE", http.StatusBadGateway, "", nil},
		{"statistic", "/statistics/AAPL/market_cap", http.StatusOK, "market_cap", "889.56B"},
		{"statistic row missing", "/statistics/AAPL/forward_pe", http.StatusNotFound, "", nil},
		{"unknown statistic", "/statistics/AAPL/colour", http.StatusNotFound, "", nil},
		{"custom row", "/statistics/AAPL?heading=Trading+Information&row=Beta", http.StatusOK, "Beta", "1.25"},
		{"custom section", "/statistics/AAPL?heading=Financial+Highlights", http.StatusOK, "Revenue", "239.18B"},
		{"missing section", "/statistics/AAPL?heading=Balance+Sheet", http.StatusNotFound, "", nil},
		{"row without heading", "/statistics/AAPL?row=Beta", http.StatusBadRequest, "", nil},
		{"profile upstream missing", "/profile/AAPL", http.StatusBadGateway, "", nil},
		{"analysts by name", "/analysts/AAPL/earnings_estimate", http.StatusOK, "Avg. Estimate", map[string]interface{}{"Current Qtr.": "1.42"}},
		{"history missing from", "/history/AAPL", http.StatusBadRequest, "", nil},
		{"history bad date", "/history/AAPL?from=05/01/2018", http.StatusBadRequest, "", nil},
		{"history bad mode", "/history/AAPL?from=2018-01-05&mode=weekly", http.StatusBadRequest, "", nil},
		{"history missing to", "/history/AAPL?from=2018-01-05&mode=range", http.StatusBadRequest, "", nil},
		{"history reversed range", "/history/AAPL?from=2018-02-01&to=2018-01-01&mode=range", http.StatusBadRequest, "", nil},
		{"history bad typed flag", "/history/AAPL?from=2018-01-05&typed=maybe", http.StatusBadRequest, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, r, tt.target)
			if status != tt.status {
				t.Fatalf("expected status %d, got %d: %v", tt.status, status, body)
			}
			if tt.status != http.StatusOK {
				if body["error"] == "" || body["error"] == nil {
					t.Errorf("expected error message, got %v", body)
				}
				return
			}
			got, _ := json.Marshal(body[tt.key])
			want, _ := json.Marshal(tt.want)
			if string(got) != string(want) {
				t.Errorf("%s: expected %s, got %s", tt.key, want, got)
			}
		})
	}
}

func TestStatisticsAllSections(t *testing.T) {
	status, body := get(t, newRouter(), "/statistics/AAPL")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	for _, heading := range share.StatisticSections {
		if _, ok := body[heading].(map[string]interface{}); !ok {
			t.Errorf("missing section %q in %v", heading, body)
		}
	}
}

func TestAnalystsEmpty(t *testing.T) {
	status, body := get(t, newRouter(), "/analysts/AAPL/growth_estimates")
	if status != http.StatusOK || len(body) != 0 {
		t.Errorf("expected 200 {}, got %d %v", status, body)
	}
}

func TestHistory(t *testing.T) {
	r := newRouter()

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history/AAPL?from=2018-01-05", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var series []map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &series); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(series) != 1 || series[0]["date"] != "Jan 05 2018" || series[0]["kind"] != "price" {
		t.Errorf("unexpected series %v", series)
	}

	status, body := get(t, r, "/history/AAPL?from=2018-01-05&typed=true")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	bars, _ := body["bars"].([]interface{})
	if len(bars) != 1 {
		t.Fatalf("expected one bar, got %v", body)
	}
	if volume := bars[0].(map[string]interface{})["volume"]; volume != float64(25000000) {
		t.Errorf("expected parsed volume, got %v", volume)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/quote/AAPL", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrapped: %w", finance.ErrSectionNotFound), http.StatusNotFound},
		{errRowNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: x", share.ErrUnknownField), http.StatusNotFound},
		{fmt.Errorf("%w: x", history.ErrInvalidRange), http.StatusBadRequest},
		{history.ErrUnknownMode, http.StatusBadRequest},
		{fmt.Errorf("fetch: %w", &fetch.StatusError{URL: "u", StatusCode: 503}), http.StatusBadGateway},
		{fmt.Errorf("quote field price: %w", document.ErrNotFound), http.StatusBadGateway},
		{history.ErrUnclassifiedRow, http.StatusBadGateway},
		{fmt.Errorf("%w: summary", share.ErrPageNotLoaded), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.want, got)
		}
	}
}

func TestStatisticsCacheKeysAreDistinct(t *testing.T) {
	keys := []string{
		statisticsKey("AAPL"),
		sectionKey("AAPL", "beta"),
		fieldKey("AAPL", "beta"),
		rowKey("AAPL", "beta", ""),
		rowKey("AAPL", "Trading Information", "Beta"),
		rowKey("AAPL", "Trading Information:Beta", ""),
	}
	seen := map[string]bool{}
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate cache key %q", k)
		}
		seen[k] = true
	}
}

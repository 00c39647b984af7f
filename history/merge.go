package history

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slices"
)

// Placeholder is what the site renders for a value it does not have.
const Placeholder = "-"

// RowDateLayout is the rendered row date once separators are stripped.
const RowDateLayout = "Jan 02 2006"

// ErrUnclassifiedRow is returned for a body row that is neither a two-cell
// dividend row nor a full-width price row.
var ErrUnclassifiedRow = errors.New("unclassified history row")

// Kind tells price rows from dividend rows.
type Kind string

const (
	KindPrice    Kind = "price"
	KindDividend Kind = "dividend"
)

// Row is one entry of a history series. Price rows fill the OHLCV fields,
// dividend rows fill Dividend.
type Row struct {
	Kind     Kind   `json:"kind"`
	Date     string `json:"date"`
	Open     string `json:"open,omitempty"`
	High     string `json:"high,omitempty"`
	Low      string `json:"low,omitempty"`
	Close    string `json:"close,omitempty"`
	AdjClose string `json:"adjClose,omitempty"`
	Volume   string `json:"volume,omitempty"`
	Dividend string `json:"dividend,omitempty"`
}

// Series is a history result, unique by Date.
type Series []Row

// Merge classifies, filters and deduplicates the rows of every page in
// order. A row is kept only if no earlier row has the same Date. Price rows
// with a placeholder in any value column are dropped. ModeRange results are
// sorted by date; other modes keep page order.
func Merge(pages []Page, mode Mode) (Series, error) {
	series := make(Series, 0)
	seen := make(map[string]bool)

	for _, page := range pages {
		for _, cells := range page.Rows {
			row, keep, err := classify(page.Headers, cells)
			if err != nil {
				return nil, err
			}
			if !keep || seen[row.Date] {
				continue
			}
			seen[row.Date] = true
			series = append(series, row)
		}
	}

	if mode == ModeRange {
		if err := sortByDate(series); err != nil {
			return nil, err
		}
	}
	return series, nil
}

func classify(headers, cells []string) (Row, bool, error) {
	switch {
	case len(cells) == 2:
		return Row{Kind: KindDividend, Date: cells[0], Dividend: cells[1]}, true, nil
	case len(cells) > 2 && len(cells) == len(headers):
		for _, c := range cells[1:] {
			if c == Placeholder {
				return Row{}, false, nil
			}
		}
		row := Row{Kind: KindPrice, Date: cells[0]}
		for i, h := range headers {
			setColumn(&row, h, cells[i])
		}
		return row, true, nil
	}
	return Row{}, false, fmt.Errorf("%w: %d cells for %d columns: %q", ErrUnclassifiedRow, len(cells), len(headers), cells)
}

func setColumn(row *Row, header, value string) {
	switch strings.ToLower(strings.TrimSpace(header)) {
	case "open":
		row.Open = value
	case "high":
		row.High = value
	case "low":
		row.Low = value
	case "close":
		row.Close = value
	case "adj close", "adj. close":
		row.AdjClose = value
	case "volume":
		row.Volume = value
	}
}

func sortByDate(series Series) error {
	dates := make(map[string]time.Time, len(series))
	for _, row := range series {
		t, err := time.Parse(RowDateLayout, row.Date)
		if err != nil {
			return fmt.Errorf("invalid row date %q: %w", row.Date, err)
		}
		dates[row.Date] = t
	}
	slices.SortStableFunc(series, func(a, b Row) int {
		return dates[a.Date].Compare(dates[b.Date])
	})
	return nil
}

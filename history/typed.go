package history

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Bar is a price row with parsed values.
type Bar struct {
	Date     time.Time       `json:"date"`
	Open     decimal.Decimal `json:"open"`
	High     decimal.Decimal `json:"high"`
	Low      decimal.Decimal `json:"low"`
	Close    decimal.Decimal `json:"close"`
	AdjClose decimal.Decimal `json:"adjClose"`
	Volume   int64           `json:"volume"`
}

// Dividend is a dividend row with a parsed amount.
type Dividend struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// Split is a stock split event; Ratio reads like "4:1".
type Split struct {
	Date  time.Time `json:"date"`
	Ratio string    `json:"ratio"`
}

// ErrUnknownEvent is returned for a two-cell event row that is neither a
// dividend nor a stock split.
var ErrUnknownEvent = errors.New("unknown history event")

// TypedSeries splits a series into parsed bars, dividends and splits.
type TypedSeries struct {
	Bars      []Bar      `json:"bars"`
	Dividends []Dividend `json:"dividends"`
	Splits    []Split    `json:"splits"`
}

// Typed parses every row of series.
func Typed(series Series) (TypedSeries, error) {
	out := TypedSeries{
		Bars:      make([]Bar, 0, len(series)),
		Dividends: make([]Dividend, 0),
		Splits:    make([]Split, 0),
	}
	for _, row := range series {
		switch row.Kind {
		case KindPrice:
			bar, err := row.Bar()
			if err != nil {
				return TypedSeries{}, err
			}
			out.Bars = append(out.Bars, bar)
		case KindDividend:
			if row.IsSplit() {
				split, err := row.ParseSplit()
				if err != nil {
					return TypedSeries{}, err
				}
				out.Splits = append(out.Splits, split)
				continue
			}
			div, err := row.ParseDividend()
			if err != nil {
				return TypedSeries{}, err
			}
			out.Dividends = append(out.Dividends, div)
		}
	}
	return out, nil
}

// Bar parses a price row.
func (r Row) Bar() (Bar, error) {
	if r.Kind != KindPrice {
		return Bar{}, fmt.Errorf("row %s is a %s row", r.Date, r.Kind)
	}
	date, err := time.Parse(RowDateLayout, r.Date)
	if err != nil {
		return Bar{}, fmt.Errorf("invalid row date %q: %w", r.Date, err)
	}

	bar := Bar{Date: date}
	fields := []struct {
		name string
		text string
		dst  *decimal.Decimal
	}{
		{"open", r.Open, &bar.Open},
		{"high", r.High, &bar.High},
		{"low", r.Low, &bar.Low},
		{"close", r.Close, &bar.Close},
		{"adj close", r.AdjClose, &bar.AdjClose},
	}
	for _, f := range fields {
		if f.text == "" {
			continue
		}
		d, err := decimal.NewFromString(f.text)
		if err != nil {
			return Bar{}, fmt.Errorf("%s %s: %w", r.Date, f.name, err)
		}
		*f.dst = d
	}
	if r.Volume != "" {
		v, err := strconv.ParseInt(r.Volume, 10, 64)
		if err != nil {
			return Bar{}, fmt.Errorf("%s volume: %w", r.Date, err)
		}
		bar.Volume = v
	}
	return bar, nil
}

// eventDate checks that r is a two-cell event row and parses its date.
func (r Row) eventDate() (time.Time, error) {
	if r.Kind != KindDividend {
		return time.Time{}, fmt.Errorf("row %s is a %s row", r.Date, r.Kind)
	}
	date, err := time.Parse(RowDateLayout, r.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid row date %q: %w", r.Date, err)
	}
	return date, nil
}

// IsSplit reports whether an event row is a stock split, "4:1 Stock Split".
func (r Row) IsSplit() bool {
	return strings.HasSuffix(strings.TrimSpace(r.Dividend), "Stock Split")
}

// ParseDividend parses a dividend row. The amount cell reads like
// "0.63 Dividend"; any other event is ErrUnknownEvent.
func (r Row) ParseDividend() (Dividend, error) {
	date, err := r.eventDate()
	if err != nil {
		return Dividend{}, err
	}
	fields := strings.Fields(r.Dividend)
	if len(fields) != 2 || fields[1] != "Dividend" {
		return Dividend{}, fmt.Errorf("%w: %s %q", ErrUnknownEvent, r.Date, r.Dividend)
	}
	amount, err := decimal.NewFromString(fields[0])
	if err != nil {
		return Dividend{}, fmt.Errorf("%s dividend: %w", r.Date, err)
	}
	return Dividend{Date: date, Amount: amount}, nil
}

// ParseSplit parses a stock split row.
func (r Row) ParseSplit() (Split, error) {
	date, err := r.eventDate()
	if err != nil {
		return Split{}, err
	}
	if !r.IsSplit() {
		return Split{}, fmt.Errorf("%w: %s %q", ErrUnknownEvent, r.Date, r.Dividend)
	}
	ratio := strings.Fields(r.Dividend)[0]
	if !strings.Contains(ratio, ":") {
		return Split{}, fmt.Errorf("%s split: invalid ratio %q", r.Date, ratio)
	}
	return Split{Date: date, Ratio: ratio}, nil
}

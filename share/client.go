package share

import (
	"context"
	"fmt"
	"log/slog"

	"yahoofs/config"
	"yahoofs/document"
	"yahoofs/history"
	"yahoofs/utils"
)

// Fetcher returns the raw markup of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Client loads snapshots and pages through history. Pages are fetched one at
// a time.
type Client struct {
	fetcher   Fetcher
	urls      utils.URLBuilder
	anchors   config.Anchors
	chunkDays int
	logger    *slog.Logger
}

// NewClient creates a Client. A chunkDays of zero or less uses
// history.DefaultChunkDays.
func NewClient(fetcher Fetcher, urls utils.URLBuilder, anchors config.Anchors, chunkDays int, logger *slog.Logger) *Client {
	if chunkDays <= 0 {
		chunkDays = history.DefaultChunkDays
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		fetcher:   fetcher,
		urls:      urls,
		anchors:   anchors,
		chunkDays: chunkDays,
		logger:    logger,
	}
}

func (c *Client) pageURL(p Page, ticker string) (string, error) {
	switch p {
	case PageSummary:
		return c.urls.Summary(ticker), nil
	case PageStatistics:
		return c.urls.Statistics(ticker), nil
	case PageProfile:
		return c.urls.Profile(ticker), nil
	case PageAnalysts:
		return c.urls.Analysts(ticker), nil
	}
	return "", fmt.Errorf("%w: page %q", ErrUnknownField, p)
}

func (c *Client) fetchDocument(ctx context.Context, url string) (*document.Document, error) {
	c.logger.Debug("fetching page", "url", url)
	body, err := c.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	return document.FromBytes(body)
}

// Load fetches and parses the named pages of ticker, or all of them when
// none are named.
func (c *Client) Load(ctx context.Context, ticker string, pages ...Page) (*Snapshot, error) {
	if len(pages) == 0 {
		pages = AllPages
	}

	docs := make(map[Page]*document.Document, len(pages))
	for _, p := range pages {
		if _, done := docs[p]; done {
			continue
		}
		url, err := c.pageURL(p, ticker)
		if err != nil {
			return nil, err
		}
		doc, err := c.fetchDocument(ctx, url)
		if err != nil {
			return nil, err
		}
		docs[p] = doc
	}
	return NewSnapshot(ticker, c.anchors, docs), nil
}

// History fetches the history pages covering from..to (YYYY-MM-DD) and
// merges them. Dates are shifted by the trade timezone read from the
// snapshot's summary page. to is ignored in history.ModeDay.
func (c *Client) History(ctx context.Context, snap *Snapshot, from, to string, mode history.Mode) (history.Series, error) {
	tz, err := snap.QuoteField("trade_timezone")
	if err != nil {
		return nil, err
	}

	start, err := history.ToUTC(from, tz)
	if err != nil {
		return nil, err
	}
	end := start
	if mode != history.ModeDay {
		if end, err = history.ToUTC(to, tz); err != nil {
			return nil, err
		}
	}

	windows, err := history.Windows(mode, start, end, c.chunkDays)
	if err != nil {
		return nil, err
	}

	anchor, err := snap.anchor("history_table")
	if err != nil {
		return nil, err
	}

	pages := make([]history.Page, 0, len(windows))
	for _, w := range windows {
		p1, p2 := w.Period()
		doc, err := c.fetchDocument(ctx, c.urls.History(snap.Ticker, p1, p2))
		if err != nil {
			return nil, err
		}
		page, err := history.ExtractTable(doc, anchor)
		if err != nil {
			return nil, fmt.Errorf("history window %s..%s: %w", w.Start.Format("2006-01-02"), w.End.Format("2006-01-02"), err)
		}
		pages = append(pages, page)
	}

	c.logger.Debug("merging history", "ticker", snap.Ticker, "mode", mode, "windows", len(windows))
	return history.Merge(pages, mode)
}

// Package stock serves the extracted quote data over HTTP.
package stock

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"yahoofs/cache"
	"yahoofs/finance"
	"yahoofs/history"
	"yahoofs/share"
)

// errBadRequest marks caller input the handler rejects before fetching.
var errBadRequest = errors.New("bad request")

const dateLayout = "2006-01-02"

// errRowNotFound is a statistics row the ticker does not report.
var errRowNotFound = errors.New("row not found")

// Handler serves the quote, statistics, profile, analyst and history routes.
type Handler struct {
	client *share.Client
	cache  *cache.Cache
	logger *slog.Logger
}

// NewHandler creates a Handler. A nil cache disables response caching.
func NewHandler(client *share.Client, c *cache.Cache, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{client: client, cache: c, logger: logger}
}

// Routes registers the handler's routes on r.
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/quote/{ticker}", h.Quote).Methods(http.MethodGet)
	r.HandleFunc("/quote/{ticker}/{field}", h.QuoteField).Methods(http.MethodGet)
	r.HandleFunc("/statistics/{ticker}", h.Statistics).Methods(http.MethodGet)
	r.HandleFunc("/statistics/{ticker}/{field}", h.Statistic).Methods(http.MethodGet)
	r.HandleFunc("/profile/{ticker}", h.Profile).Methods(http.MethodGet)
	r.HandleFunc("/analysts/{ticker}/{table}", h.Analysts).Methods(http.MethodGet)
	r.HandleFunc("/history/{ticker}", h.History).Methods(http.MethodGet)
}

func ticker(r *http.Request) string {
	return strings.ToUpper(mux.Vars(r)["ticker"])
}

// Quote returns every quote field of the summary page.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	t := ticker(r)
	quote, err := cache.Memoize(r.Context(), h.cache, "quote:"+t, func() (finance.Record, error) {
		snap, err := h.client.Load(r.Context(), t, share.PageSummary)
		if err != nil {
			return nil, err
		}
		return snap.Quote()
	})
	h.respond(w, r, quote, err)
}

// QuoteField returns one quote field.
func (h *Handler) QuoteField(w http.ResponseWriter, r *http.Request) {
	t, field := ticker(r), mux.Vars(r)["field"]
	if _, ok := share.QuoteFields[field]; !ok {
		h.respond(w, r, nil, fmt.Errorf("%w: quote field %q", share.ErrUnknownField, field))
		return
	}

	value, err := cache.Memoize(r.Context(), h.cache, "quote:"+t+":"+field, func() (string, error) {
		snap, err := h.client.Load(r.Context(), t, share.PageSummary)
		if err != nil {
			return "", err
		}
		return snap.QuoteField(field)
	})
	h.respond(w, r, map[string]string{field: value}, err)
}

// Statistics returns every known statistics section, one custom section with
// ?heading=, or one custom row with ?heading=&row=.
func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	t := ticker(r)
	heading, row := r.URL.Query().Get("heading"), r.URL.Query().Get("row")

	switch {
	case heading == "" && row != "":
		h.respond(w, r, nil, fmt.Errorf("%w: row needs a heading", errBadRequest))

	case heading == "":
		stats, err := cache.Memoize(r.Context(), h.cache, statisticsKey(t), func() (map[string]finance.Record, error) {
			snap, err := h.client.Load(r.Context(), t, share.PageStatistics)
			if err != nil {
				return nil, err
			}
			return snap.Statistics()
		})
		h.respond(w, r, stats, err)

	case row == "":
		record, err := cache.Memoize(r.Context(), h.cache, sectionKey(t, heading), func() (finance.Record, error) {
			snap, err := h.client.Load(r.Context(), t, share.PageStatistics)
			if err != nil {
				return nil, err
			}
			return snap.Section(heading)
		})
		h.respond(w, r, record, err)

	default:
		value, err := cache.Memoize(r.Context(), h.cache, rowKey(t, heading, row), func() (string, error) {
			snap, err := h.client.Load(r.Context(), t, share.PageStatistics)
			if err != nil {
				return "", err
			}
			return lookup(snap.Lookup(heading, row))
		})
		h.respond(w, r, map[string]string{row: value}, err)
	}
}

// Statistic returns one StatisticFields entry.
func (h *Handler) Statistic(w http.ResponseWriter, r *http.Request) {
	t, field := ticker(r), mux.Vars(r)["field"]
	if _, ok := share.StatisticFields[field]; !ok {
		h.respond(w, r, nil, fmt.Errorf("%w: statistic %q", share.ErrUnknownField, field))
		return
	}

	value, err := cache.Memoize(r.Context(), h.cache, fieldKey(t, field), func() (string, error) {
		snap, err := h.client.Load(r.Context(), t, share.PageStatistics)
		if err != nil {
			return "", err
		}
		return lookup(snap.Statistic(field))
	})
	h.respond(w, r, map[string]string{field: value}, err)
}

// Statistics results of different shapes are cached under distinct
// namespaces.
func statisticsKey(t string) string { return "statistics:all:" + t }

func sectionKey(t, heading string) string { return "statistics:section:" + t + ":" + heading }

func rowKey(t, heading, row string) string {
	return "statistics:row:" + t + ":" + heading + "\x00" + row
}

func fieldKey(t, field string) string { return "statistics:field:" + t + ":" + field }

func lookup(value string, ok bool, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errRowNotFound
	}
	return value, nil
}

// Profile returns the company profile.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	t := ticker(r)
	profile, err := cache.Memoize(r.Context(), h.cache, "profile:"+t, func() (*share.Profile, error) {
		snap, err := h.client.Load(r.Context(), t, share.PageProfile)
		if err != nil {
			return nil, err
		}
		return snap.Profile()
	})
	h.respond(w, r, profile, err)
}

// Analysts returns one analyst table. A table the page does not show is an
// empty object.
func (h *Handler) Analysts(w http.ResponseWriter, r *http.Request) {
	t, name := ticker(r), mux.Vars(r)["table"]
	table, err := cache.Memoize(r.Context(), h.cache, "analysts:"+t+":"+name, func() (finance.AnalystTable, error) {
		snap, err := h.client.Load(r.Context(), t, share.PageAnalysts)
		if err != nil {
			return nil, err
		}
		return snap.Analysts(name)
	})
	h.respond(w, r, table, err)
}

// History returns the merged daily series, or its decimal form with
// ?typed=true.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	t := ticker(r)
	q := r.URL.Query()

	from, to := q.Get("from"), q.Get("to")
	mode, err := history.ParseMode(q.Get("mode"))
	if err != nil {
		h.respond(w, r, nil, err)
		return
	}
	dates := []string{from}
	if mode != history.ModeDay {
		dates = append(dates, to)
	}
	for _, d := range dates {
		if _, err := time.Parse(dateLayout, d); err != nil {
			h.respond(w, r, nil, fmt.Errorf("%w: dates must be YYYY-MM-DD, got %q", errBadRequest, d))
			return
		}
	}
	typed := false
	if v := q.Get("typed"); v != "" {
		if typed, err = strconv.ParseBool(v); err != nil {
			h.respond(w, r, nil, fmt.Errorf("%w: typed: %v", errBadRequest, err))
			return
		}
	}

	key := fmt.Sprintf("history:%s:%s:%s:%s", t, mode, from, to)
	series, err := cache.Memoize(r.Context(), h.cache, key, func() (history.Series, error) {
		snap, err := h.client.Load(r.Context(), t, share.PageSummary)
		if err != nil {
			return nil, err
		}
		return h.client.History(r.Context(), snap, from, to, mode)
	})
	if err != nil || !typed {
		h.respond(w, r, series, err)
		return
	}

	bars, err := history.Typed(series)
	h.respond(w, r, bars, err)
}

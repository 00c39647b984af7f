// Package history converts site-local dates into UTC request windows and
// merges the daily price and dividend rows fetched for those windows into one
// deduplicated series.
package history

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultChunkDays is the widest window requested in one ranged page fetch.
// The history page truncates longer ranges.
const DefaultChunkDays = 120

const dateLayout = "2006-01-02"

var (
	ErrInvalidRange = errors.New("end date before start date")
	ErrInvalidChunk = errors.New("chunk size must be positive")
	ErrUnknownMode  = errors.New("unknown history mode")
)

// offsets holds the known timezone abbreviations. Anything else gets no
// offset.
var offsets = map[string]time.Duration{
	"CEST": -1 * time.Hour,
	"EDT":  4 * time.Hour,
}

// ToUTC parses a YYYY-MM-DD date and shifts it by the fixed offset of the
// site-reported timezone abbreviation.
func ToUTC(dateText, tz string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(dateText))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", dateText, err)
	}
	return t.Add(offsets[tz]), nil
}

// Mode selects how the requested dates map onto windows.
type Mode string

const (
	ModeDay   Mode = "day"
	ModeDays  Mode = "days"
	ModeRange Mode = "range"
)

// ParseMode parses a mode name; the empty string means ModeDay.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeDay:
		return ModeDay, nil
	case ModeDays:
		return ModeDays, nil
	case ModeRange:
		return ModeRange, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Window is the UTC start/end pair of one history page request.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Period returns the window bounds as Unix seconds.
func (w Window) Period() (int64, int64) {
	return w.Start.Unix(), w.End.Unix()
}

// SingleDayWindow is a zero-width window at t.
func SingleDayWindow(t time.Time) Window {
	return Window{Start: t, End: t}
}

// TwoPointWindows returns one single-day window per endpoint. The days in
// between are not requested.
func TwoPointWindows(from, to time.Time) [2]Window {
	return [2]Window{SingleDayWindow(from), SingleDayWindow(to)}
}

// RangedWindows splits [from, to] into consecutive chunkDays-wide windows,
// clipping the last one to to. A range shorter than a day still yields one
// window.
func RangedWindows(from, to time.Time, chunkDays int) ([]Window, error) {
	if chunkDays <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChunk, chunkDays)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, from.Format(dateLayout), to.Format(dateLayout))
	}

	days := int(to.Sub(from) / (24 * time.Hour))
	runs := (days + chunkDays - 1) / chunkDays
	if runs == 0 {
		runs = 1
	}

	chunk := time.Duration(chunkDays) * 24 * time.Hour
	windows := make([]Window, 0, runs)
	for i := 0; i < runs; i++ {
		start := from.Add(time.Duration(i) * chunk)
		end := start.Add(chunk)
		if end.After(to) || i == runs-1 {
			end = to
		}
		windows = append(windows, Window{Start: start, End: end})
	}
	return windows, nil
}

// Windows computes the request windows for a mode. to is ignored for ModeDay.
func Windows(mode Mode, from, to time.Time, chunkDays int) ([]Window, error) {
	switch mode {
	case ModeDay:
		return []Window{SingleDayWindow(from)}, nil
	case ModeDays:
		pair := TwoPointWindows(from, to)
		return pair[:], nil
	case ModeRange:
		return RangedWindows(from, to, chunkDays)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

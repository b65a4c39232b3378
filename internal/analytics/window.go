package analytics

import (
	"fmt"
	"time"

	"brandpulse/internal/domain"
)

// DefaultSpan is the trailing window applied when the caller supplies no bounds.
const DefaultSpan = 30 * 24 * time.Hour

// TimeWindow is an inclusive [Start, End] range. Start <= End is deliberately
// not enforced: an inverted window is legal input and simply matches nothing.
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

var boundLayouts = []string{"2006-01-02", time.RFC3339}

// ResolveWindow builds the aggregation window from optional caller bounds.
// Missing from -> now minus 30 days; missing to -> now. Callers pass their
// own clock reading so the function stays pure.
//
// A bound that parses as neither a calendar date nor RFC 3339 is rejected
// with domain.ErrValidation rather than silently producing a garbage window.
func ResolveWindow(now time.Time, from, to string) (TimeWindow, error) {
	w := TimeWindow{Start: now.Add(-DefaultSpan), End: now}
	if from != "" {
		t, err := parseBound(from)
		if err != nil {
			return TimeWindow{}, fmt.Errorf("%w: 'from' is not a date: %q", domain.ErrValidation, from)
		}
		w.Start = t
	}
	if to != "" {
		t, err := parseBound(to)
		if err != nil {
			return TimeWindow{}, fmt.Errorf("%w: 'to' is not a date: %q", domain.ErrValidation, to)
		}
		w.End = t
	}
	return w, nil
}

func parseBound(s string) (time.Time, error) {
	var last error
	for _, layout := range boundLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		last = err
	}
	return time.Time{}, last
}

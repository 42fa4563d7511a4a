// Package datephrase resolves loose natural-language due dates emitted by
// language models into concrete dates
package datephrase

import (
	"strings"
	"time"
)

// Resolve turns a phrase into a date relative to ref.
// Recognized phrases: "tomorrow" (+1 day), "next week" (+7 days),
// "next month" (+30 days). Anything else is tried as an ISO date
// (YYYY-MM-DD). Unresolvable phrases return ok=false so callers can
// keep the raw wording around
func Resolve(phrase string, ref time.Time) (time.Time, bool) {
	p := strings.ToLower(strings.TrimSpace(phrase))
	if p == "" {
		return time.Time{}, false
	}

	switch {
	case strings.Contains(p, "tomorrow"):
		return ref.AddDate(0, 0, 1), true
	case strings.Contains(p, "next week"):
		return ref.AddDate(0, 0, 7), true
	case strings.Contains(p, "next month"):
		return ref.AddDate(0, 0, 30), true
	}

	if t, err := time.Parse("2006-01-02", p); err == nil {
		return t, true
	}
	return time.Time{}, false
}

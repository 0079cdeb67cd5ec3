package domain

import (
	"strings"
	"time"
)

// decisionDateLayouts are the formats decision dates appear in across the
// case corpus ("2010.04.29" in scraped rows, "2010-04-29" in newer ones).
var decisionDateLayouts = []string{"2006.01.02", "2006-01-02"}

// ParseDecisionDate parses a case decision date on a best-effort basis.
// Returns ok=false for empty or unparseable input; callers treat such
// records as excluded whenever a date filter is in effect.
func ParseDecisionDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range decisionDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

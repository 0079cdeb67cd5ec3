package request

import (
	"fmt"
	"strings"
	"time"
)

// Case search parameter limits.
const (
	DefaultCaseK = 5
	MaxCaseK     = 50
)

// Cases is a validated case-law search query.
type Cases struct {
	query       string
	k           int
	withSummary bool
	withBody    bool
	courts      map[string]struct{}
	fromDate    *time.Time
	toDate      *time.Time
}

// NewCases validates and normalizes case search parameters.
// court is a comma-joined list of exact court names ("대법원,서울고등법원");
// fromDate/toDate are inclusive ISO "YYYY-MM-DD" bounds.
func NewCases(
	query string,
	k int,
	withSummary, withBody bool,
	court, fromDate, toDate string,
) (Cases, error) {
	if query == "" {
		return Cases{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxQueryLength {
		return Cases{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if k <= 0 {
		k = DefaultCaseK
	}
	if k > MaxCaseK {
		k = MaxCaseK
	}

	var courts map[string]struct{}
	if court != "" {
		courts = make(map[string]struct{})
		for _, c := range strings.Split(court, ",") {
			if c = strings.TrimSpace(c); c != "" {
				courts[c] = struct{}{}
			}
		}
		if len(courts) == 0 {
			courts = nil
		}
	}

	from, err := parseBound(fromDate)
	if err != nil {
		return Cases{}, fmt.Errorf("from_date: %w", err)
	}
	to, err := parseBound(toDate)
	if err != nil {
		return Cases{}, fmt.Errorf("to_date: %w", err)
	}
	if from != nil && to != nil && to.Before(*from) {
		return Cases{}, fmt.Errorf("to_date precedes from_date")
	}

	return Cases{
		query:       query,
		k:           k,
		withSummary: withSummary,
		withBody:    withBody,
		courts:      courts,
		fromDate:    from,
		toDate:      to,
	}, nil
}

func parseBound(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("must be YYYY-MM-DD, got %q", s)
	}
	return &t, nil
}

// Query returns the search query text.
func (r *Cases) Query() string { return r.query }

// K returns the number of results to return.
func (r *Cases) K() int { return r.k }

// WithSummary reports whether hits should carry a smart summary.
func (r *Cases) WithSummary() bool { return r.withSummary }

// WithBody reports whether hits should carry the full body text.
func (r *Cases) WithBody() bool { return r.withBody }

// MatchesCourt reports whether a court name passes the court filter.
// An unset filter matches everything.
func (r *Cases) MatchesCourt(court string) bool {
	if r.courts == nil {
		return true
	}
	_, ok := r.courts[strings.TrimSpace(court)]
	return ok
}

// HasDateFilter reports whether either date bound is set.
func (r *Cases) HasDateFilter() bool { return r.fromDate != nil || r.toDate != nil }

// MatchesDate reports whether a parsed decision date falls within the
// inclusive bounds.
func (r *Cases) MatchesDate(t time.Time) bool {
	if r.fromDate != nil && t.Before(*r.fromDate) {
		return false
	}
	if r.toDate != nil && t.After(*r.toDate) {
		return false
	}
	return true
}

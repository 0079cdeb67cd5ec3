// Package request holds validated search query parameters. Constructors
// normalize defaults and reject out-of-range values so nothing malformed
// reaches the scoring pipelines.
package request

import "fmt"

// Statute search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultTopK    = 8
	MaxTopK        = 50
	// DefaultMinScore is the default score cutoff as a fraction of the
	// 0-100 score scale.
	DefaultMinScore = 0.05
)

// Statute is a validated statute search query.
type Statute struct {
	query    string
	topK     int
	minScore float64
}

// NewStatute validates and normalizes statute search parameters.
// Defaults: topK=8, minScore=0.05. topK is clamped to [1,50].
func NewStatute(query string, topK int, minScore *float64) (Statute, error) {
	if query == "" {
		return Statute{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxQueryLength {
		return Statute{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}
	score := DefaultMinScore
	if minScore != nil {
		if *minScore < 0 || *minScore > 1 {
			return Statute{}, fmt.Errorf("min_score must be between 0 and 1")
		}
		score = *minScore
	}
	return Statute{query: query, topK: topK, minScore: score}, nil
}

// Query returns the search query text.
func (r *Statute) Query() string { return r.query }

// TopK returns the number of results to return.
func (r *Statute) TopK() int { return r.topK }

// MinScore returns the minimum score threshold as a fraction of 100.
func (r *Statute) MinScore() float64 { return r.minScore }

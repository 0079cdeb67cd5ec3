// Package dense implements the flat inner-product nearest-neighbor index
// the case-law search queries. Vectors are L2-normalized at build time, so
// inner product equals cosine similarity. The index is an immutable
// snapshot: built offline, loaded once, never mutated while serving.
package dense

import (
	"fmt"
	"math"
	"sort"
)

// Candidate is one nearest-neighbor search candidate. Row indexes the ids
// and metadata arrays; a Row of -1 marks a "no match" padding slot emitted
// when k exceeds the index size, and callers must skip it.
type Candidate struct {
	Row   int
	Score float32
}

// Index is a flat inner-product index over fixed-dimension vectors.
type Index struct {
	dim     int
	count   int
	vectors []float32 // row-major, count*dim
}

// New builds an index from row vectors. All rows must share one dimension;
// rows are normalized in place.
func New(rows [][]float32) (*Index, error) {
	if len(rows) == 0 {
		return &Index{}, nil
	}
	dim := len(rows[0])
	if dim == 0 {
		return nil, fmt.Errorf("zero-dimension vectors")
	}

	ix := &Index{
		dim:     dim,
		count:   len(rows),
		vectors: make([]float32, 0, len(rows)*dim),
	}
	for i, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("row %d: dimension %d, want %d", i, len(row), dim)
		}
		Normalize(row)
		ix.vectors = append(ix.vectors, row...)
	}
	return ix, nil
}

// Dim returns the vector dimension.
func (ix *Index) Dim() int { return ix.dim }

// Len returns the number of indexed vectors.
func (ix *Index) Len() int { return ix.count }

// Search returns exactly k candidates ordered by descending inner product,
// padded with Row=-1 slots when the index holds fewer than k vectors.
// Ties break by row ascending.
func (ix *Index) Search(query []float32, k int) ([]Candidate, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	if ix.count > 0 && len(query) != ix.dim {
		return nil, fmt.Errorf("query dimension %d, want %d", len(query), ix.dim)
	}

	scored := make([]Candidate, ix.count)
	for row := 0; row < ix.count; row++ {
		base := row * ix.dim
		var dot float32
		for j, q := range query {
			dot += q * ix.vectors[base+j]
		}
		scored[row] = Candidate{Row: row, Score: dot}
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Row < scored[j].Row
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	for len(scored) < k {
		scored = append(scored, Candidate{Row: -1})
	}
	return scored, nil
}

// Normalize scales a vector to unit L2 length in place. Zero vectors are
// left untouched.
func Normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
}

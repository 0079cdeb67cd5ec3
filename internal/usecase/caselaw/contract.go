package caselaw

import (
	"context"

	"github.com/jeonselab/lawdex/internal/domain"
	"github.com/jeonselab/lawdex/internal/index/dense"
)

// VectorIndex is the nearest-neighbor search contract.
type VectorIndex interface {
	Search(query []float32, k int) ([]dense.Candidate, error)
}

// MetaStore is the positional join of index rows to document ids and
// lightweight metadata.
type MetaStore interface {
	Len() int
	ID(row int) int64
	Meta(row int) domain.CaseMeta
	RowByID(id int64) (int, bool)
}

// DetailStore resolves full case rows by document id.
type DetailStore interface {
	Get(id int64) (domain.CaseDetail, bool)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

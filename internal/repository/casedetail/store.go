// Package casedetail reads the row-oriented case detail table: the full
// case text and structured fields not carried by the lightweight index
// metadata, keyed by case serial number.
package casedetail

import (
	"fmt"

	"github.com/parquet-go/parquet-go"

	"github.com/jeonselab/lawdex/internal/domain"
)

// Store is an in-memory lookup of full case rows by document id.
type Store struct {
	rows map[int64]domain.CaseDetail
}

// Empty creates a store with no rows. Lookups miss and search results fall
// back to the lightweight index metadata.
func Empty() *Store {
	return &Store{rows: map[int64]domain.CaseDetail{}}
}

// Load reads the detail parquet file into memory. Duplicate serial numbers
// keep the first row.
func Load(path string) (*Store, error) {
	rows, err := parquet.ReadFile[domain.CaseDetail](path)
	if err != nil {
		return nil, fmt.Errorf("read case details %s: %w", path, err)
	}

	s := &Store{rows: make(map[int64]domain.CaseDetail, len(rows))}
	for _, row := range rows {
		if _, ok := s.rows[row.SerialNo]; !ok {
			s.rows[row.SerialNo] = row
		}
	}
	return s, nil
}

// Len returns the number of distinct cases.
func (s *Store) Len() int { return len(s.rows) }

// Get returns the full row for a document id.
func (s *Store) Get(id int64) (domain.CaseDetail, bool) {
	row, ok := s.rows[id]
	return row, ok
}

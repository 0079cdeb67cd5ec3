// Package casemeta loads the parallel ids and metadata arrays that sit next
// to the dense case index. The core invariant is the positional join:
// ids[i] and metadata[i] always describe the same document.
package casemeta

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/jeonselab/lawdex/internal/domain"
)

// Artifact file names inside the index directory.
const (
	idsFile   = "ids.json"
	metaFile  = "meta.jsonl"
	modelFile = "model.json"
)

// Store is the immutable row -> (doc id, metadata) join for the dense index.
type Store struct {
	ids   []int64
	metas []domain.CaseMeta
}

// Load reads ids.json and meta.jsonl from the index directory. A length
// mismatch between the two arrays is recoverable corpus drift: the metadata
// array is truncated or padded with empty records to match the id count,
// never left desynchronized.
func Load(dir string, logger *zap.Logger) (*Store, error) {
	ids, err := loadIDs(filepath.Join(dir, idsFile))
	if err != nil {
		return nil, err
	}
	metas, err := loadMetas(filepath.Join(dir, metaFile))
	if err != nil {
		return nil, err
	}

	if len(metas) != len(ids) {
		logger.Warn("Case metadata length mismatch, repairing",
			zap.Int("ids", len(ids)),
			zap.Int("metadata", len(metas)),
		)
		if len(metas) > len(ids) {
			metas = metas[:len(ids)]
		} else {
			for len(metas) < len(ids) {
				metas = append(metas, domain.CaseMeta{})
			}
		}
	}

	return &Store{ids: ids, metas: metas}, nil
}

// Len returns the number of joined rows.
func (s *Store) Len() int { return len(s.ids) }

// ID returns the document id at an index row.
func (s *Store) ID(row int) int64 { return s.ids[row] }

// Meta returns the metadata record at an index row.
func (s *Store) Meta(row int) domain.CaseMeta { return s.metas[row] }

// RowByID finds the index row of a document id. Near-duplicate vectors can
// share one id; the first (best-ranked at build time) row wins.
func (s *Store) RowByID(id int64) (int, bool) {
	for row, candidate := range s.ids {
		if candidate == id {
			return row, true
		}
	}
	return 0, false
}

func loadIDs(path string) ([]int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ids: %w", err)
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("parse ids %s: %w", path, err)
	}
	return ids, nil
}

func loadMetas(path string) ([]domain.CaseMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	defer f.Close()

	var metas []domain.CaseMeta
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1<<20), 1<<24)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var m domain.CaseMeta
		if err := json.Unmarshal([]byte(text), &m); err != nil {
			return nil, fmt.Errorf("parse metadata %s line %d: %w", path, line, err)
		}
		metas = append(metas, m)
	}
	return metas, sc.Err()
}

// Save writes ids.json and meta.jsonl into the index directory. Callers
// must pass arrays of equal length; the positional join is established here.
func Save(dir string, ids []int64, metas []domain.CaseMeta) error {
	if len(ids) != len(metas) {
		return fmt.Errorf("ids/metadata length mismatch: %d vs %d", len(ids), len(metas))
	}

	idsData, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal ids: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, idsFile), append(idsData, '\n'), 0o644); err != nil {
		return fmt.Errorf("write ids: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, metaFile))
	if err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, m := range metas {
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush metadata: %w", err)
	}
	return f.Close()
}

// ModelName reads the embedding model name persisted at index build time,
// falling back when the file is absent or unreadable. The serving path must
// embed queries with the same model the index was built with.
func ModelName(dir, fallback string) string {
	data, err := os.ReadFile(filepath.Join(dir, modelFile))
	if err != nil {
		return fallback
	}
	var info struct {
		Model string `json:"model"`
	}
	if err := json.Unmarshal(data, &info); err != nil || info.Model == "" {
		return fallback
	}
	return info.Model
}

// SaveModelName persists the embedding model name next to the index.
func SaveModelName(dir, model string) error {
	data, err := json.MarshalIndent(map[string]string{"model": model}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model info: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, modelFile), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write model info: %w", err)
	}
	return nil
}

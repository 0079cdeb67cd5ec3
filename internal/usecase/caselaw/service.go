// Package caselaw implements dense case-law retrieval: embed the query,
// over-fetch nearest neighbors, then filter, deduplicate and enrich down
// to k hits.
package caselaw

import (
	"context"
	"fmt"

	"github.com/jeonselab/lawdex/internal/domain"
	"github.com/jeonselab/lawdex/internal/domain/search/request"
	"github.com/jeonselab/lawdex/internal/index/dense"
)

// DefaultOverfetch is the candidate over-fetch multiplier: the index is
// asked for overfetch*k rows so court/date filtering and doc-id dedupe can
// discard candidates without a second search round-trip.
const DefaultOverfetch = 10

// Options tunes the search service.
type Options struct {
	// Overfetch multiplier; 0 uses DefaultOverfetch.
	Overfetch int
	// SummaryLimit is the summary character budget; 0 uses DefaultSummaryLimit.
	SummaryLimit int
}

// Service handles case-law vector search and detail lookup. All state is
// loaded once at startup and read-only afterwards.
type Service struct {
	index        VectorIndex
	meta         MetaStore
	details      DetailStore
	embed        Embedder
	overfetch    int
	summaryLimit int

	ready   bool
	loadErr error
}

// New creates a ready search service over loaded artifacts.
func New(index VectorIndex, meta MetaStore, details DetailStore, embed Embedder, opts Options) *Service {
	if opts.Overfetch <= 0 {
		opts.Overfetch = DefaultOverfetch
	}
	if opts.SummaryLimit <= 0 {
		opts.SummaryLimit = DefaultSummaryLimit
	}
	return &Service{
		index:        index,
		meta:         meta,
		details:      details,
		embed:        embed,
		overfetch:    opts.Overfetch,
		summaryLimit: opts.SummaryLimit,
		ready:        true,
	}
}

// Unavailable creates a permanently not-ready service recording why the
// index artifacts failed to load. Every call returns domain.ErrIndexNotReady;
// the host process keeps running.
func Unavailable(err error) *Service {
	return &Service{loadErr: err}
}

// Ready reports whether the service can serve queries.
func (s *Service) Ready() bool { return s.ready }

// Err returns the startup error of a not-ready service.
func (s *Service) Err() error { return s.loadErr }

// Search embeds the query, over-fetches nearest neighbors and walks them in
// descending similarity order, skipping padding slots, duplicate doc ids and
// candidates failing the court/date filters, until k hits are collected or
// candidates run out.
func (s *Service) Search(ctx context.Context, req request.Cases) ([]domain.CaseHit, error) {
	if !s.ready {
		return nil, domain.ErrIndexNotReady
	}

	emb, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	query := emb.Embedding
	dense.Normalize(query)

	candidates, err := s.index.Search(query, req.K()*s.overfetch)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	seen := make(map[int64]struct{}, req.K())
	hits := make([]domain.CaseHit, 0, req.K())
	for _, cand := range candidates {
		if cand.Row < 0 || cand.Row >= s.meta.Len() {
			continue
		}
		docID := s.meta.ID(cand.Row)
		if _, dup := seen[docID]; dup {
			continue
		}
		seen[docID] = struct{}{}

		meta := s.meta.Meta(cand.Row)
		detail, _ := s.details.Get(docID)

		if !req.MatchesCourt(firstNonEmpty(detail.Court, meta.Court)) {
			continue
		}
		if req.HasDateFilter() {
			date, ok := domain.ParseDecisionDate(firstNonEmpty(detail.DecisionDate, meta.DecisionDate))
			if !ok || !req.MatchesDate(date) {
				continue
			}
		}

		hits = append(hits, s.buildHit(docID, float64(cand.Score), meta, detail, req.WithSummary(), req.WithBody()))
		if len(hits) >= req.K() {
			break
		}
	}
	return hits, nil
}

// Detail returns a single enriched case record without the search step.
// Unknown ids yield a well-formed record with empty optional fields.
func (s *Service) Detail(docID int64, withSummary, withBody bool) (domain.CaseHit, error) {
	if !s.ready {
		return domain.CaseHit{}, domain.ErrIndexNotReady
	}

	var meta domain.CaseMeta
	if row, ok := s.meta.RowByID(docID); ok {
		meta = s.meta.Meta(row)
	}
	detail, _ := s.details.Get(docID)
	return s.buildHit(docID, 0, meta, detail, withSummary, withBody), nil
}

// buildHit merges the detail row with the metadata record, preferring the
// detail table for every field it carries.
func (s *Service) buildHit(
	docID int64, score float64,
	meta domain.CaseMeta, detail domain.CaseDetail,
	withSummary, withBody bool,
) domain.CaseHit {
	hit := domain.CaseHit{
		DocID:        docID,
		Score:        score,
		CaseName:     firstNonEmpty(detail.CaseName, meta.CaseName),
		Court:        firstNonEmpty(detail.Court, meta.Court),
		DecisionDate: firstNonEmpty(detail.DecisionDate, meta.DecisionDate),
		CaseNo:       firstNonEmpty(detail.CaseNo, meta.CaseNo),
	}
	if withSummary {
		fields := caseFields{holding: detail.Holding, issues: detail.Issues, body: detail.Body}
		hit.Summary = firstNonEmpty(smartSummary(fields, s.summaryLimit), meta.Summary)
	}
	if withBody {
		hit.Body = detail.Body
	}
	return hit
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

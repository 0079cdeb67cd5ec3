package caselaw

import (
	"context"
	"testing"

	"github.com/jeonselab/lawdex/internal/domain"
	"github.com/jeonselab/lawdex/internal/domain/search/request"
	"github.com/jeonselab/lawdex/internal/index/dense"
)

// --- Mocks ---

type mockIndex struct {
	candidates []dense.Candidate
	err        error
	lastK      int
}

func (m *mockIndex) Search(_ []float32, k int) ([]dense.Candidate, error) {
	m.lastK = k
	if m.err != nil {
		return nil, m.err
	}
	out := m.candidates
	if len(out) > k {
		out = out[:k]
	}
	for len(out) < k {
		out = append(out, dense.Candidate{Row: -1})
	}
	return out, nil
}

type mockMeta struct {
	ids   []int64
	metas []domain.CaseMeta
}

func (m *mockMeta) Len() int                     { return len(m.ids) }
func (m *mockMeta) ID(row int) int64             { return m.ids[row] }
func (m *mockMeta) Meta(row int) domain.CaseMeta { return m.metas[row] }
func (m *mockMeta) RowByID(id int64) (int, bool) {
	for row, candidate := range m.ids {
		if candidate == id {
			return row, true
		}
	}
	return 0, false
}

type mockDetails struct {
	rows map[int64]domain.CaseDetail
}

func (m *mockDetails) Get(id int64) (domain.CaseDetail, bool) {
	row, ok := m.rows[id]
	return row, ok
}

type mockEmbedder struct {
	vec    []float32
	err    error
	called bool
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.called = true
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec, TotalTokens: 3}, nil
}

// --- Fixtures ---

// testMeta holds three rows; rows 0 and 2 share doc id 42 (near-duplicate
// vectors of the same case).
func testMeta() *mockMeta {
	return &mockMeta{
		ids: []int64{42, 7, 42},
		metas: []domain.CaseMeta{
			{CaseName: "보증금반환", Court: "대법원", DecisionDate: "2010.04.29", CaseNo: "2009다1234"},
			{CaseName: "손해배상", Court: "서울중앙지방법원", DecisionDate: "2018-03-15", CaseNo: "2017가단5678"},
			{CaseName: "보증금반환(중복)", Court: "대법원", DecisionDate: "2010.04.29", CaseNo: "2009다1234"},
		},
	}
}

func testDetails() *mockDetails {
	return &mockDetails{rows: map[int64]domain.CaseDetail{
		42: {
			SerialNo: 42,
			CaseName: "주택임대차보증금반환",
			Court:    "대법원",
			Holding:  "임차인은 임대차 종료 후 보증금의 반환을 구할 수 있다.",
			Body:     "사건의 전체 본문이다.",
		},
	}}
}

func newTestService(t *testing.T, index *mockIndex) (*Service, *mockEmbedder) {
	t.Helper()
	embed := &mockEmbedder{vec: []float32{0.6, 0.8}}
	svc := New(index, testMeta(), testDetails(), embed, Options{})
	return svc, embed
}

func mustCasesReq(t *testing.T, query string, k int, withSummary, withBody bool, court, from, to string) request.Cases {
	t.Helper()
	r, err := request.NewCases(query, k, withSummary, withBody, court, from, to)
	if err != nil {
		t.Fatalf("request.NewCases: %v", err)
	}
	return r
}

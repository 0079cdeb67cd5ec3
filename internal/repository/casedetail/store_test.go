package casedetail

import (
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/jeonselab/lawdex/internal/domain"
)

func writeDetailFixture(t *testing.T, rows []domain.CaseDetail) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cases.parquet")
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatalf("write parquet fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeDetailFixture(t, []domain.CaseDetail{
		{
			SerialNo:     101,
			CaseName:     "보증금반환",
			Court:        "대법원",
			DecisionDate: "2010.04.29",
			CaseNo:       "2009다1234",
			Holding:      "임차인은 보증금의 반환을 구할 수 있다.",
			Body:         "전문",
		},
		{SerialNo: 202, CaseName: "손해배상"},
	})

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", s.Len())
	}

	row, ok := s.Get(101)
	if !ok {
		t.Fatal("expected row for id 101")
	}
	if row.Court != "대법원" || row.Holding == "" {
		t.Errorf("unexpected row: %+v", row)
	}
	if _, ok := s.Get(999); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestLoad_DuplicateSerialKeepsFirst(t *testing.T) {
	path := writeDetailFixture(t, []domain.CaseDetail{
		{SerialNo: 42, CaseName: "첫째"},
		{SerialNo: 42, CaseName: "둘째"},
	})

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 distinct row, got %d", s.Len())
	}
	if row, _ := s.Get(42); row.CaseName != "첫째" {
		t.Errorf("expected first row to win, got %+v", row)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.parquet")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestEmpty(t *testing.T) {
	s := Empty()
	if s.Len() != 0 {
		t.Fatalf("expected 0 rows, got %d", s.Len())
	}
	if _, ok := s.Get(1); ok {
		t.Error("expected miss on empty store")
	}
}

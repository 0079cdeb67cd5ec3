package request

import (
	"strings"
	"testing"
)

func TestNewStatute_Defaults(t *testing.T) {
	r, err := NewStatute("전세 보증금 반환", 0, nil)
	if err != nil {
		t.Fatalf("NewStatute: %v", err)
	}
	if r.TopK() != DefaultTopK {
		t.Errorf("expected default topK %d, got %d", DefaultTopK, r.TopK())
	}
	if r.MinScore() != DefaultMinScore {
		t.Errorf("expected default minScore %v, got %v", DefaultMinScore, r.MinScore())
	}
}

func TestNewStatute_ClampsTopK(t *testing.T) {
	r, err := NewStatute("q", 500, nil)
	if err != nil {
		t.Fatalf("NewStatute: %v", err)
	}
	if r.TopK() != MaxTopK {
		t.Errorf("expected topK clamped to %d, got %d", MaxTopK, r.TopK())
	}

	r, err = NewStatute("q", -3, nil)
	if err != nil {
		t.Fatalf("NewStatute: %v", err)
	}
	if r.TopK() != DefaultTopK {
		t.Errorf("negative topK should default, got %d", r.TopK())
	}
}

func TestNewStatute_Rejections(t *testing.T) {
	if _, err := NewStatute("", 0, nil); err == nil {
		t.Error("expected error for empty query")
	}
	if _, err := NewStatute(strings.Repeat("가", MaxQueryLength), 0, nil); err == nil {
		t.Error("expected error for oversized query")
	}

	bad := 1.5
	if _, err := NewStatute("q", 0, &bad); err == nil {
		t.Error("expected error for min_score > 1")
	}
	neg := -0.1
	if _, err := NewStatute("q", 0, &neg); err == nil {
		t.Error("expected error for negative min_score")
	}
}

func TestNewStatute_ExplicitMinScore(t *testing.T) {
	zero := 0.0
	r, err := NewStatute("q", 0, &zero)
	if err != nil {
		t.Fatalf("NewStatute: %v", err)
	}
	if r.MinScore() != 0 {
		t.Errorf("explicit 0 must not default, got %v", r.MinScore())
	}
}

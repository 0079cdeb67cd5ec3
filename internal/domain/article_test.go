package domain

import "testing"

func TestDisplayArticleNo(t *testing.T) {
	tests := []struct {
		no   string
		want string
	}{
		{"3", "제3조"},
		{"3의2", "제3의2조"},
		{"제3조", "제3조"},
		{"제3조의2", "제3조의2"},
		{"", ""},
	}
	for _, tt := range tests {
		a := LegalArticle{ArticleNo: tt.no}
		if got := a.DisplayArticleNo(); got != tt.want {
			t.Errorf("DisplayArticleNo(%q) = %q, want %q", tt.no, got, tt.want)
		}
	}
}

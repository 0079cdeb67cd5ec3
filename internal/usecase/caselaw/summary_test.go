package caselaw

import (
	"reflect"
	"strings"
	"testing"
)

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "period boundaries",
			in:   "첫째 문장이다. 둘째 문장이다. 셋째 문장이다.",
			want: []string{"첫째 문장이다.", "둘째 문장이다.", "셋째 문장이다."},
		},
		{
			name: "mixed terminators",
			in:   "정말인가? 그렇다! 끝이다.",
			want: []string{"정말인가?", "그렇다!", "끝이다."},
		},
		{
			name: "decimal numbers do not split",
			in:   "지연손해금은 연 1.5배로 한다. 다음 조항.",
			want: []string{"지연손해금은 연 1.5배로 한다.", "다음 조항."},
		},
		{
			name: "whitespace runs collapse",
			in:   "첫째   문장.\n\n둘째 문장.",
			want: []string{"첫째 문장.", "둘째 문장."},
		},
		{
			name: "no terminator",
			in:   "종결부호 없는 텍스트",
			want: []string{"종결부호 없는 텍스트"},
		},
		{
			name: "empty",
			in:   "   ",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sentences(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("sentences(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSmartSummary_FieldPrecedence(t *testing.T) {
	holding := "판시사항 첫째. 판시사항 둘째. 판시사항 셋째. 판시사항 넷째."
	issues := "쟁점 첫째. 쟁점 둘째."
	body := "본문 첫째. 본문 둘째. 본문 셋째."

	// Holding wins and contributes three sentences.
	got := smartSummary(caseFields{holding: holding, issues: issues, body: body}, DefaultSummaryLimit)
	if got != "판시사항 첫째. 판시사항 둘째. 판시사항 셋째." {
		t.Errorf("unexpected holding summary: %q", got)
	}

	// Without a holding, issues win.
	got = smartSummary(caseFields{issues: issues, body: body}, DefaultSummaryLimit)
	if got != "쟁점 첫째. 쟁점 둘째." {
		t.Errorf("unexpected issues summary: %q", got)
	}

	// Body-only takes two sentences.
	got = smartSummary(caseFields{body: body}, DefaultSummaryLimit)
	if got != "본문 첫째. 본문 둘째." {
		t.Errorf("unexpected body summary: %q", got)
	}
}

func TestSmartSummary_TruncatesLongText(t *testing.T) {
	long := strings.Repeat("가", DefaultSummaryLimit+100)
	got := smartSummary(caseFields{holding: long}, DefaultSummaryLimit)

	runes := []rune(got)
	if len(runes) != DefaultSummaryLimit+1 {
		t.Fatalf("expected %d runes, got %d", DefaultSummaryLimit+1, len(runes))
	}
	if runes[len(runes)-1] != '…' {
		t.Errorf("expected ellipsis marker, got %q", string(runes[len(runes)-1]))
	}
}

func TestSmartSummary_Empty(t *testing.T) {
	if got := smartSummary(caseFields{}, DefaultSummaryLimit); got != "" {
		t.Errorf("expected empty summary, got %q", got)
	}
	if got := smartSummary(caseFields{holding: "  \n "}, DefaultSummaryLimit); got != "" {
		t.Errorf("whitespace-only field must not produce a summary, got %q", got)
	}
}

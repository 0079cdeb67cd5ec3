package domain

import (
	"testing"
	"time"
)

func TestParseDecisionDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2010.04.29", time.Date(2010, 4, 29, 0, 0, 0, 0, time.UTC), true},
		{"2018-03-15", time.Date(2018, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"  2010.04.29  ", time.Date(2010, 4, 29, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"2010년 4월 29일", time.Time{}, false},
		{"29.04.2010", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseDecisionDate(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseDecisionDate(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("ParseDecisionDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

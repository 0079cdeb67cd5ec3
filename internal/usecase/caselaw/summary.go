package caselaw

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultSummaryLimit is the character budget of a smart summary.
const DefaultSummaryLimit = 700

var whitespaceRun = regexp.MustCompile(`\s+`)

// smartSummary builds a short summary from the richest available field:
// the holding, else the issues, else the opening of the full body. The
// result is truncated to limit runes with an ellipsis marker. Returns ""
// when the row has no usable text.
func smartSummary(d caseFields, limit int) string {
	candidates := []struct {
		text string
		take int
	}{
		{d.holding, 3},
		{d.issues, 3},
		{d.body, 2},
	}
	for _, c := range candidates {
		text := strings.TrimSpace(c.text)
		if text == "" {
			continue
		}
		out := text
		if sents := sentences(text); len(sents) > 0 {
			take := c.take
			if take > len(sents) {
				take = len(sents)
			}
			out = strings.Join(sents[:take], " ")
		}
		if runes := []rune(out); len(runes) > limit {
			out = string(runes[:limit]) + "…"
		}
		return out
	}
	return ""
}

// caseFields narrows a detail row to the summary inputs.
type caseFields struct {
	holding string
	issues  string
	body    string
}

// sentences splits text on sentence boundaries: after '.', '!' or '?'
// followed by whitespace or a closing quote/bracket. Whitespace runs are
// collapsed first, so the rule is deterministic regardless of source
// formatting.
func sentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	runes := []rune(whitespaceRun.ReplaceAllString(text, " "))

	var parts []string
	start := 0
	for i := 0; i+1 < len(runes); i++ {
		if isSentenceEnd(runes[i]) && isBoundaryStart(runes[i+1]) {
			parts = append(parts, string(runes[start:i+1]))
			start = i + 1
		}
	}
	parts = append(parts, string(runes[start:]))

	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isBoundaryStart(r rune) bool {
	return unicode.IsSpace(r) || r == '"' || r == '\'' || r == ')' || r == ']'
}

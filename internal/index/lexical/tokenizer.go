// Package lexical implements the in-memory lexical indices (TF-IDF and
// BM25) the statute retriever scores against. Both indices are built once
// over a tokenized corpus snapshot and are read-only afterwards, so
// concurrent queries need no locking.
package lexical

import "regexp"

// tokenPattern matches runs of Hangul syllables, Latin letters and digits.
// Everything else is a separator. Compiled once.
var tokenPattern = regexp.MustCompile(`[가-힣A-Za-z0-9]+`)

// Tokenize splits text into index tokens. Case-sensitive, no stemming;
// legal vocabulary is matched verbatim.
func Tokenize(s string) []string {
	return tokenPattern.FindAllString(s, -1)
}

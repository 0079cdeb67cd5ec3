package lexical

import (
	"math"
	"sort"
)

// DefaultMaxFeatures caps the TF-IDF vocabulary size.
const DefaultMaxFeatures = 140_000

// posting is one document's weight for a vocabulary term.
type posting struct {
	doc    int32
	weight float64
}

// Vectorizer is a TF-IDF vector-space model over unigrams and bigrams with
// smoothed IDF and L2-normalized document vectors, so the sparse dot
// product against a transformed query is cosine similarity.
type Vectorizer struct {
	vocab    map[string]int
	idf      []float64
	postings [][]posting
	nDocs    int
}

// NewVectorizer builds a TF-IDF model over pre-tokenized documents.
// maxFeatures <= 0 falls back to DefaultMaxFeatures. When the corpus grows
// more terms than the cap, the most frequent terms are kept (ties broken
// lexicographically).
func NewVectorizer(docs [][]string, maxFeatures int) *Vectorizer {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}

	grams := make([][]string, len(docs))
	counts := make(map[string]int)
	docFreq := make(map[string]int)
	for i, tokens := range docs {
		g := ngrams(tokens)
		grams[i] = g
		seen := make(map[string]struct{}, len(g))
		for _, term := range g {
			counts[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		}
	}

	v := &Vectorizer{
		vocab: selectVocabulary(counts, maxFeatures),
		nDocs: len(docs),
	}

	// Smoothed IDF: ln((1+N)/(1+df)) + 1.
	v.idf = make([]float64, len(v.vocab))
	for term, col := range v.vocab {
		v.idf[col] = math.Log(float64(1+v.nDocs)/float64(1+docFreq[term])) + 1
	}

	v.postings = make([][]posting, len(v.vocab))
	for i, g := range grams {
		for col, w := range v.termWeights(g) {
			v.postings[col] = append(v.postings[col], posting{doc: int32(i), weight: w})
		}
	}

	return v
}

// Len returns the number of indexed documents.
func (v *Vectorizer) Len() int { return v.nDocs }

// Similarities returns the cosine similarity of the query against every
// document, indexed by corpus row. Out-of-vocabulary query terms contribute
// nothing.
func (v *Vectorizer) Similarities(queryTokens []string) []float64 {
	scores := make([]float64, v.nDocs)
	for col, qw := range v.termWeights(ngrams(queryTokens)) {
		for _, p := range v.postings[col] {
			scores[p.doc] += qw * p.weight
		}
	}
	return scores
}

// termWeights computes the L2-normalized tf-idf weights of one token list,
// keyed by vocabulary column.
func (v *Vectorizer) termWeights(grams []string) map[int]float64 {
	tf := make(map[int]int)
	for _, term := range grams {
		if col, ok := v.vocab[term]; ok {
			tf[col]++
		}
	}
	if len(tf) == 0 {
		return nil
	}

	weights := make(map[int]float64, len(tf))
	var norm float64
	for col, n := range tf {
		w := float64(n) * v.idf[col]
		weights[col] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return nil
	}
	for col := range weights {
		weights[col] /= norm
	}
	return weights
}

// ngrams expands a token list into unigrams plus space-joined bigrams.
func ngrams(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	out := make([]string, 0, 2*len(tokens)-1)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// selectVocabulary assigns columns to the top maxFeatures terms by corpus
// frequency. Columns are dense and stable across runs.
func selectVocabulary(counts map[string]int, maxFeatures int) map[string]int {
	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	if len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if counts[terms[i]] != counts[terms[j]] {
				return counts[terms[i]] > counts[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	for col, term := range terms {
		vocab[term] = col
	}
	return vocab
}

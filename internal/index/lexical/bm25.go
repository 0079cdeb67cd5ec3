package lexical

import "math"

// Okapi BM25 parameters.
const (
	defaultK1      = 1.5
	defaultB       = 0.75
	defaultEpsilon = 0.25
)

// BM25 is an Okapi BM25 index over tokenized documents. Terms whose raw IDF
// goes negative (very common terms in small corpora) are floored at
// epsilon times the average IDF instead of being dropped.
type BM25 struct {
	k1      float64
	b       float64
	epsilon float64

	termFreqs  []map[string]int
	idf        map[string]float64
	docLengths []int
	avgDocLen  float64
	nDocs      int
}

// NewBM25 builds a BM25 index over pre-tokenized documents.
func NewBM25(docs [][]string) *BM25 {
	b := &BM25{
		k1:        defaultK1,
		b:         defaultB,
		epsilon:   defaultEpsilon,
		termFreqs: make([]map[string]int, len(docs)),
		nDocs:     len(docs),
	}

	docFreq := make(map[string]int)
	total := 0
	b.docLengths = make([]int, len(docs))
	for i, tokens := range docs {
		tf := make(map[string]int, len(tokens))
		for _, term := range tokens {
			tf[term]++
		}
		b.termFreqs[i] = tf
		for term := range tf {
			docFreq[term]++
		}
		b.docLengths[i] = len(tokens)
		total += len(tokens)
	}
	if b.nDocs > 0 {
		b.avgDocLen = float64(total) / float64(b.nDocs)
	}

	b.idf = make(map[string]float64, len(docFreq))
	var idfSum float64
	var negative []string
	for term, df := range docFreq {
		idf := math.Log(float64(b.nDocs)-float64(df)+0.5) - math.Log(float64(df)+0.5)
		b.idf[term] = idf
		idfSum += idf
		if idf < 0 {
			negative = append(negative, term)
		}
	}
	if len(b.idf) > 0 {
		floor := b.epsilon * idfSum / float64(len(b.idf))
		for _, term := range negative {
			b.idf[term] = floor
		}
	}

	return b
}

// Len returns the number of indexed documents.
func (b *BM25) Len() int { return b.nDocs }

// Scores returns the BM25 score of the query against every document,
// indexed by corpus row.
func (b *BM25) Scores(queryTokens []string) []float64 {
	scores := make([]float64, b.nDocs)
	for i := range b.termFreqs {
		docLen := float64(b.docLengths[i])
		var s float64
		for _, term := range queryTokens {
			tf := float64(b.termFreqs[i][term])
			if tf == 0 {
				continue
			}
			norm := tf + b.k1*(1-b.b+b.b*docLen/b.avgDocLen)
			s += b.idf[term] * tf * (b.k1 + 1) / norm
		}
		scores[i] = s
	}
	return scores
}

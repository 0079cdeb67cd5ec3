// Package statute implements the hybrid statute retriever: TF-IDF and BM25
// over one corpus, blended with dictionary-driven domain signals under a
// fixed weighting scheme.
package statute

import (
	"math"
	"sort"
	"strings"

	"github.com/jeonselab/lawdex/internal/domain"
	"github.com/jeonselab/lawdex/internal/domain/search/request"
	"github.com/jeonselab/lawdex/internal/index/lexical"
)

// Weights is the fixed score-combination scheme of the domain tuning.
// The values are empirically tuned constants; preserve them exactly.
// A full positive match with no penalty approaches 100 after scaling.
type Weights struct {
	Cosine  float64
	BM25    float64
	Keyword float64
	Phrase  float64
	Title   float64
	Soft    float64
	Down    float64
}

// DefaultWeights returns the production weighting scheme.
func DefaultWeights() Weights {
	return Weights{
		Cosine:  0.48,
		BM25:    0.27,
		Keyword: 0.12,
		Phrase:  0.07,
		Title:   0.03,
		Soft:    0.06,
		Down:    0.03,
	}
}

// Options configures index construction.
type Options struct {
	// MaxFeatures caps the TF-IDF vocabulary; 0 uses the default.
	MaxFeatures int
}

// Service is the statute retriever. Built once over an immutable corpus
// snapshot; queries share the indices without locks.
type Service struct {
	articles []domain.LegalArticle
	tfidf    *lexical.Vectorizer
	bm25     *lexical.BM25
	weights  Weights

	ready   bool
	loadErr error
}

// New builds the retriever over a loaded corpus. Each document indexes the
// tokenized "{law name} {article no}" title joined with the body text, so
// title terms participate in lexical matching.
func New(articles []domain.LegalArticle, opts Options) *Service {
	docs := make([][]string, len(articles))
	for i, a := range articles {
		title := lexical.Tokenize(a.LawName + " " + a.ArticleNo)
		combined := strings.Join(title, " ") + " " + a.Text
		docs[i] = lexical.Tokenize(combined)
	}

	return &Service{
		articles: articles,
		tfidf:    lexical.NewVectorizer(docs, opts.MaxFeatures),
		bm25:     lexical.NewBM25(docs),
		weights:  DefaultWeights(),
		ready:    true,
	}
}

// Unavailable creates a permanently not-ready retriever recording why the
// corpus failed to load. Every search returns domain.ErrIndexNotReady.
func Unavailable(err error) *Service {
	return &Service{loadErr: err}
}

// Ready reports whether the retriever can serve queries.
func (s *Service) Ready() bool { return s.ready }

// Err returns the startup error of a not-ready retriever.
func (s *Service) Err() error { return s.loadErr }

// Len returns the corpus size.
func (s *Service) Len() int { return len(s.articles) }

// Search scores the whole corpus against the query and returns the top-k
// hits above the threshold, ordered by descending score (ties break by
// corpus row). An empty corpus yields an empty result, not an error.
func (s *Service) Search(req request.Statute) ([]domain.StatuteHit, error) {
	if !s.ready {
		return nil, domain.ErrIndexNotReady
	}
	if len(s.articles) == 0 {
		return nil, nil
	}

	queryTokens := lexical.Tokenize(req.Query())
	cosine := minMaxNormalize(s.tfidf.Similarities(queryTokens))
	bm := minMaxNormalize(s.bm25.Scores(queryTokens))

	// Alias-expanded query tokens restricted to the focus vocabulary.
	needles := make([]string, 0, len(focusNeedles))
	for token := range expandQueryTokens(queryTokens) {
		if _, ok := focusNeedles[token]; ok {
			needles = append(needles, token)
		}
	}

	n := len(s.articles)
	keyword := make([]float64, n)
	phrase := make([]float64, n)
	title := make([]float64, n)
	soft := make([]float64, n)
	down := make([]float64, n)
	for i, a := range s.articles {
		keyword[i] = keywordBonus(req.Query(), a.Text)
		phrase[i] = phraseBonus(req.Query(), a.Text)
		title[i] = titleBonus(a.LawName)
		down[i] = downPenalty(a.Text)
		if len(needles) > 0 && containsAny(a.Text, needles) {
			soft[i] = 1
		}
	}
	// Soft and down are renormalized only when some document scored; when
	// every document carries the signal the spread collapses to zero.
	if maxOf(soft) > 0 {
		soft = minMaxNormalize(soft)
	}
	if maxOf(down) > 0 {
		down = minMaxNormalize(down)
	}

	w := s.weights
	final := make([]float64, n)
	for i := range final {
		score := w.Cosine*cosine[i] +
			w.BM25*bm[i] +
			w.Keyword*keyword[i] +
			w.Phrase*phrase[i] +
			w.Title*title[i] +
			w.Soft*soft[i] -
			w.Down*down[i]
		final[i] = clamp01(score) * 100
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if final[order[a]] != final[order[b]] {
			return final[order[a]] > final[order[b]]
		}
		return order[a] < order[b]
	})
	if len(order) > req.TopK() {
		order = order[:req.TopK()]
	}

	cutoff := req.MinScore() * 100
	hits := make([]domain.StatuteHit, 0, len(order))
	for _, i := range order {
		if final[i] < cutoff {
			continue
		}
		a := s.articles[i]
		hits = append(hits, domain.StatuteHit{
			Rank:      len(hits) + 1,
			Score:     math.Round(final[i]*10) / 10,
			LawName:   a.LawName,
			ArticleNo: a.DisplayArticleNo(),
			Snippet:   a.Text,
			Components: domain.ComponentScores{
				Cosine:  cosine[i],
				BM25:    bm[i],
				Keyword: keyword[i],
				Phrase:  phrase[i],
				Title:   title[i],
				Soft:    soft[i],
				Down:    down[i],
			},
		})
	}
	return hits, nil
}

// keywordBonus is the matched fraction of the risk keywords present in the
// query that also appear in the article text; 0 when the query carries none.
func keywordBonus(query, text string) float64 {
	var inQuery, inBoth int
	for _, kw := range riskKeywords {
		if !strings.Contains(query, kw) {
			continue
		}
		inQuery++
		if strings.Contains(text, kw) {
			inBoth++
		}
	}
	if inQuery == 0 {
		return 0
	}
	return math.Min(1, float64(inBoth)/float64(inQuery))
}

// phraseBonus counts risk phrases found in either the query or the article,
// capped at three before scaling into [0,1].
func phraseBonus(query, text string) float64 {
	hits := 0
	for _, ph := range riskPhrases {
		if strings.Contains(text, ph) || strings.Contains(query, ph) {
			hits++
		}
	}
	return math.Min(1, float64(hits)/3)
}

func titleBonus(lawName string) float64 {
	if containsAny(lawName, titleBoostLaws) {
		return 1
	}
	return 0
}

func downPenalty(text string) float64 {
	if containsAny(text, downWords) {
		return 1
	}
	return 0
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// minMaxNormalize scales scores into [0,1]. The epsilon in the denominator
// guards the all-equal case, which collapses to zero spread.
func minMaxNormalize(scores []float64) []float64 {
	if len(scores) == 0 {
		return scores
	}
	lo, hi := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	out := make([]float64, len(scores))
	denom := hi - lo + 1e-9
	for i, s := range scores {
		out[i] = (s - lo) / denom
	}
	return out
}

func maxOf(scores []float64) float64 {
	m := 0.0
	for _, s := range scores {
		if s > m {
			m = s
		}
	}
	return m
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

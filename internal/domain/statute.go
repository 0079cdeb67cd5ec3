package domain

// ComponentScores breaks a statute hit's final score into its signals.
// Each component is the normalized value that entered the weighted sum.
type ComponentScores struct {
	Cosine  float64 `json:"cosine"`
	BM25    float64 `json:"bm25"`
	Keyword float64 `json:"keyword"`
	Phrase  float64 `json:"phrase"`
	Title   float64 `json:"title"`
	Soft    float64 `json:"soft"`
	Down    float64 `json:"down"`
}

// StatuteHit is one ranked statute search result. Score is the composite
// score scaled to [0,100] and rounded to one decimal.
type StatuteHit struct {
	Rank       int             `json:"rank"`
	Score      float64         `json:"score"`
	LawName    string          `json:"law_name"`
	ArticleNo  string          `json:"article_no"`
	Snippet    string          `json:"snippet"`
	Components ComponentScores `json:"components"`
}

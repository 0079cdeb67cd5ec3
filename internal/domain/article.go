package domain

import "strings"

// LegalArticle is one statute article row from the preprocessed corpus.
// Index is the row position in the corpus snapshot and joins the article
// into both lexical indices. Articles are immutable after load.
type LegalArticle struct {
	Index     int
	LawName   string
	ArticleNo string
	Text      string
}

// DisplayArticleNo formats a bare article number for display: "3" becomes
// "제3조". Numbers already carrying the "제" prefix pass through unchanged,
// and an empty number stays empty.
func (a LegalArticle) DisplayArticleNo() string {
	no := a.ArticleNo
	if no == "" {
		return ""
	}
	if strings.HasPrefix(no, "제") {
		return no
	}
	return "제" + no + "조"
}

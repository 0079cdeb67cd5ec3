package domain

// CaseMeta is the lightweight per-document metadata record stored next to
// the dense index. Position i in the metadata array describes the same
// document as position i in the ids array; the loader repairs any length
// drift before the join is established.
type CaseMeta struct {
	CaseName     string `json:"case_name"`
	Court        string `json:"court"`
	DecisionDate string `json:"decision_date"`
	CaseNo       string `json:"case_no"`
	Summary      string `json:"summary,omitempty"`
}

// CaseDetail is a full case row from the detail table, keyed by the case
// serial number. Fields absent from the lightweight metadata (holding,
// issues, body) live here.
type CaseDetail struct {
	SerialNo     int64  `parquet:"serial_no"`
	CaseName     string `parquet:"case_name"`
	Court        string `parquet:"court"`
	DecisionDate string `parquet:"decision_date"`
	CaseNo       string `parquet:"case_no"`
	CaseType     string `parquet:"case_type"`
	Holding      string `parquet:"holding"`
	Issues       string `parquet:"issues"`
	Body         string `parquet:"body"`
}

// CaseHit is one ranked case-law search result. Summary and Body are filled
// only when requested. DocID is unique within a single response.
type CaseHit struct {
	DocID        int64   `json:"doc_id"`
	Score        float64 `json:"score"`
	CaseName     string  `json:"case_name"`
	Court        string  `json:"court"`
	DecisionDate string  `json:"decision_date"`
	CaseNo       string  `json:"case_no"`
	Summary      string  `json:"summary,omitempty"`
	Body         string  `json:"body,omitempty"`
}

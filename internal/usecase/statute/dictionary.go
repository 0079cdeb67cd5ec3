package statute

// Curated jeonse-fraud domain dictionaries. These encode reviewer expertise
// about which vocabulary signals deposit-fraud risk and which statutes
// matter; they bias scores only and never gate a result on their own.

// riskKeywords are single terms whose co-occurrence in query and article
// raises the keyword bonus.
var riskKeywords = []string{
	"전세", "임대차", "보증금", "계약금", "가계약", "가계약금", "선계약금", "청약금",
	"중도금", "잔금", "분할지급", "분납", "부분지급", "나눠서 지급", "분할 송금",
	"선입금", "선납", "선결제", "입금", "송금", "이체", "입금 요청", "입금 독촉", "급하게 입금", "급히 입금",
	"지급유예", "지급 연기", "대여", "변제", "반환", "반환청구", "지급청구",
	"위약금", "위약벌", "지연손해금", "연체", "연체료", "손해배상", "불이행", "채무불이행",
	"기망", "사기", "허위", "사취", "횡령", "배임",
	"전세권", "확정일자", "확정일자부여", "전입", "전입신고",
	"근저당", "담보", "담보권", "말소기준", "압류", "가압류", "가처분", "경매", "배당", "낙찰",
	"등기부등본", "권리분석", "말소", "설정", "말소기준권리",
	"특약", "계약해제", "계약해지", "중도해지", "무효", "취소", "해제권", "동시이행항변",
	"명의신탁", "전대", "재임대", "용도제한", "관리비", "공과금", "원상복구", "하자", "수리",
	"열쇠인도", "입주지연", "확약서", "계약서원본",
	"피해자", "구제", "지원", "주거안정", "보증보험", "보증가입", "대위변제", "HUG", "주택도시보증공사",
}

// riskPhrases are multi-word collocations that mark a strong fraud pattern
// when found in either the query or the article.
var riskPhrases = []string{
	"계약금 분할 지급", "계약금 분할지급", "보증금 분할 지급", "보증금 분할지급",
	"선입금 요구", "선납 요구", "입금 독촉", "급하게 입금", "급히 입금",
	"가계약금 입금", "가계약 먼저", "계약서 나중", "등기 후 지급",
	"확정일자 없이", "전입 지연", "근저당 설정 예정", "말소기준권리 존재",
}

// aliases expands query tokens: when any member of a group appears in the
// query, the whole group (base term included) enters the effective token set.
var aliases = map[string][]string{
	"계약금":  {"가계약금", "선계약금", "청약금", "계약금"},
	"입금":   {"입금", "송금", "이체", "선입금", "선납", "선결제"},
	"분할지급": {"분할지급", "분납", "부분지급", "나눠서 지급", "분할 송금"},
	"보증금":  {"보증금", "전세보증금", "임대보증금"},
	"사기":   {"사기", "기망", "사취", "허위"},
}

// titleBoostLaws are the primary statutes of the domain; an article whose
// law name contains one of these earns the title bonus. The trailing
// entries (civil code, civil execution, criminal code) are the base laws
// the jeonse-fraud context leans on.
var titleBoostLaws = []string{
	"주택임대차보호법",
	"주택임대차보호법 시행령",
	"전세사기피해자 지원 및 주거안정에 관한 특별법",
	"전세사기피해자 지원 및 주거안정에 관한 특별법 시행령",
	"주택도시보증공사법",
	"주택공급에 관한 규정",
	"민법",
	"민사집행법",
	"형법",
}

// downWords mark procedural/committee articles with low practical relevance.
var downWords = []string{
	"위원회", "주택임대차위원회", "조정위원회", "구성", "심의", "조정서의 작성", "벌칙 적용 시 공무원 의제",
}

// focusNeedles is the fixed focus vocabulary intersected with the expanded
// query token set for the soft boost.
var focusNeedles = map[string]struct{}{
	"계약금": {}, "가계약금": {}, "분할지급": {}, "분납": {}, "선입금": {}, "선납": {},
	"보증금": {}, "확정일자": {}, "근저당": {}, "해제": {}, "해지": {}, "사기": {}, "기망": {},
}

// expandQueryTokens widens the query token set through the alias table.
// Group membership is tested against the original tokens only, so the
// expansion of one group never triggers another.
func expandQueryTokens(tokens []string) map[string]struct{} {
	original := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		original[t] = struct{}{}
	}

	out := make(map[string]struct{}, len(original))
	for t := range original {
		out[t] = struct{}{}
	}
	for base, group := range aliases {
		_, hit := original[base]
		if !hit {
			for _, alt := range group {
				if _, ok := original[alt]; ok {
					hit = true
					break
				}
			}
		}
		if hit {
			out[base] = struct{}{}
			for _, alt := range group {
				out[alt] = struct{}{}
			}
		}
	}
	return out
}

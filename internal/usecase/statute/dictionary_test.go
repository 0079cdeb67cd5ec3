package statute

import "testing"

func TestExpandQueryTokens_GroupExpansion(t *testing.T) {
	out := expandQueryTokens([]string{"송금"})

	for _, want := range []string{"송금", "입금", "이체", "선입금", "선납", "선결제"} {
		if _, ok := out[want]; !ok {
			t.Errorf("expected %q in expanded set", want)
		}
	}
	if _, ok := out["보증금"]; ok {
		t.Error("unrelated group must not expand")
	}
}

func TestExpandQueryTokens_BaseTermTriggersOwnGroup(t *testing.T) {
	out := expandQueryTokens([]string{"기망"})

	for _, want := range []string{"사기", "기망", "사취", "허위"} {
		if _, ok := out[want]; !ok {
			t.Errorf("expected %q in expanded set", want)
		}
	}
}

func TestExpandQueryTokens_NoAliasHit(t *testing.T) {
	out := expandQueryTokens([]string{"해지"})

	if len(out) != 1 {
		t.Errorf("token without alias group should pass through alone, got %v", out)
	}
	if _, ok := out["해지"]; !ok {
		t.Error("original token must survive")
	}
}

func TestExpandQueryTokens_ExactlyOneGroup(t *testing.T) {
	out := expandQueryTokens([]string{"가계약금"})

	want := map[string]struct{}{
		"가계약금": {}, "선계약금": {}, "청약금": {}, "계약금": {},
	}
	if len(out) != len(want) {
		t.Fatalf("expected %d tokens, got %v", len(want), out)
	}
	for token := range want {
		if _, ok := out[token]; !ok {
			t.Errorf("expected %q in expanded set", token)
		}
	}
}

func TestDictionaries_NotEmpty(t *testing.T) {
	if len(riskKeywords) == 0 || len(riskPhrases) == 0 || len(titleBoostLaws) == 0 ||
		len(downWords) == 0 || len(focusNeedles) == 0 {
		t.Fatal("domain dictionaries must be populated")
	}
}

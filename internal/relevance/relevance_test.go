package relevance

import "testing"

func TestMatch_EmptyKeywordSetMatchesNothing(t *testing.T) {
	t.Parallel()

	var kw Keywords
	if kw.Match("eprocurement notice for road works") {
		t.Fatal("empty keyword set must never match")
	}
}

func TestMatch_CaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()

	kw := Parse([]string{"eProcur", "contract management"})

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"exact lowercase", "eprocurement notice", true},
		{"mixed case text", "Notice: eProcurement Portal Migration", true},
		{"multi-word keyword", "Annual Contract Management services", true},
		{"substring inside word", "xeprocurx", true},
		{"no match", "supply of stationery items", false},
		{"empty text", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := kw.Match(tt.text); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParse_NormalizesKeywords(t *testing.T) {
	t.Parallel()

	kw := Parse([]string{" eTender ", "", "EAUCTION", "  "})

	if len(kw) != 2 {
		t.Fatalf("Parse() returned %d keywords, want 2: %v", len(kw), kw)
	}
	if kw[0] != "etender" || kw[1] != "eauction" {
		t.Errorf("Parse() = %v, want [etender eauction]", kw)
	}
}

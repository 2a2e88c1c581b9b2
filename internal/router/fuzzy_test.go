package router

import "testing"

func TestFuzzyLookup(t *testing.T) {
	candidates := []string{"customer", "invoice", "supplier", "balance"}

	tests := []struct {
		term string
		want string
		ok   bool
	}{
		{"custommer", "customer", true}, // one inserted letter
		{"invoce", "invoice", true},     // one dropped letter
		{"suplier", "supplier", true},
		{"customer", "customer", true}, // exact terms still resolve
		{"xyzzy", "", false},
		{"", "", false},
		{"ba", "", false}, // below the length guard
	}
	for _, tt := range tests {
		got, ok := fuzzyLookup(tt.term, candidates, 80)
		if ok != tt.ok || got != tt.want {
			t.Errorf("fuzzyLookup(%q) = %q, %v; want %q, %v", tt.term, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFuzzyLookupEmptyCandidates(t *testing.T) {
	if _, ok := fuzzyLookup("customer", nil, 10); ok {
		t.Error("fuzzyLookup matched with no candidates")
	}
}

// Strictly-greater comparison: on a tie the earlier candidate stays.
func TestFuzzyLookupTieKeepsFirst(t *testing.T) {
	got, ok := fuzzyLookup("abcf", []string{"abcd", "abce"}, 70)
	if !ok || got != "abcd" {
		t.Errorf("fuzzyLookup tie = %q, %v; want \"abcd\", true", got, ok)
	}
}

func TestSimilarityWordOrder(t *testing.T) {
	// The token-set pass makes word order irrelevant.
	if s := similarity("paid invoices", "invoices paid"); s != 100 {
		t.Errorf("similarity(reordered) = %d, want 100", s)
	}
	// The intersection pass rewards partial overlap.
	if s := similarity("bank balance", "bank balance today"); s < 80 {
		t.Errorf("similarity(partial overlap) = %d, want >= 80", s)
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"faktur", "faktur", 100},
		{"", "faktur", 0},
		{"faktur", "", 0},
		{"custommer", "customer", 89}, // 1 edit over 9 runes
		{"abcd", "wxyz", 0},
	}
	for _, tt := range tests {
		if got := ratio(tt.a, tt.b); got != tt.want {
			t.Errorf("ratio(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

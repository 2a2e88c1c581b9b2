package router

import (
	"reflect"
	"testing"
)

func TestExtractKeywords(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"What are my unpaid invoices?", []string{"unpaid", "invoices"}},
		{"Berapa saldo bank saya?", []string{"saldo", "bank"}},
		{"tolong cek stok dong", []string{"stok"}},
		{"sales, sales, SALES!", []string{"sales"}}, // de-duplicated, first appearance
		{"a b c", nil},                              // single characters dropped
		{"", nil},
		{"the is are of", nil}, // stopwords only
	}
	for _, tt := range tests {
		got := extractKeywords(tt.query)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("extractKeywords(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestExtractKeywordsKeepsActionVerbs(t *testing.T) {
	// "list" and "laporan" carry routing signal and must survive.
	got := extractKeywords("list the laporan")
	want := []string{"list", "laporan"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("extractKeywords = %v, want %v", got, want)
	}
}

func TestScoreTool(t *testing.T) {
	r := &Router{params: DefaultParams()}
	refs := map[string]struct{}{
		"invoice": {}, "unpaid": {}, "overdue": {}, "customer": {},
	}

	tests := []struct {
		name     string
		keywords []string
		tool     string
		want     float64
	}{
		// Two reference hits plus the "invoice" and "sales" name words.
		{"refs and name overlap", []string{"invoice", "unpaid", "sales"}, "invoice_list_sales", 3.0},
		// One reference hit, no name overlap.
		{"refs only", []string{"overdue"}, "invoice_list_sales", 1.0},
		// Action verb with a matching suffix, plus the name word itself.
		{"verb bonus", []string{"list", "customer"}, "contact_list", 2.0},
		// Verb without a matching suffix earns nothing extra.
		{"verb no suffix", []string{"search"}, "contact_list", 0.0},
		{"nothing", []string{"banana"}, "contact_list", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kwset := make(map[string]struct{}, len(tt.keywords))
			for _, k := range tt.keywords {
				kwset[k] = struct{}{}
			}
			if got := r.scoreTool(tt.keywords, kwset, tt.tool, refs); got != tt.want {
				t.Errorf("scoreTool(%v, %s) = %v, want %v", tt.keywords, tt.tool, got, tt.want)
			}
		})
	}
}

// Two matching verbs still pay out a single bonus.
func TestScoreToolVerbBonusOnce(t *testing.T) {
	r := &Router{params: DefaultParams()}
	keywords := []string{"list", "daftar"}
	kwset := map[string]struct{}{"list": {}, "daftar": {}}

	got := r.scoreTool(keywords, kwset, "contact_list", map[string]struct{}{})
	// 0.5 for the "list" name word, 0.5 for one verb bonus.
	if got != 1.0 {
		t.Errorf("scoreTool = %v, want 1.0", got)
	}
}

func TestHasAnySuffix(t *testing.T) {
	if !hasAnySuffix("invoice_detail", []string{"_detail", "_get"}) {
		t.Error("suffix _detail not detected")
	}
	if hasAnySuffix("invoice_detail", []string{"_list"}) {
		t.Error("false suffix match")
	}
}

func TestNormalizeKeywords(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		in         []string
		want       []string
		recognized int
	}{
		// Synonyms collapse, duplicates merge post-normalization.
		{[]string{"faktur", "invoices"}, []string{"invoice"}, 1},
		{[]string{"saldo", "bank"}, []string{"balance", "bank"}, 2},
		// Typo recovered through the fuzzy pass.
		{[]string{"fakttur"}, []string{"invoice"}, 1},
		// Unknown terms stay raw and count as unrecognized.
		{[]string{"banana", "stock"}, []string{"banana", "stock"}, 1},
		{nil, nil, 0},
	}
	for _, tt := range tests {
		got, rec := r.normalizeKeywords(tt.in)
		if !reflect.DeepEqual(got, tt.want) || rec != tt.recognized {
			t.Errorf("normalizeKeywords(%v) = %v, %d; want %v, %d", tt.in, got, rec, tt.want, tt.recognized)
		}
	}
}

package router

import (
	"testing"
	"time"
)

// refDay is a Friday in a non-leap year.
var refDay = time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)

func TestResolveDatePhrase(t *testing.T) {
	tests := []struct {
		phrase string
		from   string
		to     string
	}{
		// Calendar anchors, both languages, case-insensitive.
		{"today", "2025-03-14", "2025-03-14"},
		{"Hari Ini", "2025-03-14", "2025-03-14"},
		{"yesterday", "2025-03-13", "2025-03-13"},
		{"kemarin", "2025-03-13", "2025-03-13"},

		// ISO week anchors.
		{"this week", "2025-03-10", "2025-03-14"},
		{"minggu ini", "2025-03-10", "2025-03-14"},
		{"last week", "2025-03-03", "2025-03-09"},
		{"minggu lalu", "2025-03-03", "2025-03-09"},

		// Month anchors.
		{"this month", "2025-03-01", "2025-03-14"},
		{"bulan ini", "2025-03-01", "2025-03-14"},
		{"last month", "2025-02-01", "2025-02-28"},
		{"bulan lalu", "2025-02-01", "2025-02-28"},

		// Year anchors.
		{"this year", "2025-01-01", "2025-03-14"},
		{"tahun ini", "2025-01-01", "2025-03-14"},
		{"last year", "2024-01-01", "2024-12-31"},
		{"tahun lalu", "2024-01-01", "2024-12-31"},

		// Fixed quarters of the reference year.
		{"q1", "2025-01-01", "2025-03-31"},
		{"Q4", "2025-10-01", "2025-12-31"},
		{"kuartal 2", "2025-04-01", "2025-06-30"},
		{"quarter 3", "2025-07-01", "2025-09-30"},

		// Rolling windows, digits and number words.
		{"7 days", "2025-03-07", "2025-03-14"},
		{"1 day", "2025-03-13", "2025-03-14"},
		{"30 hari", "2025-02-12", "2025-03-14"},
		{"thirty days", "2025-02-12", "2025-03-14"},
		{"ninety days", "2024-12-14", "2025-03-14"},
		{"tujuh hari", "2025-03-07", "2025-03-14"},
		{"empat belas hari", "2025-02-28", "2025-03-14"},
		{"dua puluh hari", "2025-02-22", "2025-03-14"},

		// Extra whitespace is tolerated.
		{"  last   month ", "2025-02-01", "2025-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			got, ok := ResolveDatePhrase(tt.phrase, refDay)
			if !ok {
				t.Fatalf("ResolveDatePhrase(%q) = no match, want %s..%s", tt.phrase, tt.from, tt.to)
			}
			if got.From != tt.from || got.To != tt.to {
				t.Errorf("ResolveDatePhrase(%q) = %s..%s, want %s..%s", tt.phrase, got.From, got.To, tt.from, tt.to)
			}
		})
	}
}

func TestResolveDatePhraseMisses(t *testing.T) {
	for _, phrase := range []string{
		"", "banana", "next month", "q5", "quarter 5", "0x days",
		"sales last month", // full-phrase contract: embedded phrases do not resolve
		"days", "hari",
	} {
		if _, ok := ResolveDatePhrase(phrase, refDay); ok {
			t.Errorf("ResolveDatePhrase(%q) matched, want no match", phrase)
		}
	}
}

func TestResolveDatePhraseCalendarEdges(t *testing.T) {
	// Last month across a year boundary.
	jan := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	got, ok := ResolveDatePhrase("last month", jan)
	if !ok {
		t.Fatal("last month did not resolve")
	}
	if got.From != "2024-12-01" || got.To != "2024-12-31" {
		t.Errorf("last month from January = %s..%s, want 2024-12-01..2024-12-31", got.From, got.To)
	}

	// Leap-year February.
	mar2024 := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)
	got, ok = ResolveDatePhrase("bulan lalu", mar2024)
	if !ok {
		t.Fatal("bulan lalu did not resolve")
	}
	if got.From != "2024-02-01" || got.To != "2024-02-29" {
		t.Errorf("bulan lalu in leap year = %s..%s, want 2024-02-01..2024-02-29", got.From, got.To)
	}

	// A Sunday belongs to the week starting the previous Monday.
	sun := time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC)
	got, ok = ResolveDatePhrase("this week", sun)
	if !ok {
		t.Fatal("this week did not resolve")
	}
	if got.From != "2025-03-10" || got.To != "2025-03-16" {
		t.Errorf("this week on a Sunday = %s..%s, want 2025-03-10..2025-03-16", got.From, got.To)
	}
}

func TestDetectDateRange(t *testing.T) {
	tests := []struct {
		query string
		from  string
		to    string
	}{
		{"sales last month please", "2025-02-01", "2025-02-28"},
		{"penjualan 30 hari terakhir", "2025-02-12", "2025-03-14"},
		{"unpaid invoices this week", "2025-03-10", "2025-03-14"},
		{"profit q2", "2025-04-01", "2025-06-30"},
		{"pengeluaran kuartal 3", "2025-07-01", "2025-09-30"},
		{"laporan tujuh hari", "2025-03-07", "2025-03-14"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, ok := detectDateRange(tt.query, refDay)
			if !ok {
				t.Fatalf("detectDateRange(%q) = no match", tt.query)
			}
			if got.From != tt.from || got.To != tt.to {
				t.Errorf("detectDateRange(%q) = %s..%s, want %s..%s", tt.query, got.From, got.To, tt.from, tt.to)
			}
		})
	}
}

func TestDetectDateRangePriority(t *testing.T) {
	// Fixed anchors outrank quarter and window forms.
	got, ok := detectDateRange("show q2 for this year", refDay)
	if !ok {
		t.Fatal("no match")
	}
	if got.From != "2025-01-01" || got.To != "2025-03-14" {
		t.Errorf("anchor priority = %s..%s, want 2025-01-01..2025-03-14", got.From, got.To)
	}

	if _, ok := detectDateRange("no dates in here", refDay); ok {
		t.Error("detectDateRange matched a dateless query")
	}
}

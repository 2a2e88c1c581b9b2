package router

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// dateLayout is the wire format for every resolved date.
const dateLayout = "2006-01-02"

// DateRange is an inclusive, resolved date range in ISO form.
type DateRange struct {
	From string `json:"start_date"`
	To   string `json:"end_date"`
}

// dateRule resolves one family of fixed date phrases.
type dateRule struct {
	phrases []string
	resolve func(today time.Time) DateRange
}

// dateRules holds the fixed-phrase rules in priority order: calendar
// anchors, then week, month, and year anchors. Quarters and rolling
// windows are handled by the regex rules below, after these.
var dateRules = []dateRule{
	{phrases: []string{"hari ini", "today"}, resolve: func(t time.Time) DateRange {
		return DateRange{From: fmtDate(t), To: fmtDate(t)}
	}},
	{phrases: []string{"kemarin", "yesterday"}, resolve: func(t time.Time) DateRange {
		y := t.AddDate(0, 0, -1)
		return DateRange{From: fmtDate(y), To: fmtDate(y)}
	}},
	{phrases: []string{"minggu ini", "this week"}, resolve: func(t time.Time) DateRange {
		return DateRange{From: fmtDate(isoMonday(t)), To: fmtDate(t)}
	}},
	{phrases: []string{"minggu lalu", "last week"}, resolve: func(t time.Time) DateRange {
		monday := isoMonday(t)
		return DateRange{From: fmtDate(monday.AddDate(0, 0, -7)), To: fmtDate(monday.AddDate(0, 0, -1))}
	}},
	{phrases: []string{"bulan ini", "this month"}, resolve: func(t time.Time) DateRange {
		first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		return DateRange{From: fmtDate(first), To: fmtDate(t)}
	}},
	{phrases: []string{"bulan lalu", "last month"}, resolve: func(t time.Time) DateRange {
		first := time.Date(t.Year(), t.Month()-1, 1, 0, 0, 0, 0, t.Location())
		last := time.Date(t.Year(), t.Month(), 0, 0, 0, 0, 0, t.Location())
		return DateRange{From: fmtDate(first), To: fmtDate(last)}
	}},
	{phrases: []string{"tahun ini", "this year"}, resolve: func(t time.Time) DateRange {
		first := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
		return DateRange{From: fmtDate(first), To: fmtDate(t)}
	}},
	{phrases: []string{"tahun lalu", "last year"}, resolve: func(t time.Time) DateRange {
		first := time.Date(t.Year()-1, time.January, 1, 0, 0, 0, 0, t.Location())
		last := time.Date(t.Year()-1, time.December, 31, 0, 0, 0, 0, t.Location())
		return DateRange{From: fmtDate(first), To: fmtDate(last)}
	}},
}

// numberWords maps spelled-out window sizes, English and Indonesian, to
// day counts.
var numberWords = map[string]int{
	"seven":          7,
	"fourteen":       14,
	"thirty":         30,
	"sixty":          60,
	"ninety":         90,
	"tujuh":          7,
	"sepuluh":        10,
	"empat belas":    14,
	"lima belas":     15,
	"dua puluh":      20,
	"tiga puluh":     30,
	"enam puluh":     60,
	"sembilan puluh": 90,
}

var (
	quarterStrictRe = regexp.MustCompile(`^(?:q([1-4])|(?:kuartal|quarter)\s+([1-4]))$`)
	quarterScanRe   = regexp.MustCompile(`\bq([1-4])\b|\b(?:kuartal|quarter)\s+([1-4])\b`)
	windowStrictRe  = regexp.MustCompile(`^(\d+)\s+(?:days?|hari)$`)
	windowScanRe    = regexp.MustCompile(`\b(\d+)\s+(?:days?|hari)\b`)
	spelledStrictRe = regexp.MustCompile(`^(` + spelledAlternation() + `)\s+(?:days?|hari)$`)
	spelledScanRe   = regexp.MustCompile(`\b(` + spelledAlternation() + `)\s+(?:days?|hari)\b`)
)

// spelledAlternation joins the number words longest-first so multi-word
// forms are never shadowed by their suffixes.
func spelledAlternation() string {
	words := make([]string, 0, len(numberWords))
	for w := range numberWords {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	return strings.Join(words, "|")
}

// ResolveDatePhrase resolves a whole phrase such as "last month", "kuartal 2",
// or "30 hari" against the given reference day. It reports false when the
// phrase is not a recognized date expression; that is not an error.
func ResolveDatePhrase(phrase string, today time.Time) (DateRange, bool) {
	p := strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
	if p == "" {
		return DateRange{}, false
	}
	for _, r := range dateRules {
		for _, ph := range r.phrases {
			if p == ph {
				return r.resolve(today), true
			}
		}
	}
	if m := quarterStrictRe.FindStringSubmatch(p); m != nil {
		return quarterRange(quarterOf(m), today), true
	}
	if m := windowStrictRe.FindStringSubmatch(p); m != nil {
		n, _ := strconv.Atoi(m[1])
		return windowRange(n, today), true
	}
	if m := spelledStrictRe.FindStringSubmatch(p); m != nil {
		return windowRange(numberWords[m[1]], today), true
	}
	return DateRange{}, false
}

// detectDateRange scans a free-form query for any recognized date phrase
// and resolves the first hit in rule-priority order.
func detectDateRange(query string, today time.Time) (DateRange, bool) {
	q := strings.ToLower(query)
	for _, r := range dateRules {
		for _, ph := range r.phrases {
			if strings.Contains(q, ph) {
				return r.resolve(today), true
			}
		}
	}
	if m := quarterScanRe.FindStringSubmatch(q); m != nil {
		return quarterRange(quarterOf(m), today), true
	}
	if m := windowScanRe.FindStringSubmatch(q); m != nil {
		n, _ := strconv.Atoi(m[1])
		return windowRange(n, today), true
	}
	if m := spelledScanRe.FindStringSubmatch(q); m != nil {
		return windowRange(numberWords[m[1]], today), true
	}
	return DateRange{}, false
}

// quarterOf extracts the quarter number from a regex match, whichever
// capture group is set.
func quarterOf(m []string) int {
	for _, g := range m[1:] {
		if g != "" {
			n, _ := strconv.Atoi(g)
			return n
		}
	}
	return 0
}

// quarterRange returns the fixed quarter of the reference year.
func quarterRange(q int, today time.Time) DateRange {
	startMonth := time.Month(3*q - 2)
	first := time.Date(today.Year(), startMonth, 1, 0, 0, 0, 0, today.Location())
	// Day zero of the following month is the quarter's last day.
	last := time.Date(today.Year(), startMonth+3, 0, 0, 0, 0, 0, today.Location())
	return DateRange{From: fmtDate(first), To: fmtDate(last)}
}

// windowRange returns the rolling window ending today.
func windowRange(days int, today time.Time) DateRange {
	return DateRange{From: fmtDate(today.AddDate(0, 0, -days)), To: fmtDate(today)}
}

// isoMonday returns the Monday of t's ISO week.
func isoMonday(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return t.AddDate(0, 0, 1-wd)
}

func fmtDate(t time.Time) string {
	return t.Format(dateLayout)
}

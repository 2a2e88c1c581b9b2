package router

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minKeywordLen drops single-character tokens during extraction.
const minKeywordLen = 2

// stopwords holds tokens carrying no routing signal: articles, pronouns,
// question words, and generic verbs in both languages. Action verbs such
// as "list" or "laporan" are deliberately absent; the scorer needs them.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// English.
		"a", "an", "the", "is", "are", "was", "were", "be", "been", "being", "am",
		"i", "me", "my", "mine", "we", "us", "our", "you", "your",
		"he", "she", "it", "its", "they", "them", "their",
		"this", "that", "these", "those", "there", "here",
		"what", "which", "who", "whom", "whose", "how", "when", "where", "why",
		"do", "does", "did", "done", "can", "could", "will", "would",
		"shall", "should", "may", "might", "must",
		"have", "has", "had", "having",
		"of", "for", "to", "in", "on", "at", "by", "with", "from", "into", "about", "as",
		"and", "or", "but", "not", "no", "yes", "if", "then", "than", "so",
		"all", "any", "some", "each", "every", "please",
		"show", "give", "tell", "see", "let", "want", "need", "like",
		"just", "now", "also", "too", "very",

		// Indonesian.
		"yang", "yg", "di", "ke", "dari", "untuk", "utk", "dengan", "pada", "dalam",
		"dan", "atau", "tapi", "tetapi", "juga", "saja",
		"sudah", "belum", "akan", "ada", "adalah", "itu", "ini",
		"saya", "aku", "kamu", "anda", "kami", "kita", "mereka", "dia", "ia", "nya",
		"apa", "siapa", "kapan", "mana", "dimana", "bagaimana", "gimana",
		"mengapa", "kenapa", "berapa",
		"bisa", "boleh", "mau", "ingin", "minta", "tolong", "mohon", "coba",
		"lihat", "cek", "tampilkan", "tunjukkan", "buat", "bikin", "punya",
		"per", "semua", "banyak", "sedikit", "lagi",
		"dong", "ya", "deh", "sih", "kan", "nih",
	} {
		stopwords[w] = struct{}{}
	}
}

// actionVerbSuffixes maps recognized action verbs to the tool-name
// suffixes they imply. The scorer awards the verb bonus at most once per
// tool, however many verbs matched.
var actionVerbSuffixes = map[string][]string{
	"list":      {"_list"},
	"daftar":    {"_list"},
	"find":      {"_search"},
	"search":    {"_search"},
	"cari":      {"_search"},
	"get":       {"_detail", "_get"},
	"detail":    {"_detail", "_get"},
	"info":      {"_detail", "_get"},
	"summary":   {"_summary", "_totals"},
	"report":    {"_summary", "_totals"},
	"total":     {"_summary", "_totals"},
	"ringkasan": {"_summary", "_totals"},
	"laporan":   {"_summary", "_totals"},
}

// extractKeywords tokenizes a query into lowered, de-duplicated keywords
// in first-appearance order, dropping short tokens and stopwords.
func extractKeywords(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	seen := make(map[string]struct{}, len(fields))
	var out []string
	for _, f := range fields {
		if utf8.RuneCountInString(f) < minKeywordLen {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// scoreTool computes a tool's relevance to the normalized keywords: one
// point per reference-keyword overlap, a weighted point per tool-name word
// overlap, and a single action-verb bonus when a verb's implied suffix
// matches the tool name.
func (r *Router) scoreTool(keywords []string, kwset map[string]struct{}, name string, refs map[string]struct{}) float64 {
	var score float64
	for _, k := range keywords {
		if _, ok := refs[k]; ok {
			score++
		}
	}
	for _, w := range strings.Split(name, "_") {
		if _, ok := kwset[w]; ok {
			score += r.params.NameOverlapWeight
		}
	}
	for _, k := range keywords {
		if sufs, ok := actionVerbSuffixes[k]; ok && hasAnySuffix(name, sufs) {
			score += r.params.ActionVerbBonus
			break
		}
	}
	return score
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

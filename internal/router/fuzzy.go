package router

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// minFuzzyLen is the shortest term the fuzzy matcher will consider.
// Short fragments produce too many false positives to be useful.
const minFuzzyLen = 3

// fuzzyLookup finds the candidate most similar to term, if any scores at
// or above threshold (0-100). Ties keep the earlier candidate. Terms
// shorter than minFuzzyLen and empty candidate lists report no match.
func fuzzyLookup(term string, candidates []string, threshold int) (string, bool) {
	if utf8.RuneCountInString(term) < minFuzzyLen || len(candidates) == 0 {
		return "", false
	}
	t := strings.ToLower(term)

	best := ""
	bestScore := 0
	for _, c := range candidates {
		if s := similarity(t, strings.ToLower(c)); s > bestScore {
			best, bestScore = c, s
		}
	}
	if bestScore >= threshold {
		return best, true
	}
	return "", false
}

// similarity scores a against b on a 0-100 scale. The plain edit-distance
// ratio is combined with token-set comparisons so word order and partial
// overlaps do not drag the score down.
func similarity(a, b string) int {
	best := ratio(a, b)

	at := tokenSet(a)
	bt := tokenSet(b)
	if s := ratio(strings.Join(at, " "), strings.Join(bt, " ")); s > best {
		best = s
	}

	inter := intersectSorted(at, bt)
	if len(inter) > 0 {
		joined := strings.Join(inter, " ")
		if s := ratio(joined, strings.Join(at, " ")); s > best {
			best = s
		}
		if s := ratio(joined, strings.Join(bt, " ")); s > best {
			best = s
		}
	}
	return best
}

// ratio is the normalized edit-distance similarity: identical strings
// score 100, disjoint strings approach 0.
func ratio(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	longest := la
	if lb > longest {
		longest = lb
	}
	return int(math.Round(100 * (1 - float64(dist)/float64(longest))))
}

// tokenSet splits s into sorted, de-duplicated whitespace tokens.
func tokenSet(s string) []string {
	fields := strings.Fields(s)
	seen := make(map[string]struct{}, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// intersectSorted returns the elements common to two sorted slices.
func intersectSorted(a, b []string) []string {
	var out []string
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}

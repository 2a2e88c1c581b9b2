package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed hints.yaml
var hintsYAML []byte

var (
	keywordIndex     map[string]map[string]struct{}
	keywordIndexOnce sync.Once
	keywordIndexErr  error
)

// KeywordIndex parses the embedded hints document into per-tool reference
// keyword sets. The result is computed once and shared for the process
// lifetime; callers must treat it as read-only.
func KeywordIndex() (map[string]map[string]struct{}, error) {
	keywordIndexOnce.Do(func() {
		keywordIndex, keywordIndexErr = buildKeywordIndex(hintsYAML)
	})
	return keywordIndex, keywordIndexErr
}

func buildKeywordIndex(doc []byte) (map[string]map[string]struct{}, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("parsing hints document: %w", err)
	}

	idx := make(map[string]map[string]struct{}, len(raw))
	for tool, hint := range raw {
		if _, ok := Lookup(tool); !ok {
			return nil, fmt.Errorf("hints document references unknown tool %q", tool)
		}
		set := make(map[string]struct{})
		for _, w := range splitWords(hint) {
			set[w] = struct{}{}
		}
		if len(set) == 0 {
			return nil, fmt.Errorf("hints document has an empty hint for tool %q", tool)
		}
		idx[tool] = set
	}

	// Every catalog tool must be covered, or it could never be suggested
	// by keyword scoring.
	for _, e := range entries {
		if _, ok := idx[e.Name]; !ok {
			return nil, fmt.Errorf("hints document is missing tool %q", e.Name)
		}
	}
	return idx, nil
}

// splitWords lowers s and splits it into words of at least two characters.
func splitWords(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= 2 {
			out = append(out, f)
		}
	}
	return out
}

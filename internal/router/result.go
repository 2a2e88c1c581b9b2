package router

// Confidence labels how much trust a suggestion carries: pattern-backed
// suggestions are definitive, keyword- and fuzzy-backed ones depend on
// context and need ranking.
type Confidence string

const (
	ConfidenceDefinitive       Confidence = "definitive"
	ConfidenceContextDependent Confidence = "context_dependent"
)

// Suggestion is one candidate tool invocation with pre-filled parameters.
// It is immutable once scored; only the router's date-backfill step adds
// to SuggestedParams.
type Suggestion struct {
	ToolName        string         `json:"tool_name"`
	Purpose         string         `json:"purpose"`
	KeyParams       []string       `json:"key_params,omitempty"`
	SuggestedParams map[string]any `json:"suggested_params"`
	Score           float64        `json:"score"`
	Confidence      Confidence     `json:"confidence"`
}

// Result is the routing outcome for one query. MatchedTools is in rank
// order. Exactly one of a non-empty MatchedTools and a non-empty
// ClarificationNeeded is the useful outcome; both empty means every
// candidate scored zero, which callers must present as "no match", not
// as a request to rephrase.
type Result struct {
	Query               string       `json:"query"`
	MatchedTools        []Suggestion `json:"matched_tools"`
	ClarificationNeeded string       `json:"clarification_needed,omitempty"`
	DateRange           *DateRange   `json:"date_range,omitempty"`
}

// Top returns the highest-ranked suggestion, or false when there is none.
func (r *Result) Top() (Suggestion, bool) {
	if len(r.MatchedTools) == 0 {
		return Suggestion{}, false
	}
	return r.MatchedTools[0], true
}

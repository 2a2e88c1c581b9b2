// Package router maps bilingual free-text accounting questions to ranked
// tool suggestions. The pipeline is synchronous and pure: patterns first,
// then keyword scoring over the whole catalog, with date phrases resolved
// once per query and re-attached wherever a suggestion can carry them.
// Malformed queries are never errors; authoring mistakes in the static
// tables fail construction instead.
package router

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jkaninda/hesabu/internal/catalog"
	"github.com/jkaninda/hesabu/internal/observability"
)

// clarificationPrompt is returned when a query has too little recognized
// signal to score against the catalog.
const clarificationPrompt = "I could not match that to an accounting question. Try asking about invoices, customers, sales, or products."

// Routing branch labels used in metrics and trace attributes.
const (
	branchPattern       = "pattern"
	branchKeyword       = "keyword"
	branchClarification = "clarification"
	branchEmpty         = "empty"
)

// Params holds the routing tunables. The zero value of any field falls
// back to its default; the defaults are preserved behavior, not derived,
// so overriding them is a deliberate act.
type Params struct {
	TopN              int     // Suggestions kept after ranking. Default: 5.
	MinKeywords       int     // Recognized keywords below which an unmatched query asks for clarification. Default: 2.
	FuzzyThreshold    int     // Minimum 0-100 similarity for typo recovery. Default: 80.
	NameOverlapWeight float64 // Score per query keyword found in the tool name. Default: 0.5.
	ActionVerbBonus   float64 // One-time bonus when an action verb matches the tool-name suffix. Default: 0.5.
}

// DefaultParams returns the preserved routing constants.
func DefaultParams() Params {
	return Params{
		TopN:              5,
		MinKeywords:       2,
		FuzzyThreshold:    80,
		NameOverlapWeight: 0.5,
		ActionVerbBonus:   0.5,
	}
}

func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.TopN <= 0 {
		p.TopN = d.TopN
	}
	if p.MinKeywords <= 0 {
		p.MinKeywords = d.MinKeywords
	}
	if p.FuzzyThreshold <= 0 {
		p.FuzzyThreshold = d.FuzzyThreshold
	}
	if p.NameOverlapWeight <= 0 {
		p.NameOverlapWeight = d.NameOverlapWeight
	}
	if p.ActionVerbBonus <= 0 {
		p.ActionVerbBonus = d.ActionVerbBonus
	}
	return p
}

// Router turns one query string into a RoutingResult. It is immutable
// after construction and safe for concurrent use.
type Router struct {
	entries         []catalog.Entry
	hints           map[string]map[string]struct{}
	vocab           map[string]struct{}
	fuzzyCandidates []string
	params          Params
	now             func() time.Time
	metrics         *observability.MetricsCollector
	tracer          trace.Tracer
}

// New validates every static table and builds a Router. Table authoring
// errors (dangling tool references, duplicate phrases, hint gaps) are
// returned here so they can never surface per-query.
func New(params Params, logger *slog.Logger) (*Router, error) {
	hints, err := catalog.KeywordIndex()
	if err != nil {
		return nil, fmt.Errorf("loading keyword hints: %w", err)
	}
	if err := validateTables(); err != nil {
		return nil, fmt.Errorf("validating routing tables: %w", err)
	}

	r := &Router{
		entries:         catalog.Entries(),
		hints:           hints,
		vocab:           buildVocab(hints),
		fuzzyCandidates: synonymKeys(),
		params:          params.withDefaults(),
		now:             time.Now,
	}

	if logger != nil {
		logger.Debug("routing tables loaded",
			slog.Int("tools", len(r.entries)),
			slog.Int("patterns", len(patterns)),
			slog.Int("synonyms", len(synonymMap)),
			slog.Int("terms", len(termToTools)),
		)
	}
	return r, nil
}

// WithNow overrides the reference-day source, for tests and for replaying
// queries against a fixed day.
func (r *Router) WithNow(now func() time.Time) *Router {
	r.now = now
	return r
}

// WithObservability attaches metrics and tracing. Either may be nil.
func (r *Router) WithObservability(m *observability.MetricsCollector, ts *observability.TracerSetup) *Router {
	r.metrics = m
	if ts != nil {
		r.tracer = ts.Tracer()
	}
	return r
}

// Route maps a query to ranked tool suggestions, a clarification request,
// or an empty result when nothing scores. It never returns an error; the
// context carries tracing only, nothing here blocks.
func (r *Router) Route(ctx context.Context, query string) *Result {
	return r.RouteAt(ctx, query, r.now())
}

// RouteAt routes against an explicit reference day instead of the router's
// clock. Same query, same day, same tables: same result.
func (r *Router) RouteAt(ctx context.Context, query string, today time.Time) *Result {
	if r.tracer != nil {
		var span trace.Span
		ctx, span = r.tracer.Start(ctx, "router.route")
		defer span.End()
	}
	start := time.Now()

	res := &Result{Query: query, MatchedTools: []Suggestion{}}

	// The date pass always runs first, whichever branch wins: pattern
	// templates and keyword backfill both read from it.
	if dr, ok := detectDateRange(query, today); ok {
		res.DateRange = &dr
	}

	var branch string
	if p := matchPattern(query); p != nil {
		r.applyPattern(res, p)
		branch = branchPattern
	} else {
		branch = r.routeKeywords(res, query)
	}

	r.record(ctx, branch, time.Since(start), len(res.MatchedTools))
	return res
}

// applyPattern builds the pattern branch's suggestions: the entry's tool
// at the primary sentinel score, plus its alternative, when declared, at
// the lower sentinel with confidence forced to context-dependent.
func (r *Router) applyPattern(res *Result, p *Pattern) {
	res.MatchedTools = append(res.MatchedTools,
		r.suggestion(p.Tool, patternPrimaryScore, p.Confidence, p.resolveParams(res.DateRange)))
	if p.AlternativeTool != "" {
		res.MatchedTools = append(res.MatchedTools,
			r.suggestion(p.AlternativeTool, patternAlternativeScore, ConfidenceContextDependent, map[string]any{}))
	}
}

// routeKeywords is the fallback branch: normalize keywords, check the
// clarification heuristic, then score the entire catalog. The term-to-tools
// candidates only gate clarification; scoring never filters by them.
func (r *Router) routeKeywords(res *Result, query string) string {
	keywords := extractKeywords(query)
	normalized, recognized := r.normalizeKeywords(keywords)

	hasCandidates := false
	for _, k := range normalized {
		if len(termToTools[k]) > 0 {
			hasCandidates = true
			break
		}
	}
	if !hasCandidates && recognized < r.params.MinKeywords {
		res.ClarificationNeeded = clarificationPrompt
		return branchClarification
	}

	kwset := make(map[string]struct{}, len(normalized))
	for _, k := range normalized {
		kwset[k] = struct{}{}
	}

	var out []Suggestion
	for _, e := range r.entries {
		score := r.scoreTool(normalized, kwset, e.Name, r.hints[e.Name])
		if score <= 0 {
			continue
		}
		out = append(out, r.suggestion(e.Name, score, ConfidenceContextDependent, map[string]any{}))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ToolName < out[j].ToolName
	})
	if len(out) > r.params.TopN {
		out = out[:r.params.TopN]
	}

	if res.DateRange != nil {
		for i := range out {
			if hasKeyParam(out[i].KeyParams, "date_from") {
				out[i].SuggestedParams["date_from"] = res.DateRange.From
			}
			if hasKeyParam(out[i].KeyParams, "date_to") {
				out[i].SuggestedParams["date_to"] = res.DateRange.To
			}
		}
	}

	res.MatchedTools = append(res.MatchedTools, out...)
	if len(out) == 0 {
		return branchEmpty
	}
	return branchKeyword
}

// normalizeKeywords canonicalizes each keyword: synonym lookup first, then
// one fuzzy recovery attempt for terms the normalizer left unchanged, raw
// otherwise. The recognized count is the number of unique keywords the
// routing vocabulary knows; the clarification heuristic reads it.
func (r *Router) normalizeKeywords(keywords []string) ([]string, int) {
	var out []string
	seen := make(map[string]struct{}, len(keywords))
	recognized := 0
	for _, k := range keywords {
		norm := normalizeTerm(k)
		known := norm != k
		if !known {
			if hit, ok := fuzzyLookup(k, r.fuzzyCandidates, r.params.FuzzyThreshold); ok {
				norm = normalizeTerm(hit)
				known = true
			}
		}
		if !known {
			_, known = r.vocab[norm]
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
		if known {
			recognized++
		}
	}
	return out, recognized
}

// suggestion fills a Suggestion from the catalog entry. The tool name is
// known valid; construction validated every reference.
func (r *Router) suggestion(tool string, score float64, conf Confidence, params map[string]any) Suggestion {
	e, _ := catalog.Lookup(tool)
	return Suggestion{
		ToolName:        e.Name,
		Purpose:         e.Purpose,
		KeyParams:       e.KeyParams,
		SuggestedParams: params,
		Score:           score,
		Confidence:      conf,
	}
}

func (r *Router) record(ctx context.Context, branch string, dur time.Duration, suggestions int) {
	if r.metrics != nil {
		r.metrics.RoutingQueriesTotal.WithLabelValues(branch).Inc()
		r.metrics.RoutingDuration.WithLabelValues(branch).Observe(dur.Seconds())
		r.metrics.RoutingSuggestions.Observe(float64(suggestions))
	}
	if r.tracer != nil {
		span := trace.SpanFromContext(ctx)
		span.SetAttributes(
			attribute.String("routing.branch", branch),
			attribute.Int("routing.suggestions", suggestions),
		)
	}
}

func hasKeyParam(keyParams []string, name string) bool {
	for _, p := range keyParams {
		if p == name {
			return true
		}
	}
	return false
}

// buildVocab collects every term the router can attach meaning to:
// reference keywords, tool-name words, action verbs, and canonical terms.
func buildVocab(hints map[string]map[string]struct{}) map[string]struct{} {
	v := make(map[string]struct{})
	for _, refs := range hints {
		for w := range refs {
			v[w] = struct{}{}
		}
	}
	for _, e := range catalog.Entries() {
		for _, w := range strings.Split(e.Name, "_") {
			v[w] = struct{}{}
		}
	}
	for verb := range actionVerbSuffixes {
		v[verb] = struct{}{}
	}
	for term := range termToTools {
		v[term] = struct{}{}
	}
	return v
}

// validateTables checks the hand-authored tables against the catalog.
// Iteration over map-backed tables is sorted so a given defect always
// produces the same error.
func validateTables() error {
	for i := range patterns {
		if err := validatePattern(i, &patterns[i]); err != nil {
			return err
		}
	}
	if err := validatePhraseUniqueness(); err != nil {
		return err
	}

	terms := make([]string, 0, len(termToTools))
	for t := range termToTools {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	for _, term := range terms {
		tools := termToTools[term]
		if len(tools) == 0 {
			return fmt.Errorf("term %q maps to no tools", term)
		}
		for _, tool := range tools {
			if _, ok := catalog.Lookup(tool); !ok {
				return fmt.Errorf("term %q references unknown tool %q", term, tool)
			}
		}
	}

	keys := make([]string, 0, len(synonymMap))
	for k := range synonymMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := synonymMap[k]
		if k != strings.ToLower(k) || v != strings.ToLower(v) {
			return fmt.Errorf("synonym %q -> %q must be lowercase", k, v)
		}
		if k == v {
			return fmt.Errorf("synonym %q maps to itself", k)
		}
		if _, stop := stopwords[k]; stop {
			return fmt.Errorf("synonym key %q is a stopword and could never match", k)
		}
		if _, chained := synonymMap[v]; chained {
			return fmt.Errorf("synonym %q maps to %q, which is itself a synonym key", k, v)
		}
	}
	return nil
}

func validatePattern(i int, p *Pattern) error {
	if len(p.Phrases) == 0 {
		return fmt.Errorf("pattern %d (%s): no phrases", i, p.Tool)
	}
	for _, ph := range p.Phrases {
		if ph == "" || ph != strings.TrimSpace(strings.ToLower(ph)) {
			return fmt.Errorf("pattern %d (%s): phrase %q must be lowercase and trimmed", i, p.Tool, ph)
		}
	}
	entry, ok := catalog.Lookup(p.Tool)
	if !ok {
		return fmt.Errorf("pattern %d references unknown tool %q", i, p.Tool)
	}
	if p.AlternativeTool != "" {
		if _, ok := catalog.Lookup(p.AlternativeTool); !ok {
			return fmt.Errorf("pattern %d (%s): unknown alternative tool %q", i, p.Tool, p.AlternativeTool)
		}
	}
	if (p.Params == nil) == (p.ParamTemplate == "") {
		return fmt.Errorf("pattern %d (%s): exactly one of params and param template must be set", i, p.Tool)
	}
	if p.ParamTemplate != "" && p.ParamTemplate != templateAutoDate {
		return fmt.Errorf("pattern %d (%s): unknown param template %q", i, p.Tool, p.ParamTemplate)
	}
	if p.Confidence != ConfidenceDefinitive && p.Confidence != ConfidenceContextDependent {
		return fmt.Errorf("pattern %d (%s): invalid confidence %q", i, p.Tool, p.Confidence)
	}

	paramKeys := make([]string, 0, len(p.Params))
	for k := range p.Params {
		paramKeys = append(paramKeys, k)
	}
	sort.Strings(paramKeys)
	for _, k := range paramKeys {
		if !hasKeyParam(entry.KeyParams, k) {
			return fmt.Errorf("pattern %d (%s): param %q is not accepted by the tool", i, p.Tool, k)
		}
	}
	return nil
}

func validatePhraseUniqueness() error {
	seen := make(map[string]int)
	for i := range patterns {
		for _, ph := range patterns[i].Phrases {
			if prev, dup := seen[ph]; dup {
				return fmt.Errorf("pattern %d (%s): phrase %q already claimed by pattern %d", i, patterns[i].Tool, ph, prev)
			}
			seen[ph] = i
		}
	}
	return nil
}

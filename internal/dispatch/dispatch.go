// Package dispatch routes accepted tool calls to their domain handler and
// onward to the accounting backend. Handlers are resolved once at startup
// from a static prefix registry; nothing string-matches per call.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jkaninda/hesabu/internal/catalog"
)

// ErrNoBackend is returned for every call until an accounting backend is
// configured.
var ErrNoBackend = errors.New("accounting backend not configured")

// Call is one prepared tool invocation.
type Call struct {
	Tool   string
	Params map[string]any
}

// Invoker executes a cleaned tool call against the accounting backend.
// It is the boundary this repository does not cross: implementations own
// transport, auth, and response formatting.
type Invoker interface {
	Invoke(ctx context.Context, tool string, params map[string]any) (string, error)
}

// UnconfiguredInvoker rejects every call with ErrNoBackend. It keeps the
// server honest when run without a backend instead of fabricating data.
type UnconfiguredInvoker struct{}

func (UnconfiguredInvoker) Invoke(_ context.Context, tool string, _ map[string]any) (string, error) {
	return "", fmt.Errorf("calling %s: %w", tool, ErrNoBackend)
}

// Handler executes calls for one tool-domain prefix.
type Handler interface {
	Domain() string
	Prefix() string
	Handle(ctx context.Context, call Call) (string, error)
}

// domainHandler is the stock Handler: it validates and coerces parameters
// against the catalog entry, then delegates to the Invoker. One instance
// serves each domain; the type is shared because the domains differ only
// in their prefix until a real backend specializes them.
type domainHandler struct {
	domain string
	prefix string
	inv    Invoker
}

func (h *domainHandler) Domain() string { return h.domain }
func (h *domainHandler) Prefix() string { return h.prefix }

func (h *domainHandler) Handle(ctx context.Context, call Call) (string, error) {
	entry, ok := catalog.Lookup(call.Tool)
	if !ok {
		return "", fmt.Errorf("unknown tool %q", call.Tool)
	}
	params, err := cleanParams(entry, call.Params)
	if err != nil {
		return "", fmt.Errorf("%s: %w", call.Tool, err)
	}
	return h.inv.Invoke(ctx, call.Tool, params)
}

// cleanParams keeps only parameters the catalog declares for the tool,
// coercing each to its expected shape. Unknown keys are dropped.
func cleanParams(entry catalog.Entry, raw map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(raw))
	for _, key := range entry.KeyParams {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		coerced, err := coerceParam(key, v)
		if err != nil {
			return nil, err
		}
		out[key] = coerced
	}
	return out, nil
}

func coerceParam(key string, v any) (any, error) {
	switch {
	case strings.HasSuffix(key, "_id"):
		return coerceID(key, v)
	case strings.HasPrefix(key, "date_"):
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("param %s: expected an ISO date string", key)
		}
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return nil, fmt.Errorf("param %s: %q is not a YYYY-MM-DD date", key, s)
		}
		return s, nil
	case key == "low_stock":
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("param %s: expected a boolean", key)
		}
		return b, nil
	default:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("param %s: expected a string", key)
		}
		return s, nil
	}
}

func coerceID(key string, v any) (int64, error) {
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int64:
		return n, nil
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("param %s: %v is not a whole number", key, n)
		}
		return int64(n), nil
	case string:
		id, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("param %s: %q is not a numeric id", key, n)
		}
		return id, nil
	default:
		return 0, fmt.Errorf("param %s: expected a numeric id", key)
	}
}

// domains lists every tool-domain prefix the catalog uses.
var domains = []string{
	"invoice", "order", "contact", "product", "delivery",
	"financial", "sales", "payment", "tax",
}

// DefaultHandlers builds one handler per tool-domain, all delegating to
// the given invoker.
func DefaultHandlers(inv Invoker) []Handler {
	out := make([]Handler, 0, len(domains))
	for _, d := range domains {
		out = append(out, &domainHandler{domain: d, prefix: d + "_", inv: inv})
	}
	return out
}

// Registry resolves tools to handlers. Prefix resolution happens once in
// Bind; Dispatch is a map hit.
type Registry struct {
	handlers []Handler
	byTool   map[string]Handler
}

// NewRegistry registers the handlers. A duplicate prefix is a programmer
// error and panics, matching how startup wiring mistakes surface elsewhere.
func NewRegistry(handlers ...Handler) *Registry {
	seen := make(map[string]bool, len(handlers))
	for _, h := range handlers {
		if seen[h.Prefix()] {
			panic("duplicate handler prefix: " + h.Prefix())
		}
		seen[h.Prefix()] = true
	}
	return &Registry{handlers: handlers}
}

// Bind resolves every catalog entry to a handler by longest matching
// prefix. A tool no handler covers is a startup error, not a call-time
// surprise.
func (r *Registry) Bind(entries []catalog.Entry) error {
	sorted := make([]Handler, len(r.handlers))
	copy(sorted, r.handlers)
	sort.Slice(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix()) > len(sorted[j].Prefix())
	})

	r.byTool = make(map[string]Handler, len(entries))
	for _, e := range entries {
		var match Handler
		for _, h := range sorted {
			if strings.HasPrefix(e.Name, h.Prefix()) {
				match = h
				break
			}
		}
		if match == nil {
			return fmt.Errorf("no handler covers tool %q", e.Name)
		}
		r.byTool[e.Name] = match
	}
	return nil
}

// Resolve returns the handler bound to a tool.
func (r *Registry) Resolve(tool string) (Handler, bool) {
	h, ok := r.byTool[tool]
	return h, ok
}

// Dispatch routes one call to its bound handler.
func (r *Registry) Dispatch(ctx context.Context, call Call) (string, error) {
	h, ok := r.byTool[call.Tool]
	if !ok {
		return "", fmt.Errorf("no handler bound for tool %q", call.Tool)
	}
	return h.Handle(ctx, call)
}

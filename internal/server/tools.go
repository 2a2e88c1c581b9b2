package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jkaninda/hesabu/internal/catalog"
	"github.com/jkaninda/hesabu/internal/dispatch"
	"github.com/jkaninda/hesabu/internal/router"
)

// dayLayout is the wire format for reference days and date parameters.
const dayLayout = "2006-01-02"

// registerRoutingTools adds the tools owned by the routing engine itself.
// These are always live and never touch the accounting backend.
func (s *Server) registerRoutingTools() {
	s.mcp.AddTool(mcp.NewTool("suggest_tools",
		mcp.WithDescription("Map a free-text accounting question, English or Indonesian, to ranked tool suggestions with pre-filled parameters. Returns suggestions, a clarification request, or an empty match list."),
		mcp.WithString("query", mcp.Required(), mcp.Description("The question to route, e.g. \"unpaid invoices\" or \"berapa saldo bank saya\".")),
		mcp.WithString("today", mcp.Description("Reference day as YYYY-MM-DD. Defaults to the current day.")),
	), s.handleSuggestTools)

	s.mcp.AddTool(mcp.NewTool("resolve_date_range",
		mcp.WithDescription("Resolve a natural-language date phrase such as \"last month\", \"kuartal 2\", or \"30 hari\" to a concrete date range."),
		mcp.WithString("phrase", mcp.Required(), mcp.Description("The date phrase to resolve.")),
		mcp.WithString("today", mcp.Description("Reference day as YYYY-MM-DD. Defaults to the current day.")),
	), s.handleResolveDateRange)

	s.mcp.AddTool(mcp.NewTool("describe_tool",
		mcp.WithDescription("Describe one catalog tool: its purpose and accepted parameters."),
		mcp.WithString("name", mcp.Required(), mcp.Description("The tool name, e.g. \"invoice_list_sales\".")),
	), s.handleDescribeTool)

	s.mcp.AddTool(mcp.NewTool("list_tools",
		mcp.WithDescription("List every accounting tool in the catalog."),
	), s.handleListTools)
}

func (s *Server) handleSuggestTools(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var res *router.Result
	if t := req.GetString("today", ""); t != "" {
		day, err := time.Parse(dayLayout, t)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("today: %q is not a YYYY-MM-DD date", t)), nil
		}
		res = s.router.RouteAt(ctx, query, day)
	} else {
		res = s.router.Route(ctx, query)
	}

	s.logger.Debug("query routed",
		slog.String("query", query),
		slog.Int("suggestions", len(res.MatchedTools)),
		slog.Bool("clarification", res.ClarificationNeeded != ""),
	)
	return jsonResult(res)
}

// dateRangeResult is the resolve_date_range payload. A miss is a normal
// result, never a tool error.
type dateRangeResult struct {
	Matched   bool   `json:"matched"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

func (s *Server) handleResolveDateRange(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	phrase, err := req.RequireString("phrase")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	today := time.Now()
	if t := req.GetString("today", ""); t != "" {
		day, err := time.Parse(dayLayout, t)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("today: %q is not a YYYY-MM-DD date", t)), nil
		}
		today = day
	}

	out := dateRangeResult{}
	if dr, ok := router.ResolveDatePhrase(phrase, today); ok {
		out = dateRangeResult{Matched: true, StartDate: dr.From, EndDate: dr.To}
	}
	return jsonResult(out)
}

func (s *Server) handleDescribeTool(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entry, ok := catalog.Lookup(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown tool %q", name)), nil
	}
	return jsonResult(entry)
}

func (s *Server) handleListTools(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(catalog.Entries())
}

// registerBusinessTools adds one MCP tool per catalog entry, with input
// schemas derived from the entry's key parameters. Calls flow through the
// dispatch registry to the accounting backend boundary.
func (s *Server) registerBusinessTools() error {
	for _, e := range catalog.Entries() {
		if _, ok := s.registry.Resolve(e.Name); !ok {
			return fmt.Errorf("no handler bound for tool %q", e.Name)
		}

		opts := []mcp.ToolOption{mcp.WithDescription(e.Purpose)}
		for _, p := range e.KeyParams {
			opts = append(opts, paramOption(p))
		}
		s.mcp.AddTool(mcp.NewTool(e.Name, opts...), s.businessHandler(e.Name))
	}
	return nil
}

// paramOption maps a key parameter to its schema shape: date params are
// ISO strings, id params numbers, low_stock a boolean, everything else a
// plain string. Nothing is required; the backend applies its own defaults.
func paramOption(name string) mcp.ToolOption {
	switch {
	case strings.HasPrefix(name, "date_"):
		return mcp.WithString(name, mcp.Description("ISO date, YYYY-MM-DD."))
	case strings.HasSuffix(name, "_id"):
		return mcp.WithNumber(name, mcp.Description("Numeric id."))
	case name == "low_stock":
		return mcp.WithBoolean(name, mcp.Description("Only items at or below their minimum stock level."))
	default:
		return mcp.WithString(name, mcp.Description("Free-text value."))
	}
}

func (s *Server) businessHandler(tool string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		correlationID := uuid.NewString()
		start := time.Now()

		out, err := s.registry.Dispatch(ctx, dispatch.Call{Tool: tool, Params: req.GetArguments()})
		elapsed := time.Since(start)

		if err != nil {
			s.obs.MetricsOrNil().RecordToolCall(tool, "error", elapsed.Seconds())
			s.logger.Debug("tool call failed",
				slog.String("tool", tool),
				slog.String("correlation_id", correlationID),
				slog.String("error", err.Error()),
			)
			return mcp.NewToolResultError(err.Error()), nil
		}

		s.obs.MetricsOrNil().RecordToolCall(tool, "ok", elapsed.Seconds())
		s.logger.Debug("tool call dispatched",
			slog.String("tool", tool),
			slog.String("correlation_id", correlationID),
			slog.Duration("duration", elapsed),
		)
		return mcp.NewToolResultText(out), nil
	}
}

// jsonResult marshals v into a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

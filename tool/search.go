package tool

import (
	"context"

	"github.com/hupe1980/deepagent/core"
	"github.com/hupe1980/deepagent/retry"
)

// SearchResult is one hit returned by a search capability.
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// Searcher is the opaque web-search capability this core wraps. Concrete
// implementations (HTTP APIs, MCP servers) live outside this module.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

// SearcherFunc adapts a plain function to the Searcher interface.
type SearcherFunc func(ctx context.Context, query string, maxResults int) ([]SearchResult, error)

// Search implements Searcher.
func (f SearcherFunc) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	return f(ctx, query, maxResults)
}

// SearchToolOptions configures NewSearchTool.
type SearchToolOptions struct {
	// Policy bounds retries of the underlying searcher.
	Policy retry.Policy
	// MaxResults is the default result cap when the model omits one.
	MaxResults int
}

// NewSearchTool wraps a Searcher in a retrying tool. Transient failures are
// retried per the policy; on exhaustion the tool returns a degraded value
// ({error, results: [], message}) with a nil error so the model can continue
// with partial information instead of aborting the task. The classified
// error category only shapes the message text.
func NewSearchTool(searcher Searcher, optFns ...func(o *SearchToolOptions)) *FunctionTool {
	opts := SearchToolOptions{
		Policy:     retry.DefaultPolicy(),
		MaxResults: 5,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return NewFunctionTool(
		"web_search",
		"Search the web and return a list of results with title, URL and snippet.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query":       map[string]any{"type": "string", "description": "Search query"},
				"max_results": map[string]any{"type": "integer", "description": "Maximum number of results to return"},
			},
			"required": []string{"query"},
		},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			query, _ := args["query"].(string)
			maxResults := opts.MaxResults
			if n, ok := args["max_results"].(float64); ok && int(n) > 0 {
				maxResults = int(n)
			}

			results, err := retry.Do(tc.Context(), opts.Policy, func(ctx context.Context) ([]SearchResult, error) {
				return searcher.Search(ctx, query, maxResults)
			})
			if err != nil {
				classified := retry.Classify(err)
				tc.LogWarn("tool.search.degraded", "query", query, "error", classified.Error())

				return map[string]any{
					"error":   classified.Error(),
					"results": []SearchResult{},
					"message": "search is currently unavailable; continue with the information you already have",
				}, nil
			}

			return map[string]any{
				"query":   query,
				"results": results,
				"count":   len(results),
			}, nil
		},
	)
}

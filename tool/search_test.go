package tool

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/deepagent/retry"
)

func fastSearchPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Multiplier:   2.0,
		Timeout:      time.Second,
	}
}

func TestSearchTool_Success(t *testing.T) {
	searcher := SearcherFunc(func(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
		assert.Equal(t, "go concurrency", query)
		return []SearchResult{{Title: "Go blog", URL: "https://go.dev/blog"}}, nil
	})

	searchTool := NewSearchTool(searcher, func(o *SearchToolOptions) {
		o.Policy = fastSearchPolicy()
	})

	result, err := searchTool.Call(newTestToolContext(nil), map[string]any{"query": "go concurrency"})
	require.NoError(t, err)

	out := result.(map[string]any)
	assert.Equal(t, 1, out["count"])
	assert.Equal(t, "go concurrency", out["query"])
}

func TestSearchTool_RetriesTransientFailure(t *testing.T) {
	attempts := 0
	searcher := SearcherFunc(func(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("connection refused")
		}
		return []SearchResult{{Title: "ok", URL: "https://example.com"}}, nil
	})

	searchTool := NewSearchTool(searcher, func(o *SearchToolOptions) {
		o.Policy = fastSearchPolicy()
	})

	result, err := searchTool.Call(newTestToolContext(nil), map[string]any{"query": "q"})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)

	out := result.(map[string]any)
	assert.Equal(t, 1, out["count"])
}

func TestSearchTool_DegradesOnExhaustion(t *testing.T) {
	searcher := SearcherFunc(func(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
		return nil, errors.New("rate limit exceeded")
	})

	searchTool := NewSearchTool(searcher, func(o *SearchToolOptions) {
		o.Policy = fastSearchPolicy()
	})

	// Exhaustion degrades to a value; the model keeps going.
	result, err := searchTool.Call(newTestToolContext(nil), map[string]any{"query": "q"})
	require.NoError(t, err)

	out := result.(map[string]any)
	assert.NotEmpty(t, out["error"])
	assert.Empty(t, out["results"])
	assert.NotEmpty(t, out["message"])
}

func TestSearchTool_MaxResultsArgument(t *testing.T) {
	var gotMax int
	searcher := SearcherFunc(func(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
		gotMax = maxResults
		return nil, nil
	})

	searchTool := NewSearchTool(searcher, func(o *SearchToolOptions) {
		o.Policy = fastSearchPolicy()
	})

	// JSON numbers decode as float64.
	_, err := searchTool.Call(newTestToolContext(nil), map[string]any{"query": "q", "max_results": float64(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, gotMax)
}

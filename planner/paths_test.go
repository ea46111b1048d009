package planner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		name      string
		topic     string
		slug      string
		truncated bool
	}{
		{name: "simple", topic: "NVIDIA Stock", slug: "nvidia_stock"},
		{name: "blank", topic: "   ", slug: "topic"},
		{name: "empty", topic: "", slug: "topic"},
		{name: "punctuation collapsed", topic: "Q4 (2026) -- outlook!", slug: "q4_2026_outlook"},
		{name: "unicode dropped", topic: "café → espresso", slug: "caf_espresso"},
		{name: "already clean", topic: "nvidia_stock", slug: "nvidia_stock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug, truncated := DeriveSlug(tt.topic)
			assert.Equal(t, tt.slug, slug)
			assert.Equal(t, tt.truncated, truncated)
		})
	}
}

func TestDeriveSlug_Deterministic(t *testing.T) {
	first, _ := DeriveSlug("The Quick Brown Fox")
	second, _ := DeriveSlug("The Quick Brown Fox")
	assert.Equal(t, first, second)

	// Idempotent: deriving from a derived slug is a fixed point.
	again, _ := DeriveSlug(first)
	assert.Equal(t, first, again)
}

func TestDeriveSlug_Truncation(t *testing.T) {
	long := strings.Repeat("nvidia stock analysis ", 10)
	slug, truncated := DeriveSlug(long)

	assert.True(t, truncated)
	assert.Len(t, slug, DefaultMaxSlugLength)
}

func TestDerivePaths(t *testing.T) {
	set := DerivePaths("NVIDIA Stock")

	assert.Equal(t, "nvidia_stock", set.Slug)
	assert.Equal(t, "nvidia_stock", set.OriginalSlug)
	assert.Equal(t, "plans/nvidia_stock", set.Dir)
	assert.Equal(t, "plans/nvidia_stock/analysis.json", set.Analysis)
	assert.Equal(t, "plans/nvidia_stock/scope.json", set.Scope)
	assert.Equal(t, "plans/nvidia_stock/plan.json", set.Plan)
	assert.Equal(t, "plans/nvidia_stock/optimized.json", set.Optimized)
	assert.Equal(t, "plans/nvidia_stock/metadata.json", set.Metadata)
	assert.False(t, set.Truncated)
	assert.Equal(t, DefaultMaxSlugLength, set.MaxLength)

	// Same topic always yields the same set.
	assert.Equal(t, set, DerivePaths("NVIDIA Stock"))
}

func TestDerivePaths_TruncatedKeepsOriginalSlug(t *testing.T) {
	long := strings.Repeat("very long research topic ", 8)
	set := DerivePaths(long)

	assert.True(t, set.Truncated)
	assert.Len(t, set.Slug, DefaultMaxSlugLength)
	assert.Greater(t, len(set.OriginalSlug), DefaultMaxSlugLength)
}

func TestPathSet_ArtifactPaths(t *testing.T) {
	set := DerivePaths("topic a")
	assert.Equal(t, []string{set.Analysis, set.Scope, set.Plan}, set.ArtifactPaths())
}

package planner

import (
	"path"
	"strings"
	"unicode"
)

const (
	// DefaultMaxSlugLength bounds derived slugs so document paths stay
	// reasonable for long free-text topics.
	DefaultMaxSlugLength = 64

	// PlansDir is the key-space prefix under which all planner artifacts live.
	PlansDir = "plans"

	// MetadataSuffix identifies per-topic metadata documents when scanning
	// the flat key space.
	MetadataSuffix = "/metadata.json"

	// RegistryPath is the document holding the full planning registry.
	RegistryPath = "plans/registry.json"

	// PointerPath is the document caching the most recently written registry
	// entry for O(1) active-plan resolution.
	PointerPath = "plans/active_plan.json"
)

// PathSet is the canonical set of artifact paths derived from a topic.
// Derivation is a pure function: the same topic always yields the same set.
type PathSet struct {
	Slug         string `json:"slug"`
	OriginalSlug string `json:"original_slug,omitempty"`
	Dir          string `json:"dir,omitempty"`
	Analysis     string `json:"analysis"`
	Scope        string `json:"scope"`
	Plan         string `json:"plan"`
	Optimized    string `json:"optimized,omitempty"`
	Metadata     string `json:"metadata"`
	Truncated    bool   `json:"truncated"`
	MaxLength    int    `json:"max_length"`
}

// DeriveSlug normalizes a free-text topic into a key-safe identifier:
// case-folded, runs of non-alphanumerics collapsed to single underscores,
// trimmed, and truncated to DefaultMaxSlugLength with an explicit flag.
// A topic that normalizes to nothing yields "topic".
func DeriveSlug(topic string) (slug string, truncated bool) {
	return deriveSlug(topic, DefaultMaxSlugLength)
}

func deriveSlug(topic string, maxLength int) (string, bool) {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(topic) {
		if unicode.IsLetter(r) && r < unicode.MaxASCII || unicode.IsDigit(r) && r < unicode.MaxASCII {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	slug := strings.Trim(b.String(), "_")
	if slug == "" {
		slug = "topic"
	}
	if maxLength > 0 && len(slug) > maxLength {
		return slug[:maxLength], true
	}
	return slug, false
}

// DerivePaths maps a topic to its canonical artifact paths under
// plans/<slug>/. OriginalSlug preserves the untruncated form when the slug
// had to be cut to MaxLength.
func DerivePaths(topic string) PathSet {
	full, _ := deriveSlug(topic, 0)
	slug, truncated := deriveSlug(topic, DefaultMaxSlugLength)

	dir := path.Join(PlansDir, slug)
	return PathSet{
		Slug:         slug,
		OriginalSlug: full,
		Dir:          dir,
		Analysis:     path.Join(dir, "analysis.json"),
		Scope:        path.Join(dir, "scope.json"),
		Plan:         path.Join(dir, "plan.json"),
		Optimized:    path.Join(dir, "optimized.json"),
		Metadata:     path.Join(dir, "metadata.json"),
		Truncated:    truncated,
		MaxLength:    DefaultMaxSlugLength,
	}
}

// ArtifactPaths returns the three paths other sub-agents depend on, in a
// stable order. The optimized document is an optional refinement and is
// deliberately not part of the dependency set.
func (p PathSet) ArtifactPaths() []string {
	return []string{p.Analysis, p.Scope, p.Plan}
}

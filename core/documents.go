package core

import (
	"sort"
	"strings"
)

// Documents is the virtual document store shared between the orchestrating
// agent and its sub-agents: a flat POSIX-style path → content map emulating
// a filesystem. There are no directory entities; "directories" are prefix
// conventions over keys. Writes fully overwrite the previous content and
// nothing in the core ever deletes a path.
//
// Iteration over paths must be deterministic, so all enumeration goes
// through Keys (sorted order) rather than raw map ranging.
type Documents map[string]string

// Clone returns an independent copy safe for divergent mutation.
func (d Documents) Clone() Documents {
	cp := make(Documents, len(d))
	for k, v := range d {
		cp[k] = v
	}
	return cp
}

// Keys returns all document paths in sorted order.
func (d Documents) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ListPrefix returns the sorted paths that start with prefix. This is the
// "directory listing" operation over the flat key space.
func (d Documents) ListPrefix(prefix string) []string {
	var keys []string
	for k := range d {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// ListSuffix returns the sorted paths that end with suffix. Used to locate
// per-topic metadata documents without a real hierarchy.
func (d Documents) ListSuffix(suffix string) []string {
	var keys []string
	for k := range d {
		if strings.HasSuffix(k, suffix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// MergeDocuments overlays child onto parent without mutating either input:
// a path present in both takes the child's value, a path absent from child
// is preserved from parent. This is the parent-preserving, child-overlay
// merge applied after every sub-agent run.
func MergeDocuments(parent, child Documents) Documents {
	merged := make(Documents, len(parent)+len(child))
	for k, v := range parent {
		merged[k] = v
	}
	for k, v := range child {
		merged[k] = v
	}
	return merged
}

// DocumentStore persists the per-session document set between conversation
// turns. Implementations must be safe for concurrent access and must return
// defensive copies so callers cannot mutate internal state.
type DocumentStore interface {
	// Save stores (or overwrites) the full document set for a session.
	Save(sessionID string, docs Documents) error
	// Load returns the document set for a session. A session that was never
	// saved yields an empty, non-nil Documents.
	Load(sessionID string) (Documents, error)
}

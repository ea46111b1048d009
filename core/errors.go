package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error kinds carried by StructuredError. The orchestrating model branches
// on Kind, so values are stable wire constants, not display strings.
const (
	// KindMissingArtifact signals that an artifact-dependent sub-agent was
	// dispatched before the planner produced the documents it needs.
	KindMissingArtifact = "MissingArtifact"
)

// Reason constants refine a StructuredError kind.
const (
	// ReasonPlannerUnavailable means no planner registry entry could be
	// resolved from the current documents at all.
	ReasonPlannerUnavailable = "planner_artifacts_unavailable"
)

// StructuredError is a machine-parseable failure payload intended for the
// orchestrating model itself rather than a human. It is returned as a JSON
// value so the model can inspect the discriminant and act on the hint
// (typically: re-invoke the planning sub-agent) instead of improvising over
// missing context.
type StructuredError struct {
	Kind    string   `json:"kind"`
	Slug    string   `json:"slug,omitempty"`
	Reason  string   `json:"reason,omitempty"`
	Missing []string `json:"missing,omitempty"`
	Hint    string   `json:"hint,omitempty"`
}

// Error implements the error interface with a compact human-readable form.
func (e *StructuredError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind)
	if e.Slug != "" {
		fmt.Fprintf(&b, " (slug %q)", e.Slug)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing %s", strings.Join(e.Missing, ", "))
	}
	return b.String()
}

// JSON returns the canonical wire encoding handed back to the orchestrating
// model. Encoding a plain struct of strings cannot fail, so the fallback
// exists only to keep the signature honest.
func (e *StructuredError) JSON() string {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf(`{"kind":%q}`, e.Kind)
	}
	return string(data)
}

// NewMissingArtifactError reports that required planner artifacts are absent
// from the document store, listing the exact missing paths.
func NewMissingArtifactError(slug string, missing []string) *StructuredError {
	return &StructuredError{
		Kind:    KindMissingArtifact,
		Slug:    slug,
		Missing: missing,
		Hint:    "re-run planning to regenerate the missing files",
	}
}

// NewPlannerUnavailableError reports that no planner registry entry could be
// resolved at all, so planning has to happen before the requested dispatch.
func NewPlannerUnavailableError() *StructuredError {
	return &StructuredError{
		Kind:   KindMissingArtifact,
		Reason: ReasonPlannerUnavailable,
		Hint:   "invoke the planning sub-agent first",
	}
}

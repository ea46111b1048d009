package planner

import (
	"encoding/json"
	"fmt"
)

// Metadata is the per-topic metadata document the planning sub-agent writes
// alongside its artifacts. Only the slug and the four canonical artifact
// paths are required; everything else is advisory.
type Metadata struct {
	Topic      string            `json:"topic,omitempty"`
	Context    string            `json:"context,omitempty"`
	Warnings   []string          `json:"warnings,omitempty"`
	Paths      PathSet           `json:"paths"`
	Timestamps map[string]string `json:"timestamps,omitempty"`
}

// DecodeMetadata parses and validates a metadata document. It is the single
// decode path for this document type; callers must not parse metadata JSON
// themselves.
func DecodeMetadata(content string) (*Metadata, error) {
	var md Metadata
	if err := json.Unmarshal([]byte(content), &md); err != nil {
		return nil, fmt.Errorf("decode metadata document: %w", err)
	}
	if err := validatePaths(md.Paths); err != nil {
		return nil, fmt.Errorf("invalid metadata document: %w", err)
	}
	return &md, nil
}

// DecodeRegistry parses and validates a registry document.
func DecodeRegistry(content string) (*Registry, error) {
	var reg Registry
	if err := json.Unmarshal([]byte(content), &reg); err != nil {
		return nil, fmt.Errorf("decode registry document: %w", err)
	}
	if reg.Entries == nil {
		reg.Entries = map[string]Entry{}
	}
	return &reg, nil
}

// DecodeEntry parses and validates a pointer document (a single registry entry).
func DecodeEntry(content string) (*Entry, error) {
	var entry Entry
	if err := json.Unmarshal([]byte(content), &entry); err != nil {
		return nil, fmt.Errorf("decode pointer document: %w", err)
	}
	if entry.Slug == "" {
		return nil, fmt.Errorf("invalid pointer document: empty slug")
	}
	if err := validatePaths(entry.Paths); err != nil {
		return nil, fmt.Errorf("invalid pointer document: %w", err)
	}
	return &entry, nil
}

// validatePaths enforces the required fields shared by metadata and pointer
// documents: slug plus the analysis, scope, plan and metadata paths.
func validatePaths(p PathSet) error {
	switch {
	case p.Slug == "":
		return fmt.Errorf("missing paths.slug")
	case p.Analysis == "":
		return fmt.Errorf("missing paths.analysis")
	case p.Scope == "":
		return fmt.Errorf("missing paths.scope")
	case p.Plan == "":
		return fmt.Errorf("missing paths.plan")
	case p.Metadata == "":
		return fmt.Errorf("missing paths.metadata")
	}
	return nil
}

package planner

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/hupe1980/deepagent/core"
)

// Entry is one planning run recorded in the registry. Re-planning a topic
// fully replaces the previous entry for its slug; fields are never merged
// across runs.
type Entry struct {
	Slug         string            `json:"slug"`
	Topic        string            `json:"topic,omitempty"`
	Context      string            `json:"context,omitempty"`
	MetadataPath string            `json:"metadata_path"`
	Paths        PathSet           `json:"paths"`
	Timestamps   map[string]string `json:"timestamps,omitempty"`
	Warnings     []string          `json:"warnings,omitempty"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Registry is the durable index of planning runs, stored as a document at
// RegistryPath. Entries grow append-only across distinct slugs and are
// overwritten in place for a repeated slug.
type Registry struct {
	ActiveSlug string           `json:"active_slug"`
	UpdatedAt  time.Time        `json:"updated_at"`
	Entries    map[string]Entry `json:"entries"`
}

// entryFromMetadata builds a registry entry from a validated metadata
// document found at metadataPath.
func entryFromMetadata(md *Metadata, metadataPath string, now time.Time) Entry {
	return Entry{
		Slug:         md.Paths.Slug,
		Topic:        md.Topic,
		Context:      md.Context,
		MetadataPath: metadataPath,
		Paths:        md.Paths,
		Timestamps:   md.Timestamps,
		Warnings:     md.Warnings,
		UpdatedAt:    now,
	}
}

// Update scans next for metadata documents written by a planning run, upserts
// each valid one into the registry by slug, and writes the refreshed registry
// and pointer documents back into next (mutating it in place). prev supplies
// the previously persisted registry so entries are never lost across turns.
//
// Invalid or partial metadata documents are skipped without failing the
// update. The returned entry is the last valid one processed (the new active
// plan), or nil when next contained no usable metadata at all. Update is
// idempotent on repeated identical input and never shrinks the entry set.
func Update(prev, next core.Documents) *Entry {
	reg := loadRegistry(prev, next)
	now := time.Now().UTC()

	var last *Entry
	for _, metadataPath := range next.ListSuffix(MetadataSuffix) {
		md, err := DecodeMetadata(next[metadataPath])
		if err != nil {
			continue
		}
		entry := entryFromMetadata(md, metadataPath, now)
		reg.Entries[entry.Slug] = entry
		reg.ActiveSlug = entry.Slug
		last = &entry
	}

	if last == nil {
		return nil
	}

	reg.UpdatedAt = now
	next[RegistryPath] = encodeDocument(reg)
	next[PointerPath] = encodeDocument(last)
	return last
}

// ResolveActive resolves the current planning entry from a document set,
// in priority order: the pointer document, then the registry document
// (active slug, else its first entry in sorted slug order), then a fallback
// scan over metadata documents taking the first valid parse.
func ResolveActive(docs core.Documents) (*Entry, bool) {
	if content, ok := docs[PointerPath]; ok {
		if entry, err := DecodeEntry(content); err == nil {
			return entry, true
		}
	}

	if content, ok := docs[RegistryPath]; ok {
		if reg, err := DecodeRegistry(content); err == nil {
			if entry, ok := reg.Entries[reg.ActiveSlug]; ok {
				return &entry, true
			}
			slugs := make([]string, 0, len(reg.Entries))
			for slug := range reg.Entries {
				slugs = append(slugs, slug)
			}
			sort.Strings(slugs)
			if len(slugs) > 0 {
				entry := reg.Entries[slugs[0]]
				return &entry, true
			}
		}
	}

	for _, metadataPath := range docs.ListSuffix(MetadataSuffix) {
		md, err := DecodeMetadata(docs[metadataPath])
		if err != nil {
			continue
		}
		entry := entryFromMetadata(md, metadataPath, time.Now().UTC())
		return &entry, true
	}

	return nil, false
}

// loadRegistry returns the persisted registry, preferring the copy already
// in next (a planning run may have rewritten it) over prev, else a fresh one.
func loadRegistry(prev, next core.Documents) *Registry {
	for _, docs := range []core.Documents{next, prev} {
		if content, ok := docs[RegistryPath]; ok {
			if reg, err := DecodeRegistry(content); err == nil {
				return reg
			}
		}
	}
	return &Registry{Entries: map[string]Entry{}}
}

// encodeDocument renders registry and pointer documents. Indented so the
// documents stay readable when a model inspects them.
func encodeDocument(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

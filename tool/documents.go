package tool

import (
	"fmt"

	"github.com/hupe1980/deepagent/core"
)

// Built-in virtual document tools. They are the only way a sub-agent mutates
// its working state: every write goes through the ToolContext into the run's
// working document set, never directly into the parent's store.

// NewWriteDocumentTool returns the tool that creates or fully overwrites a
// document. There is no partial patching at this layer.
func NewWriteDocumentTool() *FunctionTool {
	return NewFunctionTool(
		"write_document",
		"Create or fully overwrite a document at the given path. Content replaces any previous version.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path":    map[string]any{"type": "string", "description": "POSIX-style document path, e.g. plans/topic/plan.json"},
				"content": map[string]any{"type": "string", "description": "Full document content"},
			},
			"required": []string{"path", "content"},
		},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			path, _ := args["path"].(string)
			content, _ := args["content"].(string)
			if path == "" {
				return nil, fmt.Errorf("path must be a non-empty string")
			}
			tc.WriteDocument(path, content)
			return map[string]any{"path": path, "bytes": len(content), "written": true}, nil
		},
	)
}

// NewReadDocumentTool returns the tool that reads a document's content.
func NewReadDocumentTool() *FunctionTool {
	return NewFunctionTool(
		"read_document",
		"Read the content of a document at the given path.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{"type": "string", "description": "POSIX-style document path"},
			},
			"required": []string{"path"},
		},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			path, _ := args["path"].(string)
			content, ok := tc.ReadDocument(path)
			if !ok {
				return nil, fmt.Errorf("document %q not found", path)
			}
			return map[string]any{"path": path, "content": content}, nil
		},
	)
}

// NewListDocumentsTool returns the tool that lists document paths by prefix.
// Directories do not exist; the prefix filter is the listing.
func NewListDocumentsTool() *FunctionTool {
	return NewFunctionTool(
		"list_documents",
		"List document paths, optionally filtered by a path prefix.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prefix": map[string]any{"type": "string", "description": "Optional path prefix filter, e.g. plans/"},
			},
		},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			prefix, _ := args["prefix"].(string)
			paths := tc.ListDocuments(prefix)
			return map[string]any{"paths": paths, "count": len(paths)}, nil
		},
	)
}

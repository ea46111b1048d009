package core

import (
	"context"

	"github.com/hupe1980/deepagent/logging"
)

// ToolContext is handed to every tool call during a sub-agent run. It scopes
// the tool to the run's working document set (never the parent's store
// directly), carries the ambient context for cancellation, and correlates
// the execution with the originating function call id.
type ToolContext struct {
	ctx            context.Context
	agentName      string
	functionCallID string
	documents      Documents

	*loggerAdapter
}

// NewToolContext builds a ToolContext bound to a working document set. The
// documents map is shared with the execution unit on purpose: tool writes
// are how a sub-agent mutates its working state.
func NewToolContext(ctx context.Context, agentName, functionCallID string, docs Documents, logger logging.Logger) *ToolContext {
	if ctx == nil {
		ctx = context.Background()
	}
	if docs == nil {
		docs = Documents{}
	}
	return &ToolContext{
		ctx:            ctx,
		agentName:      agentName,
		functionCallID: functionCallID,
		documents:      docs,
		loggerAdapter:  newLoggerAdapter(logger),
	}
}

// Context returns the ambient context for the run.
func (tc *ToolContext) Context() context.Context { return tc.ctx }

// AgentName returns the name of the sub-agent executing the tool.
func (tc *ToolContext) AgentName() string { return tc.agentName }

// FunctionCallID returns the id correlating this execution with the model's
// function call request.
func (tc *ToolContext) FunctionCallID() string { return tc.functionCallID }

// ReadDocument returns the content of a document and whether it exists.
func (tc *ToolContext) ReadDocument(path string) (string, bool) {
	content, ok := tc.documents[path]
	return content, ok
}

// WriteDocument creates or fully overwrites a document in the working set.
func (tc *ToolContext) WriteDocument(path, content string) {
	tc.documents[path] = content
}

// ListDocuments returns the sorted working-set paths matching prefix
// ("" lists everything).
func (tc *ToolContext) ListDocuments(prefix string) []string {
	if prefix == "" {
		return tc.documents.Keys()
	}
	return tc.documents.ListPrefix(prefix)
}

// Documents exposes the working set for the execution unit to collect after
// the run. Tools should use the Read/Write/List helpers instead.
func (tc *ToolContext) Documents() Documents { return tc.documents }

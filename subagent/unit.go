package subagent

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/hupe1980/deepagent/core"
	"github.com/hupe1980/deepagent/logging"
	"github.com/hupe1980/deepagent/model"
	"github.com/hupe1980/deepagent/tool"
)

// Unit is the model-backed execution unit built from one core.Spec. It runs
// a bounded tool loop: generate, execute any requested tool calls against a
// working copy of the invocation's documents, feed results back, repeat
// until the model stops calling tools or the iteration cap is hit.
type Unit struct {
	spec          core.Spec
	llm           model.Model
	tools         map[string]tool.Tool
	maxIterations int
	toolTimeout   time.Duration
	logger        logging.Logger
}

// Name implements core.ExecutionUnit.
func (u *Unit) Name() string { return u.spec.Name }

// Description implements core.ExecutionUnit.
func (u *Unit) Description() string { return u.spec.Description }

// Execute implements core.ExecutionUnit. The invocation's document snapshot
// is cloned up front; all tool writes land in the clone, which is returned
// in the Outcome for the dispatcher to overlay.
func (u *Unit) Execute(inv *core.Invocation) (*core.Outcome, error) {
	ctx := inv.Context
	if ctx == nil {
		ctx = context.Background()
	}

	working := inv.Documents.Clone()
	messages := []core.Message{core.NewUserMessage(inv.Description)}
	toolDefs := u.toolDefinitions()

	for iteration := 0; iteration < u.maxIterations; iteration++ {
		resp, err := u.llm.Generate(ctx, model.Request{
			Instructions: u.spec.Prompt,
			Messages:     messages,
			Tools:        toolDefs,
		})
		if err != nil {
			return nil, fmt.Errorf("model generation failed for %q: %w", u.spec.Name, err)
		}

		messages = append(messages, resp.Message)

		if len(resp.Message.ToolCalls) == 0 {
			break
		}

		results := make([]core.ToolResult, 0, len(resp.Message.ToolCalls))
		for _, call := range resp.Message.ToolCalls {
			results = append(results, u.executeToolCall(ctx, inv.RunID, working, call))
		}

		messages = append(messages, core.NewToolResultMessage(results...))
	}

	return &core.Outcome{
		Documents:  working,
		Messages:   messages,
		ResultText: core.LastAssistantText(messages),
	}, nil
}

// executeToolCall runs one tool call against the working document set and
// normalizes everything (unknown tool, bad arguments, execution failure)
// into a ToolResult the model can read.
func (u *Unit) executeToolCall(ctx context.Context, runID string, working core.Documents, call core.ToolCall) core.ToolResult {
	t, ok := u.tools[call.Name]
	if !ok {
		u.logger.Warn("subagent.tool.unknown", "subagent", u.spec.Name, "tool", call.Name)
		return core.ToolResult{
			ID:      call.ID,
			Name:    call.Name,
			Content: fmt.Sprintf("tool %q is not available", call.Name),
			IsError: true,
		}
	}

	args := map[string]any{}
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return core.ToolResult{
				ID:      call.ID,
				Name:    call.Name,
				Content: fmt.Sprintf("invalid tool arguments: %v", err),
				IsError: true,
			}
		}
	}

	callCtx := ctx
	if u.toolTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, u.toolTimeout)
		defer cancel()
	}

	toolCtx := core.NewToolContext(callCtx, u.spec.Name, call.ID, working, u.logger)

	result, err := t.Call(toolCtx, args)
	if err != nil {
		return core.ToolResult{
			ID:      call.ID,
			Name:    call.Name,
			Content: err.Error(),
			IsError: true,
		}
	}

	content, err := json.Marshal(result)
	if err != nil {
		content = []byte(fmt.Sprintf("%v", result))
	}

	return core.ToolResult{
		ID:      call.ID,
		Name:    call.Name,
		Content: string(content),
	}
}

// toolDefinitions builds the model-facing tool declarations in stable
// (sorted) order.
func (u *Unit) toolDefinitions() []model.ToolDefinition {
	names := make([]string, 0, len(u.tools))
	for name := range u.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]model.ToolDefinition, 0, len(names))
	for _, name := range names {
		t := u.tools[name]
		defs = append(defs, model.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	return defs
}

package core

import "context"

// Spec declares a sub-agent. Specs are fixed at construction time; the
// factory turns each one into an executable unit at startup and nothing
// mutates them afterwards.
type Spec struct {
	// Name uniquely identifies the sub-agent in dispatch requests.
	Name string `json:"name" yaml:"name"`
	// Description is surfaced to the orchestrating model so it can pick
	// the right sub-agent for a task.
	Description string `json:"description" yaml:"description"`
	// Prompt is the fixed system instruction bound to the execution unit.
	Prompt string `json:"prompt" yaml:"prompt"`
	// Tools is an optional allow-list of tool names. Omitted means the
	// whole catalog is available.
	Tools []string `json:"tools,omitempty" yaml:"tools,omitempty"`
	// Model optionally overrides the default model for this sub-agent.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
	// RequiresPlanning marks the sub-agent as artifact-dependent: dispatch
	// is blocked until the planner's analysis/scope/plan documents exist.
	RequiresPlanning bool `json:"requires_planning,omitempty" yaml:"requires_planning,omitempty"`
}

// Invocation is the input to a single sub-agent run: the delegated task
// description plus a snapshot of the parent's documents. Execution units
// must treat Documents as read-only and mutate their own working copy.
// Context carries the ambient cancellation scope, mirroring how run
// contexts are passed rather than threading a separate parameter through
// every call site.
type Invocation struct {
	Context     context.Context
	RunID       string
	Description string
	Documents   Documents
}

// Outcome is the result of a completed sub-agent run. Documents is the
// sub-agent's full mutated working set; the dispatcher overlays it onto the
// parent's documents. ResultText is the sub-agent's final visible answer.
type Outcome struct {
	Documents  Documents
	Messages   []Message
	ResultText string
}

// ExecutionUnit is one runnable sub-agent built from a Spec. Execute must
// honor context cancellation and return either a completed Outcome or an
// error; it must never mutate the invocation's document snapshot.
type ExecutionUnit interface {
	Name() string
	Description() string
	Execute(inv *Invocation) (*Outcome, error)
}

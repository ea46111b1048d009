package dispatch

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hupe1980/deepagent/core"
	"github.com/hupe1980/deepagent/logging"
	"github.com/hupe1980/deepagent/planner"
)

// EmptyResultText is returned when a sub-agent finishes without producing a
// visible answer. Callers always receive a defined result string.
const EmptyResultText = "Sub-agent completed without producing output."

// Registry resolves dispatch targets by name. Satisfied by
// subagent.Registry.
type Registry interface {
	Names() []string
	Resolve(name string) (core.ExecutionUnit, bool)
	RequiresPlanning(name string) bool
}

// Request describes one delegated task.
type Request struct {
	// SubAgent is the registered name of the target sub-agent.
	SubAgent string
	// Description is the task handed to the sub-agent as its sole user
	// message.
	Description string
	// Documents is the parent's current document set. Treated as read-only.
	Documents core.Documents
}

// Result is the outcome of a dispatch. It is always a value: usage errors,
// gate failures, panics and execution errors all surface as Message text so
// the orchestrating model can react, and Documents always holds a defined
// state (the parent's set when nothing ran, the merged overlay otherwise).
type Result struct {
	Documents core.Documents
	Message   string
}

// DispatcherOptions configures a Dispatcher instance.
type DispatcherOptions struct {
	// PlannerName is the sub-agent whose output feeds the plan registry.
	// After a successful dispatch to it, the registry and pointer documents
	// are refreshed from the merged set.
	PlannerName string
	// Logger receives per-phase dispatch logs.
	Logger logging.Logger
}

// Dispatcher routes tasks to sub-agents and owns the overlay merge back
// into the session's documents. Dispatches are sequential per session;
// sequential execution is the concurrency control for the document set.
type Dispatcher struct {
	registry Registry
	gate     *Gate
	logger   logging.Logger
	opts     DispatcherOptions
}

// NewDispatcher constructs a Dispatcher over the given registry.
func NewDispatcher(registry Registry, optFns ...func(o *DispatcherOptions)) *Dispatcher {
	opts := DispatcherOptions{
		PlannerName: "planner",
		Logger:      logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	return &Dispatcher{
		registry: registry,
		gate:     NewGate(registry),
		logger:   opts.Logger,
		opts:     opts,
	}
}

// Dispatch runs one delegated task to completion. See Result for the
// failure model; this method never panics and never returns an error.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Result {
	runID := uuid.NewString()
	parent := req.Documents
	if parent == nil {
		parent = core.Documents{}
	}

	unit, ok := d.registry.Resolve(req.SubAgent)
	if !ok {
		d.logger.Warn("dispatch.unknown_subagent", "run_id", runID, "subagent", req.SubAgent)
		return Result{
			Documents: parent,
			Message: fmt.Sprintf("Unknown sub-agent %q. Available sub-agents: %s.",
				req.SubAgent, strings.Join(d.registry.Names(), ", ")),
		}
	}

	if gateErr := d.gate.Check(req.SubAgent, parent); gateErr != nil {
		d.logger.Warn("dispatch.gate_blocked", "run_id", runID, "subagent", req.SubAgent, "reason", gateErr.Reason)
		return Result{Documents: parent, Message: gateErr.JSON()}
	}

	d.logger.Info("dispatch.start", "run_id", runID, "subagent", req.SubAgent, "documents", len(parent))

	outcome, err := d.invoke(ctx, runID, unit, req)
	if err != nil {
		d.logger.Error("dispatch.failed", "run_id", runID, "subagent", req.SubAgent, "error", err.Error())
		return Result{
			Documents: parent,
			Message: fmt.Sprintf("Sub-agent %q failed while working on %q: %v",
				req.SubAgent, req.Description, err),
		}
	}

	merged := core.MergeDocuments(parent, outcome.Documents)

	if req.SubAgent == d.opts.PlannerName {
		if entry := planner.Update(parent, merged); entry != nil {
			d.logger.Info("dispatch.plan_registered", "run_id", runID, "slug", entry.Slug)
		}
	}

	message := outcome.ResultText
	if message == "" {
		message = EmptyResultText
	}

	d.logger.Info("dispatch.done", "run_id", runID, "subagent", req.SubAgent, "documents", len(merged))

	return Result{Documents: merged, Message: message}
}

// invoke runs the execution unit with panic recovery. A panicking sub-agent
// becomes an error like any other execution failure.
func (d *Dispatcher) invoke(ctx context.Context, runID string, unit core.ExecutionUnit, req Request) (outcome *core.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = nil
			err = fmt.Errorf("panic during execution: %v", r)
		}
	}()

	outcome, err = unit.Execute(&core.Invocation{
		Context:     ctx,
		RunID:       runID,
		Description: req.Description,
		Documents:   req.Documents,
	})
	if err != nil {
		return nil, err
	}
	if outcome == nil {
		return nil, fmt.Errorf("execution returned no outcome")
	}

	return outcome, nil
}

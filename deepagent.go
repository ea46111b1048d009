// Package deepagent provides a high-level façade over the sub-agent
// orchestration core: a fixed registry of declarative sub-agents, a virtual
// document store shared between them, planner artifact tracking and gated,
// value-returning task dispatch. Most applications interact with this
// package by:
//  1. Creating a DeepAgent via New() with the sub-agent specs
//  2. Dispatching delegated tasks (Dispatch) or exposing the task tool to
//     an orchestrating model (Tool)
//
// The façade delegates routing to dispatch.Dispatcher while keeping setup
// ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a durable document store
// and a structured logger.
package deepagent

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/deepagent/core"
	"github.com/hupe1980/deepagent/dispatch"
	"github.com/hupe1980/deepagent/document"
	"github.com/hupe1980/deepagent/logging"
	"github.com/hupe1980/deepagent/model"
	"github.com/hupe1980/deepagent/subagent"
	"github.com/hupe1980/deepagent/tool"
)

// Options configures the DeepAgent instance.
type Options struct {
	// DefaultModel backs every sub-agent without a model override.
	DefaultModel model.Model
	// Models maps spec model override names to concrete models.
	Models map[string]model.Model
	// Tools are caller-supplied tools merged over the built-in document
	// tools when resolving spec allow-lists.
	Tools []tool.Tool
	// DocumentStore persists per-session documents (defaults to in-memory).
	DocumentStore core.DocumentStore
	// PlannerName is the sub-agent whose output feeds the plan registry.
	PlannerName string
	// MaxIterations bounds each sub-agent's tool loop.
	MaxIterations int
	// ToolTimeout bounds each individual tool call.
	ToolTimeout time.Duration
	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// DeepAgent is the long-lived session object aggregating the registry,
// dispatcher and document store. Dispatches against the same session are
// serialized; sequential execution is the concurrency control for the
// session's document set.
type DeepAgent struct {
	mu         sync.Mutex
	opts       Options
	registry   *subagent.Registry
	dispatcher *dispatch.Dispatcher
	store      core.DocumentStore
}

// New creates a DeepAgent from the given sub-agent specs. Construction
// never fails; spec problems degrade with warning logs.
func New(specs []core.Spec, optFns ...func(o *Options)) *DeepAgent {
	opts := Options{
		DocumentStore: document.NewInMemoryStore(),
		PlannerName:   "planner",
		Logger:        logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.DocumentStore == nil {
		opts.DocumentStore = document.NewInMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	catalog := tool.NewBuiltinCatalog()
	catalog.Register(opts.Tools...)

	factory := subagent.NewFactory(func(o *subagent.Options) {
		o.DefaultModel = opts.DefaultModel
		o.Models = opts.Models
		o.Catalog = catalog
		o.Logger = opts.Logger
		if opts.MaxIterations > 0 {
			o.MaxIterations = opts.MaxIterations
		}
		if opts.ToolTimeout > 0 {
			o.ToolTimeout = opts.ToolTimeout
		}
	})

	registry := factory.BuildRegistry(specs)

	dispatcher := dispatch.NewDispatcher(registry, func(o *dispatch.DispatcherOptions) {
		o.PlannerName = opts.PlannerName
		o.Logger = opts.Logger
	})

	return &DeepAgent{
		opts:       opts,
		registry:   registry,
		dispatcher: dispatcher,
		store:      opts.DocumentStore,
	}
}

// SubAgentNames returns the registered sub-agent names in sorted order.
func (d *DeepAgent) SubAgentNames() []string { return d.registry.Names() }

// Documents returns the session's current document set.
func (d *DeepAgent) Documents(sessionID string) (core.Documents, error) {
	return d.store.Load(sessionID)
}

// Dispatch delegates one task to a named sub-agent within a session. The
// session's documents are loaded, handed to the dispatcher, and the merged
// result is saved back. The returned message is always defined; failures
// surface as message text, never as a panic. The returned error covers
// document store I/O only.
func (d *DeepAgent) Dispatch(ctx context.Context, sessionID, subagentName, description string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	docs, err := d.store.Load(sessionID)
	if err != nil {
		return "", fmt.Errorf("load session %s: %w", sessionID, err)
	}

	result := d.dispatcher.Dispatch(ctx, dispatch.Request{
		SubAgent:    subagentName,
		Description: description,
		Documents:   docs,
	})

	if err := d.store.Save(sessionID, result.Documents); err != nil {
		return "", fmt.Errorf("save session %s: %w", sessionID, err)
	}

	return result.Message, nil
}

// Tool returns the single orchestrator-facing task tool, bound to one
// session. An orchestrating model calls it with {description,
// subagent_type} to delegate work and receives the sub-agent's result
// message.
func (d *DeepAgent) Tool(sessionID string) *tool.FunctionTool {
	description := fmt.Sprintf(
		"Delegate a task to a specialized sub-agent. Available sub-agents: %s.",
		strings.Join(d.registry.Names(), ", "))

	return tool.NewFunctionTool(
		"task",
		description,
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"description":   map[string]any{"type": "string", "description": "The task for the sub-agent to perform"},
				"subagent_type": map[string]any{"type": "string", "description": "The name of the sub-agent to delegate to"},
			},
			"required": []string{"description", "subagent_type"},
		},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			taskDescription, _ := args["description"].(string)
			subagentName, _ := args["subagent_type"].(string)

			message, err := d.Dispatch(tc.Context(), sessionID, subagentName, taskDescription)
			if err != nil {
				return nil, err
			}
			return message, nil
		},
	)
}

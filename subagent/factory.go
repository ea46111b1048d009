package subagent

import (
	"sort"
	"time"

	"github.com/hupe1980/deepagent/core"
	"github.com/hupe1980/deepagent/logging"
	"github.com/hupe1980/deepagent/model"
	"github.com/hupe1980/deepagent/tool"
)

// Options configures a Factory instance.
//
// Use functional options with NewFactory to override defaults.
type Options struct {
	// DefaultModel backs every sub-agent without a model override.
	DefaultModel model.Model
	// Models maps override names (core.Spec.Model) to concrete models.
	Models map[string]model.Model
	// Catalog is the combined tool catalog allow-lists resolve against.
	// Defaults to the built-in document tools.
	Catalog *tool.Catalog
	// Logger receives construction warnings and run logs.
	Logger logging.Logger
	// MaxIterations bounds the generate/tool-call loop per run.
	MaxIterations int
	// ToolTimeout bounds each individual tool call.
	ToolTimeout time.Duration
}

// Factory builds execution units from declarative specs. Construction never
// fails: misconfigurations (unknown tool names, unknown model overrides)
// degrade with a warning log instead of an error, so a bad spec entry
// cannot take the whole registry down.
type Factory struct {
	opts Options
}

// NewFactory creates a Factory with sensible defaults: the built-in
// document tool catalog, a 10 iteration tool loop and a 15 second per-tool
// timeout.
func NewFactory(optFns ...func(o *Options)) *Factory {
	opts := Options{
		Catalog:       tool.NewBuiltinCatalog(),
		Logger:        logging.NoOpLogger{},
		MaxIterations: 10,
		ToolTimeout:   15 * time.Second,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Catalog == nil {
		opts.Catalog = tool.NewBuiltinCatalog()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 10
	}

	return &Factory{opts: opts}
}

// Build turns one spec into an executable unit.
func (f *Factory) Build(spec core.Spec) *Unit {
	return &Unit{
		spec:          spec,
		llm:           f.resolveModel(spec),
		tools:         f.resolveTools(spec),
		maxIterations: f.opts.MaxIterations,
		toolTimeout:   f.opts.ToolTimeout,
		logger:        f.opts.Logger,
	}
}

// BuildRegistry builds all specs and indexes the units by name. Duplicate
// names keep the last spec, matching upsert semantics elsewhere.
func (f *Factory) BuildRegistry(specs []core.Spec) *Registry {
	r := &Registry{
		units: make(map[string]core.ExecutionUnit, len(specs)),
		specs: make(map[string]core.Spec, len(specs)),
	}
	for _, spec := range specs {
		r.units[spec.Name] = f.Build(spec)
		r.specs[spec.Name] = spec
	}
	return r
}

// resolveModel picks the override model when named, else the default.
func (f *Factory) resolveModel(spec core.Spec) model.Model {
	if spec.Model != "" {
		if m, ok := f.opts.Models[spec.Model]; ok {
			return m
		}
		f.opts.Logger.Warn("subagent.model.unknown", "subagent", spec.Name, "model", spec.Model)
	}
	return f.opts.DefaultModel
}

// resolveTools resolves the spec's allow-list against the catalog. An
// omitted list grants the full catalog; unmatched names are omitted with a
// warning so typos surface in logs instead of silently shrinking the
// capability set without trace.
func (f *Factory) resolveTools(spec core.Spec) map[string]tool.Tool {
	if spec.Tools == nil {
		return f.opts.Catalog.All()
	}

	tools := make(map[string]tool.Tool, len(spec.Tools))
	for _, name := range spec.Tools {
		t, ok := f.opts.Catalog.Resolve(name)
		if !ok {
			f.opts.Logger.Warn("subagent.tool.unmatched", "subagent", spec.Name, "tool", name)
			continue
		}
		tools[name] = t
	}
	return tools
}

// Registry holds the built execution units keyed by sub-agent name. It is
// immutable after construction and safe for concurrent reads.
type Registry struct {
	units map[string]core.ExecutionUnit
	specs map[string]core.Spec
}

// Names returns the registered sub-agent names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.units))
	for name := range r.units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the execution unit registered under name.
func (r *Registry) Resolve(name string) (core.ExecutionUnit, bool) {
	unit, ok := r.units[name]
	return unit, ok
}

// RequiresPlanning reports whether the named sub-agent is gated on planner
// artifacts. Unknown names are not gated.
func (r *Registry) RequiresPlanning(name string) bool {
	spec, ok := r.specs[name]
	return ok && spec.RequiresPlanning
}

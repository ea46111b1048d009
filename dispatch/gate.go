package dispatch

import (
	"github.com/hupe1980/deepagent/core"
	"github.com/hupe1980/deepagent/planner"
)

// PlanningChecker reports which sub-agents depend on planner artifacts.
// Satisfied by subagent.Registry.
type PlanningChecker interface {
	RequiresPlanning(name string) bool
}

// Gate decides whether an artifact-dependent sub-agent may run. It inspects
// the document set only; it never mutates anything.
type Gate struct {
	checker PlanningChecker
}

// NewGate constructs a Gate over the given dependency checker.
func NewGate(checker PlanningChecker) *Gate {
	return &Gate{checker: checker}
}

// Check returns nil when the named sub-agent may run against docs. For
// artifact-dependent sub-agents it resolves the active plan and verifies
// that every required artifact document exists:
//   - no plan resolves at all -> MissingArtifact with reason
//     planner_artifacts_unavailable
//   - plan resolves but artifacts are absent -> MissingArtifact naming the
//     slug and the missing paths
func (g *Gate) Check(subagentName string, docs core.Documents) *core.StructuredError {
	if g.checker == nil || !g.checker.RequiresPlanning(subagentName) {
		return nil
	}

	entry, ok := planner.ResolveActive(docs)
	if !ok {
		return core.NewPlannerUnavailableError()
	}

	var missing []string
	for _, path := range entry.Paths.ArtifactPaths() {
		if _, exists := docs[path]; !exists {
			missing = append(missing, path)
		}
	}

	if len(missing) > 0 {
		return core.NewMissingArtifactError(entry.Slug, missing)
	}

	return nil
}

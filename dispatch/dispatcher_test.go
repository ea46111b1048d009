package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/deepagent/core"
	"github.com/hupe1980/deepagent/internal/testutil"
	"github.com/hupe1980/deepagent/planner"
)

// spyUnit is a scriptable execution unit recording invocations.
type spyUnit struct {
	name        string
	description string
	calls       int
	lastInv     *core.Invocation
	outcome     *core.Outcome
	err         error
	panicWith   any
}

func (u *spyUnit) Name() string        { return u.name }
func (u *spyUnit) Description() string { return u.description }

func (u *spyUnit) Execute(inv *core.Invocation) (*core.Outcome, error) {
	u.calls++
	u.lastInv = inv
	if u.panicWith != nil {
		panic(u.panicWith)
	}
	if u.err != nil {
		return nil, u.err
	}
	return u.outcome, nil
}

// fakeRegistry indexes spy units by name.
type fakeRegistry struct {
	units    map[string]*spyUnit
	planning map[string]bool
}

func (r *fakeRegistry) Names() []string {
	names := make([]string, 0, len(r.units))
	for name := range r.units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *fakeRegistry) Resolve(name string) (core.ExecutionUnit, bool) {
	u, ok := r.units[name]
	return u, ok
}

func (r *fakeRegistry) RequiresPlanning(name string) bool { return r.planning[name] }

func newFakeRegistry(units ...*spyUnit) *fakeRegistry {
	r := &fakeRegistry{units: map[string]*spyUnit{}, planning: map[string]bool{}}
	for _, u := range units {
		r.units[u.name] = u
	}
	return r
}

func TestDispatcher_UnknownSubAgent(t *testing.T) {
	writer := &spyUnit{name: "writer"}
	d := NewDispatcher(newFakeRegistry(writer, &spyUnit{name: "planner"}))

	parent := core.Documents{"a.md": "keep"}
	result := d.Dispatch(context.Background(), Request{
		SubAgent:    "ghost",
		Description: "do things",
		Documents:   parent,
	})

	assert.Contains(t, result.Message, `"ghost"`)
	assert.Contains(t, result.Message, "planner, writer")
	assert.Equal(t, parent, result.Documents)
	assert.Zero(t, writer.calls)
}

func TestDispatcher_GateBlocksBeforeInvocation(t *testing.T) {
	researcher := &spyUnit{name: "researcher"}
	registry := newFakeRegistry(researcher)
	registry.planning["researcher"] = true

	d := NewDispatcher(registry)

	result := d.Dispatch(context.Background(), Request{
		SubAgent:    "researcher",
		Description: "investigate",
		Documents:   core.Documents{},
	})

	var structured core.StructuredError
	require.NoError(t, json.Unmarshal([]byte(result.Message), &structured))
	assert.Equal(t, core.KindMissingArtifact, structured.Kind)
	assert.Equal(t, core.ReasonPlannerUnavailable, structured.Reason)

	assert.Zero(t, researcher.calls)
}

func TestDispatcher_SuccessMergesOverlay(t *testing.T) {
	writer := &spyUnit{
		name: "writer",
		outcome: &core.Outcome{
			Documents:  core.Documents{"report.md": "v2", "notes.md": "fresh"},
			ResultText: "report updated",
		},
	}

	d := NewDispatcher(newFakeRegistry(writer))

	parent := core.Documents{"report.md": "v1", "other.md": "untouched"}
	result := d.Dispatch(context.Background(), Request{
		SubAgent:    "writer",
		Description: "update the report",
		Documents:   parent,
	})

	assert.Equal(t, "report updated", result.Message)
	assert.Equal(t, core.Documents{
		"report.md": "v2",
		"notes.md":  "fresh",
		"other.md":  "untouched",
	}, result.Documents)

	// Parent snapshot is never mutated.
	assert.Equal(t, core.Documents{"report.md": "v1", "other.md": "untouched"}, parent)

	require.Equal(t, 1, writer.calls)
	assert.Equal(t, "update the report", writer.lastInv.Description)
	assert.NotEmpty(t, writer.lastInv.RunID)
}

func TestDispatcher_EmptyResultTextGetsPlaceholder(t *testing.T) {
	quiet := &spyUnit{name: "quiet", outcome: &core.Outcome{Documents: core.Documents{}}}
	d := NewDispatcher(newFakeRegistry(quiet))

	result := d.Dispatch(context.Background(), Request{SubAgent: "quiet"})

	assert.Equal(t, EmptyResultText, result.Message)
}

func TestDispatcher_ExecutionErrorBecomesMessage(t *testing.T) {
	failing := &spyUnit{name: "failing", err: errors.New("model exploded")}
	d := NewDispatcher(newFakeRegistry(failing))

	parent := core.Documents{"a.md": "keep"}
	result := d.Dispatch(context.Background(), Request{
		SubAgent:    "failing",
		Description: "risky task",
		Documents:   parent,
	})

	assert.Contains(t, result.Message, "failing")
	assert.Contains(t, result.Message, "risky task")
	assert.Contains(t, result.Message, "model exploded")
	assert.Equal(t, parent, result.Documents)
}

func TestDispatcher_PanicIsRecovered(t *testing.T) {
	panicking := &spyUnit{name: "panicking", panicWith: "nil map write"}
	d := NewDispatcher(newFakeRegistry(panicking))

	parent := core.Documents{"a.md": "keep"}

	var result Result
	require.NotPanics(t, func() {
		result = d.Dispatch(context.Background(), Request{
			SubAgent:  "panicking",
			Documents: parent,
		})
	})

	assert.Contains(t, result.Message, "panic")
	assert.Equal(t, parent, result.Documents)
}

func TestDispatcher_PlannerDispatchUpdatesRegistry(t *testing.T) {
	plannerDocs := testutil.PlannerDocuments("NVIDIA Stock")
	planning := &spyUnit{
		name: "planner",
		outcome: &core.Outcome{
			Documents:  plannerDocs,
			ResultText: "plan ready",
		},
	}

	d := NewDispatcher(newFakeRegistry(planning))

	result := d.Dispatch(context.Background(), Request{
		SubAgent:    "planner",
		Description: "plan the research",
		Documents:   core.Documents{},
	})

	assert.Equal(t, "plan ready", result.Message)

	require.Contains(t, result.Documents, planner.RegistryPath)
	require.Contains(t, result.Documents, planner.PointerPath)

	entry, ok := planner.ResolveActive(result.Documents)
	require.True(t, ok)
	assert.Equal(t, "nvidia_stock", entry.Slug)
}

func TestDispatcher_NonPlannerDispatchLeavesRegistryAlone(t *testing.T) {
	writer := &spyUnit{
		name:    "writer",
		outcome: &core.Outcome{Documents: core.Documents{"x.md": "y"}, ResultText: "ok"},
	}

	d := NewDispatcher(newFakeRegistry(writer))

	result := d.Dispatch(context.Background(), Request{SubAgent: "writer"})

	assert.NotContains(t, result.Documents, planner.RegistryPath)
	assert.NotContains(t, result.Documents, planner.PointerPath)
}

package subagent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/deepagent/core"
	"github.com/hupe1980/deepagent/model"
)

func buildTestUnit(t *testing.T, llm model.Model, optFns ...func(o *Options)) *Unit {
	t.Helper()

	factory := NewFactory(append([]func(o *Options){func(o *Options) {
		o.DefaultModel = llm
	}}, optFns...)...)

	return factory.Build(core.Spec{
		Name:        "writer",
		Description: "writes documents",
		Prompt:      "You write documents.",
	})
}

func TestUnit_Execute_PlainAnswer(t *testing.T) {
	llm := model.NewMockModel("test")
	llm.AddResponse("write a note", "here is the note")

	unit := buildTestUnit(t, llm)

	outcome, err := unit.Execute(&core.Invocation{
		Context:     context.Background(),
		RunID:       "run-1",
		Description: "write a note",
	})
	require.NoError(t, err)
	assert.Equal(t, "here is the note", outcome.ResultText)
	assert.Empty(t, outcome.Documents)
}

func TestUnit_Execute_ToolLoopWritesWorkingSet(t *testing.T) {
	llm := model.NewMockModel("test")
	llm.Script(
		model.Response{
			Message: core.Message{
				Role: "assistant",
				ToolCalls: []core.ToolCall{{
					ID:        "call-1",
					Name:      "write_document",
					Arguments: `{"path":"notes/a.md","content":"hello"}`,
				}},
			},
			FinishReason: "tool_calls",
		},
		model.Response{Message: core.NewAssistantMessage("saved the note"), FinishReason: "stop"},
	)

	unit := buildTestUnit(t, llm)

	parent := core.Documents{"existing.md": "keep"}
	outcome, err := unit.Execute(&core.Invocation{
		Context:     context.Background(),
		RunID:       "run-1",
		Description: "write a note",
		Documents:   parent,
	})
	require.NoError(t, err)

	assert.Equal(t, "saved the note", outcome.ResultText)
	assert.Equal(t, "hello", outcome.Documents["notes/a.md"])
	assert.Equal(t, "keep", outcome.Documents["existing.md"])

	// Snapshot isolation: the invocation's documents are untouched.
	assert.NotContains(t, parent, "notes/a.md")

	// The tool result went back to the model as a tool-role turn.
	requests := llm.Requests()
	require.Len(t, requests, 2)
	lastTurn := requests[1].Messages[len(requests[1].Messages)-1]
	assert.Equal(t, "tool", lastTurn.Role)
	require.Len(t, lastTurn.ToolResults, 1)
	assert.Equal(t, "call-1", lastTurn.ToolResults[0].ID)
	assert.False(t, lastTurn.ToolResults[0].IsError)
}

func TestUnit_Execute_UnknownToolBecomesErrorResult(t *testing.T) {
	llm := model.NewMockModel("test")
	llm.Script(
		model.Response{
			Message: core.Message{
				Role:      "assistant",
				ToolCalls: []core.ToolCall{{ID: "call-1", Name: "launch_rocket", Arguments: `{}`}},
			},
			FinishReason: "tool_calls",
		},
		model.Response{Message: core.NewAssistantMessage("cannot do that"), FinishReason: "stop"},
	)

	unit := buildTestUnit(t, llm)

	outcome, err := unit.Execute(&core.Invocation{Context: context.Background(), Description: "go"})
	require.NoError(t, err)
	assert.Equal(t, "cannot do that", outcome.ResultText)

	requests := llm.Requests()
	require.Len(t, requests, 2)
	lastTurn := requests[1].Messages[len(requests[1].Messages)-1]
	require.Len(t, lastTurn.ToolResults, 1)
	assert.True(t, lastTurn.ToolResults[0].IsError)
}

func TestUnit_Execute_InvalidToolArguments(t *testing.T) {
	llm := model.NewMockModel("test")
	llm.Script(
		model.Response{
			Message: core.Message{
				Role:      "assistant",
				ToolCalls: []core.ToolCall{{ID: "call-1", Name: "write_document", Arguments: `not json`}},
			},
			FinishReason: "tool_calls",
		},
		model.Response{Message: core.NewAssistantMessage("ok"), FinishReason: "stop"},
	)

	unit := buildTestUnit(t, llm)

	_, err := unit.Execute(&core.Invocation{Context: context.Background(), Description: "go"})
	require.NoError(t, err)

	requests := llm.Requests()
	lastTurn := requests[1].Messages[len(requests[1].Messages)-1]
	require.Len(t, lastTurn.ToolResults, 1)
	assert.True(t, lastTurn.ToolResults[0].IsError)
	assert.Contains(t, lastTurn.ToolResults[0].Content, "invalid tool arguments")
}

func TestUnit_Execute_MaxIterationsBoundsLoop(t *testing.T) {
	llm := model.NewMockModel("test")
	// Always request another tool call; the loop must stop anyway.
	for i := 0; i < 10; i++ {
		llm.Script(model.Response{
			Message: core.Message{
				Role:      "assistant",
				ToolCalls: []core.ToolCall{{ID: "call", Name: "list_documents", Arguments: `{}`}},
			},
			FinishReason: "tool_calls",
		})
	}

	unit := buildTestUnit(t, llm, func(o *Options) {
		o.MaxIterations = 3
	})

	outcome, err := unit.Execute(&core.Invocation{Context: context.Background(), Description: "go"})
	require.NoError(t, err)
	assert.Len(t, llm.Requests(), 3)
	assert.Empty(t, outcome.ResultText)
}

func TestUnit_Execute_ModelErrorPropagates(t *testing.T) {
	llm := model.NewMockModel("test")
	llm.FailWith(errors.New("provider down"))

	unit := buildTestUnit(t, llm)

	_, err := unit.Execute(&core.Invocation{Context: context.Background(), Description: "go"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider down")
}

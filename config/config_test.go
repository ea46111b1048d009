package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/deepagent/retry"
)

const sampleConfig = `
default_model: claude
planner_name: planner
max_iterations: 8
tool_timeout_ms: 20000
retry:
  max_attempts: 5
  initial_delay_ms: 100
  max_delay_ms: 2000
  backoff_multiplier: 1.5
  timeout_ms: 10000
subagents:
  - name: planner
    description: Produces analysis, scope and plan documents for a topic.
    prompt: You are a research planner.
  - name: researcher
    description: Investigates a planned topic.
    prompt: You are a researcher.
    tools:
      - read_document
      - write_document
    model: fast
    requires_planning: true
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "claude", cfg.DefaultModel)
	assert.Equal(t, "planner", cfg.PlannerName)
	assert.Equal(t, 8, cfg.MaxIterations)
	assert.Equal(t, 20*time.Second, cfg.ToolTimeout())

	require.Len(t, cfg.SubAgents, 2)

	researcher := cfg.SubAgents[1]
	assert.Equal(t, "researcher", researcher.Name)
	assert.Equal(t, []string{"read_document", "write_document"}, researcher.Tools)
	assert.Equal(t, "fast", researcher.Model)
	assert.True(t, researcher.RequiresPlanning)

	policy := cfg.Retry.Policy()
	assert.Equal(t, 5, policy.MaxAttempts)
	assert.Equal(t, 100*time.Millisecond, policy.InitialDelay)
	assert.Equal(t, 2*time.Second, policy.MaxDelay)
	assert.Equal(t, 1.5, policy.Multiplier)
	assert.Equal(t, 10*time.Second, policy.Timeout)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(`subagents: []`))
	require.NoError(t, err)

	assert.Equal(t, "planner", cfg.PlannerName)
	assert.Equal(t, retry.DefaultPolicy(), cfg.Retry.Policy())
}

func TestParse_RejectsEmptyName(t *testing.T) {
	_, err := Parse([]byte("subagents:\n  - description: no name\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name must not be empty")
}

func TestParse_RejectsDuplicateNames(t *testing.T) {
	_, err := Parse([]byte("subagents:\n  - name: twin\n  - name: twin\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate name")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.SubAgents, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

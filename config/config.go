// Package config loads declarative sub-agent configuration from YAML:
// sub-agent specs, the retry policy and model defaults. Everything loaded
// here feeds the same constructors that accept functional options, so file
// based and programmatic setup stay interchangeable.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/deepagent/core"
	"github.com/hupe1980/deepagent/retry"
)

// RetryConfig mirrors retry.Policy with YAML-friendly millisecond fields.
type RetryConfig struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutMs         int     `yaml:"timeout_ms"`
}

// Policy converts the config to a retry.Policy. Zero fields fall back to
// the package defaults.
func (r RetryConfig) Policy() retry.Policy {
	policy := retry.DefaultPolicy()
	if r.MaxAttempts > 0 {
		policy.MaxAttempts = r.MaxAttempts
	}
	if r.InitialDelayMs > 0 {
		policy.InitialDelay = time.Duration(r.InitialDelayMs) * time.Millisecond
	}
	if r.MaxDelayMs > 0 {
		policy.MaxDelay = time.Duration(r.MaxDelayMs) * time.Millisecond
	}
	if r.BackoffMultiplier > 0 {
		policy.Multiplier = r.BackoffMultiplier
	}
	if r.TimeoutMs > 0 {
		policy.Timeout = time.Duration(r.TimeoutMs) * time.Millisecond
	}
	return policy
}

// Config is the root configuration document.
type Config struct {
	// DefaultModel names the model backing sub-agents without an override.
	DefaultModel string `yaml:"default_model"`
	// PlannerName is the sub-agent whose output feeds the plan registry.
	PlannerName string `yaml:"planner_name"`
	// MaxIterations bounds each sub-agent's tool loop.
	MaxIterations int `yaml:"max_iterations"`
	// ToolTimeoutMs bounds each individual tool call.
	ToolTimeoutMs int `yaml:"tool_timeout_ms"`
	// Retry is the policy applied to retry-wrapped capabilities.
	Retry RetryConfig `yaml:"retry"`
	// SubAgents declares the dispatchable units.
	SubAgents []core.Spec `yaml:"subagents"`
}

// ToolTimeout returns the configured per-tool timeout, or 0 when unset.
func (c *Config) ToolTimeout() time.Duration {
	return time.Duration(c.ToolTimeoutMs) * time.Millisecond
}

// Parse decodes and validates a YAML configuration document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.PlannerName == "" {
		cfg.PlannerName = "planner"
	}

	seen := make(map[string]struct{}, len(cfg.SubAgents))
	for i, spec := range cfg.SubAgents {
		if spec.Name == "" {
			return nil, fmt.Errorf("subagents[%d]: name must not be empty", i)
		}
		if _, dup := seen[spec.Name]; dup {
			return nil, fmt.Errorf("subagents[%d]: duplicate name %q", i, spec.Name)
		}
		seen[spec.Name] = struct{}{}
	}

	return &cfg, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Package model defines the provider-agnostic language model contract used
// by sub-agent execution units, together with a deterministic mock for
// tests. Concrete adapters for the Anthropic and OpenAI APIs live in the
// subpackages model/anthropic and model/openai.
package model

// Package subagent turns declarative sub-agent specs into runnable
// execution units. The factory resolves each spec's tool allow-list and
// model override at startup and the registry exposes the built units to the
// dispatcher by name.
package subagent

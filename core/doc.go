// Package core defines the central domain contracts of the module: the
// virtual document store shared between the orchestrating agent and its
// sub-agents, the sub-agent specification and execution contracts, the
// structured error payloads consumed by the orchestrating model, and the
// tool execution context.
//
// Contracts live here so that implementation packages (document, subagent,
// dispatch, planner, tool) can depend on them without cycles. Callers should
// depend on the interfaces in this package rather than concrete types so
// alternative backends can be substituted in tests or production.
package core

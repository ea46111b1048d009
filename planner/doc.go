// Package planner derives the canonical per-topic artifact paths and
// maintains the durable registry of planning runs inside the virtual
// document store.
//
// Everything in this package is a pure function over document maps: path
// derivation is deterministic (same topic, same paths, no counters or
// timestamps in the slug), and the registry update reads and writes only
// the document sets handed to it. Decoding of the three JSON document
// shapes this module owns (metadata, registry, pointer) is consolidated
// here so call sites never parse documents ad hoc.
package planner

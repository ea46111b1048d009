// Package dispatch routes delegated tasks to registered sub-agents. The
// dispatcher is the only writer of the session's document overlay and the
// gate blocks artifact-dependent sub-agents until planner output exists.
// Every failure mode is returned as a result value; a dispatch call never
// panics and never returns a Go error to the orchestrating model.
package dispatch

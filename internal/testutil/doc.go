// Package testutil provides shared builders for tests: canned planner
// artifact documents and metadata payloads so individual test files do not
// hand-assemble JSON.
package testutil

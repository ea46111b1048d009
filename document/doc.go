// Package document contains concrete implementations of core.DocumentStore.
//
// The canonical DocumentStore interface lives in the core package to avoid
// dependency cycles and keep domain contracts central. Implementation
// packages like this one (in-memory, sqlite) provide storage backends that
// can be swapped without touching calling code.
package document

// Package status resolves prerequisite-gated progress.
//
// The rule is conjunctive: a node unlocks only once every prerequisite is
// completed. Synthetic structural edges from the roadmap builder are not
// prerequisites, so top-level modules start out available.
//
// Every function here is pure over (graph, completion set) and cheap enough
// to re-run on each completion change.
package status

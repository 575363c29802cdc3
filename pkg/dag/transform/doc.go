// Package transform provides the graph passes that turn a freshly built
// roadmap into a ranked, diagnosable graph.
//
// # Depth Resolution
//
// [ResolveDepth] runs a breadth-first traversal from the root, assigning
// each discovered node parent depth + 1 and recording the discovery order
// (used by presentation layers to stagger reveal animations). Nodes never
// discovered are reported as unreachable.
//
// # Cycle Detection
//
// Roadmap edges are supposed to form a DAG. [FindCycles] reports the back
// edges that violate this so callers can surface upstream data corruption.
// It does not remove them; BFS and visibility passes already terminate on
// revisits.
//
// # Orphan Pruning
//
// [PruneUnreachable] drops nodes with no path from the root and hands them
// back for diagnostics.
//
// # Usage
//
//	res := transform.ResolveDepth(g)
//	orphans := transform.PruneUnreachable(g, res.Unreachable)
//	cycles := transform.FindCycles(g)
package transform

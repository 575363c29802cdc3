// Package dag provides the in-memory roadmap graph used by every stage of
// the roadmap engine.
//
// # Overview
//
// A roadmap is a directed graph rooted at a single synthetic origin ("the
// learner"). Edges point from a node to the nodes it unlocks, so the same
// edge set serves two purposes:
//
//   - structural parent→child links that drive depth and layout
//   - prerequisite links (module→module) that drive unlock status
//
// Both are stored uniformly as [Edge]. The builder-created root→topic and
// topic→module links are marked [Edge.Synthetic]; they never appear in the
// prerequisite index returned by [DAG.Prerequisites].
//
// # Basic Usage
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "a", Kind: dag.KindTopic})
//	g.AddNode(dag.Node{ID: "b", Kind: dag.KindTopic})
//	g.AddEdge(dag.Edge{From: "a", To: "b"})
//	g.Prerequisites("b") // ["a"]
//
// Nodes are kept in insertion order; [DAG.Nodes], [DAG.NodesAtDepth] and
// [DAG.NodeIDs] all return that order, which keeps layout and status passes
// deterministic.
//
// # Concurrency
//
// A DAG is not safe for concurrent mutation. Engine stages treat a built
// graph as immutable and annotate a [DAG.Clone] instead.
package dag

// Package graph provides the serialization types for roadmap graphs.
//
// This package defines the wire format consumed by rendering layers: JSON
// files written by the CLI and the bodies returned by the HTTP server.
//
// # Core Types
//
//   - [Graph]: node-link format with every node and edge
//   - [Snapshot]: one pipeline pass (annotated nodes, visible edges, bounds,
//     visit order, normalizer [Source] and builder [Diagnostics])
//   - [Node], [Edge]: shared structural types
//
// Use [FromDAG] and [ToDAG] to convert between [Graph] and the in-memory
// dag.DAG.
//
// # Snapshot Serialization
//
//	{
//	  "run_id": "5f0c...",
//	  "root": "__learner__",
//	  "nodes": [{"id": "__learner__", "kind": "root", "status": "in-progress", ...}],
//	  "edges": [{"from": "__learner__", "to": "__topic__", "synthetic": true}],
//	  "bounds": {"min_x": -180, "min_y": -132, "max_x": 180, "max_y": 452},
//	  "visit_order": ["__learner__", "__topic__"]
//	}
//
// Kind and status are written as their names ("topic", "locked").
package graph

// Package roadmap builds the rooted roadmap graph from node and edge
// records.
//
// Records come either from persisted rows ([NodeRecord], [EdgeRecord]) or
// from normalizer output via [FromModules]. [Build] adds two synthetic nodes,
// the learner root ([RootID]) and the subject topic ([TopicID]), wires them
// to the depth-1 records, resolves depths and drops unreachable records.
//
// Input problems never fail the build. Duplicate ids (last write wins),
// dangling edges, orphans and cycles are returned as [Diagnostics] next to a
// graph that is always usable.
package roadmap

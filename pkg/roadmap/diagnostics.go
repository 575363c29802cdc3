package roadmap

import (
	"fmt"

	"github.com/cariskill/roadmap/pkg/dag"
)

// Diagnostics reports every input problem the builder degraded around.
// None of them is fatal; a non-empty Diagnostics still comes with a usable
// graph.
type Diagnostics struct {
	// Duplicates counts node records replaced by a later record with the
	// same id (last write wins).
	Duplicates   int
	DuplicateIDs []string
	// InvalidRecords counts node records dropped for an unusable id.
	InvalidRecords int
	// DuplicateEdges counts repeated source→target rows.
	DuplicateEdges int
	// DanglingEdges are edge rows naming an unknown node.
	DanglingEdges []dag.Edge
	// Orphans are nodes with no path from the root. They are removed from
	// the graph and kept here.
	Orphans []dag.Node
	// Cycles are back edges closing a directed cycle.
	Cycles []dag.Edge
}

// Empty reports whether nothing was degraded.
func (d Diagnostics) Empty() bool {
	return d.Duplicates == 0 && d.InvalidRecords == 0 && d.DuplicateEdges == 0 &&
		len(d.DanglingEdges) == 0 && len(d.Orphans) == 0 && len(d.Cycles) == 0
}

// Warnings renders the diagnostics as human-readable lines.
func (d Diagnostics) Warnings() []string {
	var out []string
	if d.Duplicates > 0 {
		out = append(out, fmt.Sprintf("%d duplicate node record(s) replaced: %v", d.Duplicates, d.DuplicateIDs))
	}
	if d.InvalidRecords > 0 {
		out = append(out, fmt.Sprintf("%d node record(s) with invalid id dropped", d.InvalidRecords))
	}
	if d.DuplicateEdges > 0 {
		out = append(out, fmt.Sprintf("%d duplicate edge row(s) ignored", d.DuplicateEdges))
	}
	for _, e := range d.DanglingEdges {
		out = append(out, fmt.Sprintf("edge %s -> %s references an unknown node", e.From, e.To))
	}
	for _, n := range d.Orphans {
		out = append(out, fmt.Sprintf("node %s is unreachable from the root and was dropped", n.ID))
	}
	for _, e := range d.Cycles {
		out = append(out, fmt.Sprintf("edge %s -> %s closes a cycle", e.From, e.To))
	}
	return out
}

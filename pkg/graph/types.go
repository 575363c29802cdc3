package graph

import (
	"fmt"
	"maps"

	"github.com/cariskill/roadmap/pkg/dag"
	"github.com/cariskill/roadmap/pkg/layout"
	"github.com/cariskill/roadmap/pkg/normalize"
	"github.com/cariskill/roadmap/pkg/roadmap"
)

// =============================================================================
// Graph - Node-Link Serialization
// =============================================================================

// Graph is the node-link serialization of a roadmap graph. Nodes and edges
// keep the graph's insertion order so output is deterministic.
type Graph struct {
	Root  string `json:"root,omitempty"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is the serialized form of a [dag.Node] plus the view flags a
// renderer needs.
type Node struct {
	ID          string       `json:"id"`
	Label       string       `json:"label,omitempty"`
	Kind        dag.Kind     `json:"kind"`
	Depth       int          `json:"depth"`
	Color       string       `json:"color,omitempty"`
	Status      dag.Status   `json:"status"`
	Percentage  string       `json:"percentage,omitempty"`
	Collapsible bool         `json:"collapsible,omitempty"`
	Collapsed   bool         `json:"collapsed,omitempty"`
	Visible     bool         `json:"visible"`
	Actionable  bool         `json:"actionable,omitempty"`
	Position    dag.Position `json:"position"`

	Description string         `json:"description,omitempty"`
	Rationale   string         `json:"rationale,omitempty"`
	Meta        map[string]any `json:"meta,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed edge: To depends on From.
type Edge struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Synthetic bool   `json:"synthetic,omitempty"`
}

// =============================================================================
// Snapshot - Full Pipeline Output
// =============================================================================

// Snapshot is everything a rendering layer needs for one pass: every node
// with its annotations and visibility, the pan bounds and the reveal order.
//
// The embedded Graph always holds the full edge set; rebuilding it with
// [ToDAG] gives back the original prerequisites whatever was collapsed.
// VisibleEdges is the subset between visible nodes.
type Snapshot struct {
	RunID   string `json:"run_id,omitempty"`
	Subject string `json:"subject,omitempty"`

	Graph
	VisibleEdges []Edge `json:"visible_edges"`

	Bounds     layout.Bounds `json:"bounds"`
	Crossings  int           `json:"crossings,omitempty"`
	VisitOrder []string      `json:"visit_order,omitempty"`

	Source      *Source      `json:"source,omitempty"`
	Diagnostics *Diagnostics `json:"diagnostics,omitempty"`
}

// VisibleNodes returns the nodes not hidden by a collapsed ancestor.
func (s *Snapshot) VisibleNodes() []Node {
	var out []Node
	for _, n := range s.Nodes {
		if n.Visible {
			out = append(out, n)
		}
	}
	return out
}

// Source describes how a raw payload was normalized.
type Source struct {
	Probe        string   `json:"probe"`
	Path         string   `json:"path,omitempty"`
	Modules      int      `json:"modules"`
	Ambiguous    bool     `json:"ambiguous,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`
}

// SourceFrom summarizes a normalizer result.
func SourceFrom(r normalize.Result) *Source {
	return &Source{
		Probe:        r.Probe,
		Path:         r.Path,
		Modules:      len(r.Modules),
		Ambiguous:    r.Ambiguous,
		Alternatives: r.Alternatives,
	}
}

// Diagnostics is the serialized form of [roadmap.Diagnostics].
type Diagnostics struct {
	Duplicates     int      `json:"duplicates,omitempty"`
	DuplicateIDs   []string `json:"duplicate_ids,omitempty"`
	InvalidRecords int      `json:"invalid_records,omitempty"`
	DuplicateEdges int      `json:"duplicate_edges,omitempty"`
	DanglingEdges  []Edge   `json:"dangling_edges,omitempty"`
	Orphans        []string `json:"orphans,omitempty"`
	Cycles         []Edge   `json:"cycles,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}

// DiagnosticsFrom converts builder diagnostics. It returns nil when there is
// nothing to report.
func DiagnosticsFrom(d roadmap.Diagnostics) *Diagnostics {
	if d.Empty() {
		return nil
	}
	out := &Diagnostics{
		Duplicates:     d.Duplicates,
		DuplicateIDs:   d.DuplicateIDs,
		InvalidRecords: d.InvalidRecords,
		DuplicateEdges: d.DuplicateEdges,
		DanglingEdges:  edgesFrom(d.DanglingEdges),
		Cycles:         edgesFrom(d.Cycles),
		Warnings:       d.Warnings(),
	}
	for _, n := range d.Orphans {
		out.Orphans = append(out.Orphans, n.ID)
	}
	return out
}

// =============================================================================
// DAG ↔ Graph Conversion
// =============================================================================

// FromDAG converts a DAG to its serialization format. Every node is marked
// visible; callers that reduce visibility clear the flag afterwards.
func FromDAG(g *dag.DAG) Graph {
	out := Graph{
		Root:  g.Root(),
		Nodes: make([]Node, 0, g.NodeCount()),
		Edges: edgesFrom(g.Edges()),
	}
	for _, n := range g.Nodes() {
		out.Nodes = append(out.Nodes, nodeFromDAG(n))
	}
	return out
}

// ToDAG converts a Graph back to a DAG. Returns an error for duplicate node
// IDs or edges naming unknown nodes.
func ToDAG(gr Graph) (*dag.DAG, error) {
	d := dag.New()
	for _, nj := range gr.Nodes {
		n := dag.Node{
			ID:          nj.ID,
			Label:       nj.Label,
			Kind:        nj.Kind,
			Depth:       nj.Depth,
			Color:       nj.Color,
			Status:      nj.Status,
			Percentage:  nj.Percentage,
			Collapsible: nj.Collapsible,
			Collapsed:   nj.Collapsed,
			Position:    nj.Position,
			Description: nj.Description,
			Rationale:   nj.Rationale,
			Meta:        maps.Clone(nj.Meta),
		}
		if err := d.AddNode(n); err != nil {
			return nil, fmt.Errorf("add node %s: %w", nj.ID, err)
		}
	}
	for _, ej := range gr.Edges {
		if err := d.AddEdge(dag.Edge{From: ej.From, To: ej.To, Synthetic: ej.Synthetic}); err != nil {
			return nil, fmt.Errorf("add edge %s→%s: %w", ej.From, ej.To, err)
		}
	}
	d.SetRoot(gr.Root)
	return d, nil
}

func nodeFromDAG(n *dag.Node) Node {
	node := Node{
		ID:          n.ID,
		Label:       n.Label,
		Kind:        n.Kind,
		Depth:       n.Depth,
		Color:       n.Color,
		Status:      n.Status,
		Percentage:  n.Percentage,
		Collapsible: n.Collapsible,
		Collapsed:   n.Collapsed,
		Visible:     true,
		Position:    n.Position,
		Description: n.Description,
		Rationale:   n.Rationale,
	}
	if len(n.Meta) > 0 {
		node.Meta = maps.Clone(n.Meta)
	}
	return node
}

func edgesFrom(edges []dag.Edge) []Edge {
	if len(edges) == 0 {
		return nil
	}
	out := make([]Edge, len(edges))
	for i, e := range edges {
		out[i] = Edge{From: e.From, To: e.To, Synthetic: e.Synthetic}
	}
	return out
}

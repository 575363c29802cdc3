package pipeline

import (
	"github.com/cariskill/roadmap/pkg/dag"
	"github.com/cariskill/roadmap/pkg/graph"
	"github.com/cariskill/roadmap/pkg/layout"
	"github.com/cariskill/roadmap/pkg/status"
	"github.com/cariskill/roadmap/pkg/visibility"
)

// Default node fill colors.
const (
	ColorRoot       = "#1f2937"
	ColorCategory   = "#4f46e5"
	ColorCompleted  = "#16a34a"
	ColorInProgress = "#f59e0b"
	ColorLocked     = "#9ca3af"
)

// NodeColor returns the fill color for a node of kind k in status s.
// Synthetic nodes have a fixed color; the rest are colored by status.
func NodeColor(k dag.Kind, s dag.Status) string {
	switch k {
	case dag.KindRoot:
		return ColorRoot
	case dag.KindCategory:
		return ColorCategory
	}
	switch s {
	case dag.StatusCompleted:
		return ColorCompleted
	case dag.StatusInProgress:
		return ColorInProgress
	default:
		return ColorLocked
	}
}

// Decorate returns an annotated clone of g: positions from l, status and
// progress from completed, collapse flags from collapsed, and colors. It also
// returns the statuses and the visible subset. g is not modified.
//
// Decorate is the cheap part of a run; viewers call it again on every
// completion or collapse change without recomputing the layout.
func Decorate(g *dag.DAG, l layout.Layout, completed status.Set, collapsed visibility.CollapseState) (*dag.DAG, map[string]dag.Status, visibility.Result) {
	view := g.Clone()
	l.Apply(view)
	statuses := status.Apply(view, completed)
	paint(view)
	visibility.Apply(view, collapsed)
	return view, statuses, visibility.Compute(view, collapsed)
}

func paint(g *dag.DAG) {
	for _, n := range g.Nodes() {
		n.Color = NodeColor(n.Kind, n.Status)
	}
}

// Snapshot assembles the serializable view of a decorated graph. The
// embedded graph keeps every edge, so it can be sent back for status or
// visibility; the edges left after collapsing are listed separately.
func Snapshot(view *dag.DAG, l layout.Layout, vis visibility.Result) *graph.Snapshot {
	gr := graph.FromDAG(view)
	for i := range gr.Nodes {
		n := &gr.Nodes[i]
		n.Visible = vis.IsVisible(n.ID)
		if dn, ok := view.Node(n.ID); ok {
			n.Actionable = status.Actionable(dn, dn.Status)
		}
	}
	visible := make([]graph.Edge, 0, len(vis.Edges))
	for _, e := range vis.Edges {
		visible = append(visible, graph.Edge{From: e.From, To: e.To, Synthetic: e.Synthetic})
	}

	return &graph.Snapshot{
		Graph:        gr,
		VisibleEdges: visible,
		Bounds:     l.Bounds,
		Crossings:  l.Crossings,
		VisitOrder: view.VisitOrder(),
	}
}

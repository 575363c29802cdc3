package status

import (
	"fmt"
	"math"

	"github.com/cariskill/roadmap/pkg/dag"
)

// Set is the read-only set of node IDs the learner has completed.
type Set map[string]struct{}

// NewSet builds a completion set.
func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is completed.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Of returns the status of one node.
//
// A node is Completed when it is in the set. Otherwise it is Locked when at
// least one of its prerequisites is not completed, and InProgress when all
// of them are (or it has none). A node without prerequisites is therefore
// never Locked.
func Of(g *dag.DAG, id string, completed Set) dag.Status {
	if completed.Has(id) {
		return dag.StatusCompleted
	}
	for _, p := range g.Prerequisites(id) {
		if !completed.Has(p) {
			return dag.StatusLocked
		}
	}
	return dag.StatusInProgress
}

// Compute returns the status of every node in g. IDs in completed that are
// not in g are ignored.
func Compute(g *dag.DAG, completed Set) map[string]dag.Status {
	out := make(map[string]dag.Status, g.NodeCount())
	for _, id := range g.NodeIDs() {
		out[id] = Of(g, id, completed)
	}
	return out
}

// Progress returns, for every node with children, the completed share of
// its direct children formatted as a whole percentage ("50%").
func Progress(g *dag.DAG, completed Set) map[string]string {
	out := make(map[string]string)
	for _, id := range g.NodeIDs() {
		children := g.Children(id)
		if len(children) == 0 {
			continue
		}
		done := 0
		for _, c := range children {
			if completed.Has(c) {
				done++
			}
		}
		pct := math.Round(float64(done) * 100 / float64(len(children)))
		out[id] = fmt.Sprintf("%d%%", int(pct))
	}
	return out
}

// Actionable reports whether a click on n should navigate: the node must not
// be Locked and must not be one of the synthetic roots.
func Actionable(n *dag.Node, s dag.Status) bool {
	return s != dag.StatusLocked && !n.Kind.IsSynthetic()
}

// Counts tallies statuses over the non-synthetic nodes of a graph.
type Counts struct {
	Completed  int
	InProgress int
	Locked     int
}

// Total returns the number of counted nodes.
func (c Counts) Total() int { return c.Completed + c.InProgress + c.Locked }

// Tally counts the statuses of every record-backed node in g.
func Tally(g *dag.DAG, statuses map[string]dag.Status) Counts {
	var c Counts
	for _, n := range g.Nodes() {
		if n.Kind.IsSynthetic() {
			continue
		}
		switch statuses[n.ID] {
		case dag.StatusCompleted:
			c.Completed++
		case dag.StatusInProgress:
			c.InProgress++
		default:
			c.Locked++
		}
	}
	return c
}

// Apply computes statuses and progress and writes them onto the nodes of g.
func Apply(g *dag.DAG, completed Set) map[string]dag.Status {
	statuses := Compute(g, completed)
	progress := Progress(g, completed)
	for _, n := range g.Nodes() {
		n.Status = statuses[n.ID]
		n.Percentage = progress[n.ID]
	}
	return statuses
}

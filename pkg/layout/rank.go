package layout

import (
	"cmp"
	"maps"
	"slices"

	"github.com/cariskill/roadmap/pkg/dag"
)

// AssignRanks groups node IDs by depth. Within a rank, nodes appear in
// breadth-first visit order; nodes the depth resolver never visited follow
// in insertion order.
func AssignRanks(g *dag.DAG) map[int][]string {
	ranks := make(map[int][]string)
	placed := make(map[string]bool, g.NodeCount())

	add := func(id string) {
		n, ok := g.Node(id)
		if !ok || placed[id] {
			return
		}
		placed[id] = true
		ranks[n.Depth] = append(ranks[n.Depth], id)
	}
	for _, id := range g.VisitOrder() {
		add(id)
	}
	for _, id := range g.NodeIDs() {
		add(id)
	}
	return ranks
}

// OrderRanks reorders each rank to reduce edge crossings.
//
// Sweeps alternate direction: even sweeps go up the depths and sort each
// rank by the mean position of its parents in the rank below it, odd sweeps
// go back down and use children instead. A node with no neighbour in the
// reference rank keeps its current position as its barycenter, and ties keep
// the current relative order, so the result is fully determined by the
// input ordering. The ordering with the fewest crossings seen (the input
// included) is returned; the input map is not modified.
func OrderRanks(g *dag.DAG, ranks map[int][]string, sweeps int) map[int][]string {
	order := cloneRanks(ranks)
	levels := slices.Sorted(maps.Keys(order))
	if len(levels) < 2 {
		return order
	}

	best, bestCrossings := cloneRanks(order), dag.CountCrossings(g, order)
	for i := range sweeps {
		if bestCrossings == 0 {
			break
		}
		if i%2 == 0 {
			for _, r := range levels[1:] {
				sortByBarycenter(order[r], order[r-1], g.Parents)
			}
		} else {
			for j := len(levels) - 2; j >= 0; j-- {
				r := levels[j]
				sortByBarycenter(order[r], order[r+1], g.Children)
			}
		}
		if c := dag.CountCrossings(g, order); c < bestCrossings {
			best, bestCrossings = cloneRanks(order), c
		}
	}
	return best
}

func sortByBarycenter(rank, ref []string, neighbours func(string) []string) {
	refPos := dag.PosMap(ref)
	center := make(map[string]float64, len(rank))
	for i, id := range rank {
		sum, count := 0.0, 0
		for _, nb := range neighbours(id) {
			if p, ok := refPos[nb]; ok {
				sum += float64(p)
				count++
			}
		}
		if count == 0 {
			center[id] = float64(i)
			continue
		}
		center[id] = sum / float64(count)
	}
	slices.SortStableFunc(rank, func(a, b string) int {
		return cmp.Compare(center[a], center[b])
	})
}

func cloneRanks(ranks map[int][]string) map[int][]string {
	out := make(map[int][]string, len(ranks))
	for r, ids := range ranks {
		out[r] = slices.Clone(ids)
	}
	return out
}

package dag

import (
	"maps"
	"slices"
)

// CountCrossings returns the number of edge crossings for a ranked ordering.
// ranks maps a depth to the node IDs at that depth, left to right. Only
// edges between consecutive depths are counted; a rank missing from the map
// is treated as empty.
//
//	ranks := map[int][]string{
//	    1: {"topic"},
//	    2: {"a", "b"},
//	    3: {"b1", "a1"}, // a→a1 and b→b1 cross once
//	}
//	dag.CountCrossings(g, ranks) // 1
func CountCrossings(g *DAG, ranks map[int][]string) int {
	levels := slices.Sorted(maps.Keys(ranks))
	crossings := 0
	for _, r := range levels {
		crossings += CountLayerCrossings(g, ranks[r], ranks[r+1])
	}
	return crossings
}

// CountLayerCrossings counts crossings between edges running from upper to
// lower. Two edges (u1,v1) and (u2,v2) cross when pos(u1) < pos(u2) and
// pos(v1) > pos(v2), so the count equals the number of inversions in the
// target positions once edges are sorted by source. Inversions are counted
// with a Fenwick tree in O(E log V).
func CountLayerCrossings(g *DAG, upper, lower []string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := PosMap(lower)

	type span struct{ from, to int }
	spans := make([]span, 0, len(upper))
	for i, id := range upper {
		for _, child := range g.Children(id) {
			if pos, ok := lowerPos[child]; ok {
				spans = append(spans, span{i, pos})
			}
		}
	}
	if len(spans) < 2 {
		return 0
	}

	slices.SortFunc(spans, func(a, b span) int {
		if a.from != b.from {
			return a.from - b.from
		}
		return a.to - b.to
	})

	tree := make([]int, len(lower)+1)
	crossings, seen := 0, 0
	for _, s := range spans {
		atMost := 0
		for q := s.to + 1; q > 0; q -= q & (-q) {
			atMost += tree[q]
		}
		crossings += seen - atMost

		seen++
		for i := s.to + 1; i < len(tree); i += i & (-i) {
			tree[i]++
		}
	}
	return crossings
}

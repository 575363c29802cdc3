package transform

import (
	"slices"
	"testing"
)

func TestResolveDepth(t *testing.T) {
	tests := []struct {
		name            string
		root            string
		ids             []string
		edges           [][2]string
		wantDepths      map[string]int
		wantOrder       []string
		wantUnreachable []string
	}{
		{
			name:       "Chain",
			root:       "r",
			ids:        []string{"r", "a", "b"},
			edges:      [][2]string{{"r", "a"}, {"a", "b"}},
			wantDepths: map[string]int{"r": 0, "a": 1, "b": 2},
			wantOrder:  []string{"r", "a", "b"},
		},
		{
			name: "MinParentDepthWins",
			root: "r",
			ids:  []string{"r", "a", "b", "c"},
			// c is reachable at depth 3 via a→b→c and depth 2 via a→c
			edges:      [][2]string{{"r", "a"}, {"a", "b"}, {"b", "c"}, {"a", "c"}},
			wantDepths: map[string]int{"r": 0, "a": 1, "b": 2, "c": 2},
			wantOrder:  []string{"r", "a", "b", "c"},
		},
		{
			name:       "CycleTerminates",
			root:       "r",
			ids:        []string{"r", "a", "b"},
			edges:      [][2]string{{"r", "a"}, {"a", "b"}, {"b", "a"}},
			wantDepths: map[string]int{"r": 0, "a": 1, "b": 2},
			wantOrder:  []string{"r", "a", "b"},
		},
		{
			name:            "Orphan",
			root:            "r",
			ids:             []string{"r", "a", "lost"},
			edges:           [][2]string{{"r", "a"}},
			wantDepths:      map[string]int{"r": 0, "a": 1},
			wantOrder:       []string{"r", "a"},
			wantUnreachable: []string{"lost"},
		},
		{
			name:            "NoRoot",
			root:            "",
			ids:             []string{"a", "b"},
			edges:           [][2]string{{"a", "b"}},
			wantDepths:      map[string]int{},
			wantUnreachable: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(tt.root, tt.ids, tt.edges)
			res := ResolveDepth(g)

			if len(res.Depths) != len(tt.wantDepths) {
				t.Errorf("Depths = %v, want %v", res.Depths, tt.wantDepths)
			}
			for id, want := range tt.wantDepths {
				if got := res.Depths[id]; got != want {
					t.Errorf("Depths[%s] = %d, want %d", id, got, want)
				}
				if n, _ := g.Node(id); n.Depth != want {
					t.Errorf("node %s Depth = %d, want %d (not merged back)", id, n.Depth, want)
				}
			}
			if !slices.Equal(res.VisitOrder, tt.wantOrder) {
				t.Errorf("VisitOrder = %v, want %v", res.VisitOrder, tt.wantOrder)
			}
			if !slices.Equal(g.VisitOrder(), tt.wantOrder) {
				t.Errorf("g.VisitOrder() = %v, want %v", g.VisitOrder(), tt.wantOrder)
			}
			if !slices.Equal(res.Unreachable, tt.wantUnreachable) {
				t.Errorf("Unreachable = %v, want %v", res.Unreachable, tt.wantUnreachable)
			}
		})
	}
}

func TestPruneUnreachable(t *testing.T) {
	g := buildGraph("r", []string{"r", "a", "x", "y"}, [][2]string{{"r", "a"}, {"x", "y"}})
	res := ResolveDepth(g)

	removed := PruneUnreachable(g, res.Unreachable)

	if len(removed) != 2 || removed[0].ID != "x" || removed[1].ID != "y" {
		t.Errorf("PruneUnreachable() = %v, want [x y]", removed)
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("after prune nodes=%d edges=%d, want 2 and 1", g.NodeCount(), g.EdgeCount())
	}
}

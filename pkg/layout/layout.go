package layout

import (
	"maps"
	"math"
	"slices"

	"github.com/cariskill/roadmap/pkg/dag"
)

// Bounds is the rectangle a viewer may pan within.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

// Width is the horizontal extent of the box.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height is the vertical extent of the box.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Layout is the result of [Compute].
type Layout struct {
	Positions map[string]dag.Position
	// Ranks holds the final left-to-right order of every rank.
	Ranks     map[int][]string
	Bounds    Bounds
	Crossings int
}

// Compute lays out g bottom to top: the root rank sits at the bottom (the
// largest Y, since Y grows downward) and the deepest rank at the top.
//
// Ranks are spaced cfg.RankGap apart. Within a rank, nodes are centered
// on X = 0 and two neighbours a and b are placed
//
//	(size(a) + size(b)) / 2 + cfg.NodeGap + 2*cfg.Jitter
//
// apart, so their distance stays at least (size(a)+size(b))/2 + NodeGap
// after each receives its [Jitter]. Nothing in the computation is random:
// the same graph always yields bit-identical positions.
//
// For an empty graph the result has no positions and bounds of
// cfg.DefaultWidth x cfg.DefaultHeight centered on the origin.
func Compute(g *dag.DAG, cfg Config) Layout {
	if g.NodeCount() == 0 {
		return Layout{
			Positions: map[string]dag.Position{},
			Ranks:     map[int][]string{},
			Bounds: Bounds{
				MinX: -cfg.DefaultWidth / 2,
				MinY: -cfg.DefaultHeight / 2,
				MaxX: cfg.DefaultWidth / 2,
				MaxY: cfg.DefaultHeight / 2,
			},
		}
	}

	ranks := OrderRanks(g, AssignRanks(g), cfg.Sweeps)
	levels := slices.Sorted(maps.Keys(ranks))
	top := levels[len(levels)-1]

	positions := make(map[string]dag.Position, g.NodeCount())
	for _, r := range levels {
		y := float64(top-r) * cfg.RankGap
		for id, x := range spreadRank(g, ranks[r], cfg) {
			dx, dy := Jitter(id, cfg.Jitter)
			positions[id] = dag.Position{X: x + dx, Y: y + dy}
		}
	}

	return Layout{
		Positions: positions,
		Ranks:     ranks,
		Bounds:    bounds(positions, cfg.Margin),
		Crossings: dag.CountCrossings(g, ranks),
	}
}

// Apply writes the positions onto the nodes of g.
func (l Layout) Apply(g *dag.DAG) {
	for id, p := range l.Positions {
		if n, ok := g.Node(id); ok {
			n.Position = p
		}
	}
}

func spreadRank(g *dag.DAG, ids []string, cfg Config) map[string]float64 {
	xs := make(map[string]float64, len(ids))
	x, prev := 0.0, 0.0
	for i, id := range ids {
		size := 0.0
		if n, ok := g.Node(id); ok {
			size = cfg.Sizes.Of(n.Kind)
		}
		if i > 0 {
			x += (prev+size)/2 + cfg.NodeGap + 2*cfg.Jitter
		}
		xs[id] = x
		prev = size
	}
	shift := x / 2
	for id := range xs {
		xs[id] -= shift
	}
	return xs
}

func bounds(positions map[string]dag.Position, margin float64) Bounds {
	b := Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, p := range positions {
		b.MinX = min(b.MinX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxX = max(b.MaxX, p.X)
		b.MaxY = max(b.MaxY, p.Y)
	}
	b.MinX -= margin
	b.MinY -= margin
	b.MaxX += margin
	b.MaxY += margin
	return b
}

package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [DAG.AddNode] when the node ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [DAG.AddNode] when a node with the
	// same ID already exists in the graph.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [DAG.AddEdge] when the From node
	// does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DAG.AddEdge] when the To node
	// does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrDuplicateEdge is returned by [DAG.AddEdge] when the same From→To
	// pair was already added. The graph is left unchanged.
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// Metadata stores arbitrary key-value pairs attached to nodes.
type Metadata map[string]any

// Position is a 2D coordinate in layout space. Y grows downward, so the
// root rank has the largest Y in a bottom-to-top layout.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a unit of the roadmap graph.
//
// ID is unique within a graph. Depth is derived by the depth resolver; only
// the synthetic root carries an authored depth (0). Status, Percentage,
// Collapsible, Collapsed and Position are view annotations filled in by the
// pipeline on a cloned graph and are zero on a freshly built one.
type Node struct {
	ID          string
	Label       string
	Kind        Kind
	Depth       int
	Color       string
	Status      Status
	Percentage  string
	Collapsible bool
	Collapsed   bool
	Position    Position

	Description string
	Rationale   string
	Meta        Metadata
}

// Edge is a directed relationship: To depends on (is unlocked by) From.
//
// Synthetic edges are the structural root→topic and topic→module links the
// builder adds itself. They shape depth and layout but never count as
// prerequisites.
type Edge struct {
	From      string
	To        string
	Synthetic bool
}

type edgeKey struct{ from, to string }

// DAG is the in-memory roadmap graph. Nodes keep insertion order so every
// traversal over them is deterministic.
//
// The zero value is not usable - use New. DAG is not safe for concurrent use;
// the engine never shares one across goroutines, it clones instead.
type DAG struct {
	nodes    map[string]*Node
	order    []string
	edges    []Edge
	edgeSet  map[edgeKey]struct{}
	outgoing map[string][]string
	incoming map[string][]string
	prereqs  map[string][]string

	root       string
	visitOrder []string
}

// New creates an empty graph.
func New() *DAG {
	return &DAG{
		nodes:    make(map[string]*Node),
		edgeSet:  make(map[edgeKey]struct{}),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
		prereqs:  make(map[string][]string),
	}
}

// AddNode adds a node. Returns ErrInvalidNodeID for an empty ID and
// ErrDuplicateNodeID if the ID is taken.
func (d *DAG) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := d.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	if n.Meta == nil {
		n.Meta = Metadata{}
	}
	d.nodes[n.ID] = &n
	d.order = append(d.order, n.ID)
	return nil
}

// AddEdge adds a directed edge between two existing nodes. Non-synthetic
// edges are also indexed in the prerequisite map (To → [From...]).
func (d *DAG) AddEdge(e Edge) error {
	if _, ok := d.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := d.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	key := edgeKey{e.From, e.To}
	if _, dup := d.edgeSet[key]; dup {
		return ErrDuplicateEdge
	}
	d.edgeSet[key] = struct{}{}
	d.edges = append(d.edges, e)
	d.outgoing[e.From] = append(d.outgoing[e.From], e.To)
	d.incoming[e.To] = append(d.incoming[e.To], e.From)
	if !e.Synthetic {
		d.prereqs[e.To] = append(d.prereqs[e.To], e.From)
	}
	return nil
}

// RemoveNode deletes a node and every edge touching it. Missing IDs are
// ignored.
func (d *DAG) RemoveNode(id string) {
	if _, ok := d.nodes[id]; !ok {
		return
	}
	delete(d.nodes, id)
	d.order = slices.DeleteFunc(d.order, func(s string) bool { return s == id })
	d.visitOrder = slices.DeleteFunc(d.visitOrder, func(s string) bool { return s == id })

	touches := func(e Edge) bool { return e.From == id || e.To == id }
	for _, e := range d.edges {
		if touches(e) {
			delete(d.edgeSet, edgeKey{e.From, e.To})
		}
	}
	d.edges = slices.DeleteFunc(d.edges, touches)

	drop := func(s string) bool { return s == id }
	for _, idx := range []map[string][]string{d.outgoing, d.incoming, d.prereqs} {
		delete(idx, id)
		for k, v := range idx {
			idx[k] = slices.DeleteFunc(v, drop)
		}
	}
	if d.root == id {
		d.root = ""
	}
}

// SetRoot marks id as the traversal origin.
func (d *DAG) SetRoot(id string) { d.root = id }

// Root returns the traversal origin, or "" if none was set.
func (d *DAG) Root() string { return d.root }

// SetDepths writes resolved depths back onto nodes. Nodes absent from the
// map keep their current depth.
func (d *DAG) SetDepths(depths map[string]int) {
	for id, depth := range depths {
		if n, ok := d.nodes[id]; ok {
			n.Depth = depth
		}
	}
}

// SetVisitOrder records the breadth-first discovery order.
func (d *DAG) SetVisitOrder(ids []string) { d.visitOrder = slices.Clone(ids) }

// VisitOrder returns the breadth-first discovery order recorded by the depth
// resolver. Presentation layers use it to stagger reveal timing.
func (d *DAG) VisitOrder() []string { return slices.Clone(d.visitOrder) }

// Nodes returns all nodes in insertion order. The pointers refer to the
// graph's own nodes.
func (d *DAG) Nodes() []*Node {
	nodes := make([]*Node, 0, len(d.order))
	for _, id := range d.order {
		nodes = append(nodes, d.nodes[id])
	}
	return nodes
}

// NodeIDs returns all node IDs in insertion order.
func (d *DAG) NodeIDs() []string { return slices.Clone(d.order) }

// Edges returns a copy of all edges in insertion order.
func (d *DAG) Edges() []Edge { return slices.Clone(d.edges) }

// NodeCount returns the number of nodes.
func (d *DAG) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges.
func (d *DAG) EdgeCount() int { return len(d.edges) }

// Node returns the node with the given ID.
func (d *DAG) Node(id string) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Children returns the IDs this node has edges to. Read-only view.
func (d *DAG) Children(id string) []string { return d.outgoing[id] }

// Parents returns the IDs with edges into this node. Read-only view.
func (d *DAG) Parents(id string) []string { return d.incoming[id] }

// Prerequisites returns the IDs that must be completed before id unlocks.
// Synthetic structural edges are not included. Read-only view.
func (d *DAG) Prerequisites(id string) []string { return d.prereqs[id] }

// PrerequisiteMap returns a copy of the target → sources index.
func (d *DAG) PrerequisiteMap() map[string][]string {
	m := make(map[string][]string, len(d.prereqs))
	for k, v := range d.prereqs {
		if len(v) > 0 {
			m[k] = slices.Clone(v)
		}
	}
	return m
}

// HasEdge reports whether the edge from→to exists.
func (d *DAG) HasEdge(from, to string) bool {
	_, ok := d.edgeSet[edgeKey{from, to}]
	return ok
}

// NodesAtDepth returns the nodes at the given depth in insertion order.
func (d *DAG) NodesAtDepth(depth int) []*Node {
	var out []*Node
	for _, id := range d.order {
		if n := d.nodes[id]; n.Depth == depth {
			out = append(out, n)
		}
	}
	return out
}

// Depths returns the distinct depths present, ascending.
func (d *DAG) Depths() []int {
	seen := make(map[int]struct{})
	for _, n := range d.nodes {
		seen[n.Depth] = struct{}{}
	}
	return slices.Sorted(maps.Keys(seen))
}

// MaxDepth returns the largest node depth, or 0 for an empty graph.
func (d *DAG) MaxDepth() int {
	m := 0
	for _, n := range d.nodes {
		m = max(m, n.Depth)
	}
	return m
}

// Clone returns a deep copy. Annotating the clone never affects d.
func (d *DAG) Clone() *DAG {
	c := New()
	for _, id := range d.order {
		n := *d.nodes[id]
		n.Meta = maps.Clone(n.Meta)
		c.nodes[id] = &n
	}
	c.order = slices.Clone(d.order)
	c.edges = slices.Clone(d.edges)
	c.edgeSet = maps.Clone(d.edgeSet)
	for _, pair := range []struct{ dst, src map[string][]string }{
		{c.outgoing, d.outgoing}, {c.incoming, d.incoming}, {c.prereqs, d.prereqs},
	} {
		for k, v := range pair.src {
			pair.dst[k] = slices.Clone(v)
		}
	}
	c.root = d.root
	c.visitOrder = slices.Clone(d.visitOrder)
	return c
}

// PosMap maps each ID to its index in ids.
func PosMap(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

// NodeIDs extracts the ID from each node.
func NodeIDs(nodes []*Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

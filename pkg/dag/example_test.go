package dag_test

import (
	"fmt"

	"github.com/cariskill/roadmap/pkg/dag"
)

func ExampleDAG_basic() {
	// Two modules where "basics" unlocks "advanced"
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "basics", Kind: dag.KindTopic})
	_ = g.AddNode(dag.Node{ID: "advanced", Kind: dag.KindTopic})
	_ = g.AddEdge(dag.Edge{From: "basics", To: "advanced"})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Prerequisites:", g.Prerequisites("advanced"))
	// Output:
	// Nodes: 2
	// Edges: 1
	// Prerequisites: [basics]
}

func ExampleDAG_synthetic() {
	// Structural links added by the builder are not prerequisites
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "subject", Kind: dag.KindCategory})
	_ = g.AddNode(dag.Node{ID: "intro", Kind: dag.KindTopic})
	_ = g.AddEdge(dag.Edge{From: "subject", To: "intro", Synthetic: true})

	fmt.Println("Parents:", g.Parents("intro"))
	fmt.Println("Prerequisites:", len(g.Prerequisites("intro")))
	// Output:
	// Parents: [subject]
	// Prerequisites: 0
}

package clock

import (
	"fmt"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/multi"
	"gonum.org/v1/gonum/graph/topo"
)

// graphNode adapts a clock node to gonum's graph.Node.
type graphNode struct {
	node
	id int64
}

func (n graphNode) ID() int64 {
	return n.id
}

// sortTopologically orders t.nodes so that every node follows all of the
// nodes it can select. Ties are broken by construction order, so the result
// is the same for every tree.
func (t *Tree) sortTopologically() error {
	g := multi.NewDirectedGraph()
	ids := make(map[node]graphNode, len(t.nodes))
	for i, n := range t.nodes {
		gn := graphNode{node: n, id: int64(i)}
		ids[n] = gn
		g.AddNode(gn)
	}

	for _, n := range t.nodes {
		for _, in := range n.inputs() {
			g.SetLine(g.NewLine(ids[in], ids[n]))
		}
	}

	sorted, err := topo.SortStabilized(g, func(nodes []graph.Node) {
		slices.SortFunc(nodes, func(a, b graph.Node) bool {
			return a.ID() < b.ID()
		})
	})
	if err != nil {
		return fmt.Errorf("clock graph has a cycle: %w", err)
	}

	ordered := make([]node, len(sorted))
	for i, gn := range sorted {
		ordered[i] = gn.(graphNode).node
	}
	t.nodes = ordered
	return nil
}

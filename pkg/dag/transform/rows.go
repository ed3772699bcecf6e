package transform

import "github.com/matzehuels/clustergraph/pkg/dag"

// AssignRows puts each node one row below its deepest predecessor, so nodes
// without predecessors land on row 0. Rows are rebuilt in insertion order.
// Nodes on a cycle keep row 0; call [BreakCycles] first.
func AssignRows(g *dag.Graph) {
	nodes := g.Nodes()
	pending := make(map[string]int, len(nodes))
	row := make(map[string]int, len(nodes))

	var ready []string
	for _, n := range nodes {
		pending[n.ID] = len(g.Pred(n.ID))
		if pending[n.ID] == 0 {
			ready = append(ready, n.ID)
		}
	}
	for i := 0; i < len(ready); i++ {
		id := ready[i]
		for _, s := range g.Succ(id) {
			row[s] = max(row[s], row[id]+1)
			if pending[s]--; pending[s] == 0 {
				ready = append(ready, s)
			}
		}
	}

	for _, n := range nodes {
		if _, ok := row[n.ID]; !ok {
			row[n.ID] = 0
		}
	}
	g.Assign(row)
}

package transform

import "github.com/matzehuels/clustergraph/pkg/dag"

const (
	unseen = iota
	open
	closed
)

// BreakCycles flips every edge that closes a cycle in a depth-first walk and
// returns how many it flipped. The walk starts at nodes without
// predecessors, then at any node still unseen, both in insertion order.
func BreakCycles(g *dag.Graph) int {
	state := make(map[string]int, g.Len())
	var back [][2]string

	type frame struct {
		id   string
		next int
	}
	walk := func(root string) {
		state[root] = open
		stack := []frame{{id: root}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			succ := g.Succ(top.id)
			if top.next == len(succ) {
				state[top.id] = closed
				stack = stack[:len(stack)-1]
				continue
			}
			child := succ[top.next]
			top.next++
			switch state[child] {
			case unseen:
				state[child] = open
				stack = append(stack, frame{id: child})
			case open:
				back = append(back, [2]string{top.id, child})
			}
		}
	}

	nodes := g.Nodes()
	for _, n := range nodes {
		if len(g.Pred(n.ID)) == 0 && state[n.ID] == unseen {
			walk(n.ID)
		}
	}
	for _, n := range nodes {
		if state[n.ID] == unseen {
			walk(n.ID)
		}
	}

	for _, e := range back {
		g.Flip(e[0], e[1])
	}
	return len(back)
}

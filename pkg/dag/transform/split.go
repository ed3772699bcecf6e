package transform

import (
	"fmt"

	"github.com/matzehuels/clustergraph/pkg/dag"
)

// Split replaces each edge spanning several rows with a chain through one
// virtual node per skipped row and returns the number of virtual nodes
// added. A virtual node on row r below origin u is named "u~r"; a ".n"
// suffix is added when that id is taken. Each segment keeps the Flipped
// flag of the edge it replaces.
func Split(g *dag.Graph) int {
	taken := make(map[string]bool, g.Len())
	for _, n := range g.Nodes() {
		taken[n.ID] = true
	}
	name := func(origin string, row int) string {
		id := fmt.Sprintf("%s~%d", origin, row)
		for i := 1; taken[id]; i++ {
			id = fmt.Sprintf("%s~%d.%d", origin, row, i)
		}
		taken[id] = true
		return id
	}

	added := 0
	for _, e := range g.Edges() {
		from, _ := g.Node(e.From)
		to, _ := g.Node(e.To)
		if to.Row-from.Row < 2 {
			continue
		}
		origin := from.ID
		if from.Virtual {
			origin = from.Origin
		}

		g.Remove(e.From, e.To)
		prev := from.ID
		for r := from.Row + 1; r < to.Row; r++ {
			id := name(origin, r)
			_ = g.AddNode(dag.Node{ID: id, Row: r, Virtual: true, Origin: origin})
			_ = g.Connect(dag.Edge{From: prev, To: id, Flipped: e.Flipped})
			prev = id
			added++
		}
		_ = g.Connect(dag.Edge{From: prev, To: to.ID, Flipped: e.Flipped})
	}
	return added
}

// Stats reports what [Rank] changed.
type Stats struct {
	Flipped int
	Virtual int
}

// Rank runs [BreakCycles], [AssignRows] and [Split] on g, after which
// [dag.Graph.Check] succeeds.
func Rank(g *dag.Graph) Stats {
	flipped := BreakCycles(g)
	AssignRows(g)
	return Stats{Flipped: flipped, Virtual: Split(g)}
}

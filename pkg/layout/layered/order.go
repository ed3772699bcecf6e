package layered

import (
	"slices"

	"github.com/matzehuels/clustergraph/pkg/dag"
)

// order reduces crossings by alternating barycenter sweeps. After each sweep
// adjacent nodes are transposed while that helps. The ordering with the
// fewest crossings wins; the initial insertion order counts as a candidate.
func order(g *dag.Graph, sweeps int) {
	rows := g.Rows()
	if rows < 2 {
		return
	}

	best := g.Orders()
	fewest := dag.Crossings(g, best)

	for i := 0; i < sweeps && fewest > 0; i++ {
		if i%2 == 0 {
			for r := 1; r < rows; r++ {
				sortByBarycenter(g, r, r-1, true)
			}
		} else {
			for r := rows - 2; r >= 0; r-- {
				sortByBarycenter(g, r, r+1, false)
			}
		}
		transpose(g)

		cur := g.Orders()
		if c := dag.Crossings(g, cur); c < fewest {
			best, fewest = cur, c
		}
	}

	for r, ids := range best {
		g.SetOrder(r, ids)
	}
}

// sortByBarycenter reorders row by the mean position of each node's
// neighbours in the adjacent row. Nodes without neighbours keep their index
// as barycenter. The sort is stable.
func sortByBarycenter(g *dag.Graph, row, adj int, up bool) {
	adjPos := dag.Index(g.Order(adj))
	ids := g.Order(row)

	bary := make(map[string]float64, len(ids))
	for i, id := range ids {
		nbrs := g.Succ(id)
		if up {
			nbrs = g.Pred(id)
		}
		sum, n := 0.0, 0
		for _, nb := range nbrs {
			if p, ok := adjPos[nb]; ok {
				sum += float64(p)
				n++
			}
		}
		if n == 0 {
			bary[id] = float64(i)
			continue
		}
		bary[id] = sum / float64(n)
	}

	slices.SortStableFunc(ids, func(a, b string) int {
		switch {
		case bary[a] < bary[b]:
			return -1
		case bary[a] > bary[b]:
			return 1
		}
		return 0
	})
	g.SetOrder(row, ids)
}

// transpose swaps adjacent nodes when the swap strictly lowers crossings
// with both neighbouring rows.
func transpose(g *dag.Graph) {
	const maxPasses = 4
	for pass := 0; pass < maxPasses; pass++ {
		improved := false
		for r := 0; r < g.Rows(); r++ {
			ids := g.Order(r)
			if len(ids) < 2 {
				continue
			}
			above := dag.Index(g.Order(r - 1))
			below := dag.Index(g.Order(r + 1))
			changed := false
			for i := 0; i+1 < len(ids); i++ {
				u, v := ids[i], ids[i+1]
				keep := dag.PairCrossings(g, u, v, above, true) +
					dag.PairCrossings(g, u, v, below, false)
				swap := dag.PairCrossings(g, v, u, above, true) +
					dag.PairCrossings(g, v, u, below, false)
				if swap < keep {
					ids[i], ids[i+1] = v, u
					changed = true
				}
			}
			if changed {
				g.SetOrder(r, ids)
				improved = true
			}
		}
		if !improved {
			return
		}
	}
}

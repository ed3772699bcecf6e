package layered

import (
	"math"
	"slices"

	"github.com/matzehuels/clustergraph/pkg/dag"
)

const alignPasses = 3

// coordinates assigns centres to every node of a ranked, ordered graph.
// Ranks are stacked top-down rankSep apart. Within a rank nodes keep their
// order and are at least nodeSep apart edge to edge. The drawing is shifted
// so its extent starts at (mx, my); the returned size includes margins on
// both sides.
func coordinates(g *dag.Graph, nodeSep, rankSep, mx, my float64) (xs, ys map[string]float64, w, h float64) {
	rows := g.Rows()
	xs = make(map[string]float64, g.Len())
	ys = make(map[string]float64, g.Len())
	if g.Len() == 0 {
		return xs, ys, 2 * mx, 2 * my
	}

	top := my
	for r := 0; r < rows; r++ {
		rowH := 0.0
		for _, n := range g.Row(r) {
			rowH = math.Max(rowH, n.Height)
		}
		for _, n := range g.Row(r) {
			ys[n.ID] = top + rowH/2
		}
		top += rowH
		if r < rows-1 {
			top += rankSep
		}
	}
	h = top + my

	for r := 0; r < rows; r++ {
		cursor := 0.0
		for _, n := range g.Row(r) {
			xs[n.ID] = cursor + n.Width/2
			cursor += n.Width + nodeSep
		}
	}

	for pass := 0; pass < alignPasses; pass++ {
		for r := 1; r < rows; r++ {
			align(g, r, xs, nodeSep, true)
		}
		for r := rows - 2; r >= 0; r-- {
			align(g, r, xs, nodeSep, false)
		}
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, n := range g.Nodes() {
		minX = math.Min(minX, xs[n.ID]-n.Width/2)
		maxX = math.Max(maxX, xs[n.ID]+n.Width/2)
	}
	shift := mx - minX
	for id := range xs {
		xs[id] += shift
	}
	w = maxX - minX + 2*mx
	return xs, ys, w, h
}

// align moves every node of row towards the median x of its neighbours in
// the adjacent row, then restores separation without reordering.
func align(g *dag.Graph, row int, xs map[string]float64, nodeSep float64, up bool) {
	nodes := g.Row(row)
	if len(nodes) == 0 {
		return
	}

	target := make([]float64, len(nodes))
	for i, n := range nodes {
		target[i] = xs[n.ID]
		nbrs := g.Succ(n.ID)
		if up {
			nbrs = g.Pred(n.ID)
		}
		if m, ok := median(nbrs, xs); ok {
			target[i] = m
		}
	}

	sep := func(i int) float64 { return nodes[i-1].Width/2 + nodeSep + nodes[i].Width/2 }

	right := slices.Clone(target)
	for i := 1; i < len(right); i++ {
		right[i] = math.Max(right[i], right[i-1]+sep(i))
	}
	left := slices.Clone(target)
	for i := len(left) - 2; i >= 0; i-- {
		left[i] = math.Min(left[i], left[i+1]-sep(i+1))
	}
	for i, n := range nodes {
		xs[n.ID] = (left[i] + right[i]) / 2
	}
}

func median(ids []string, xs map[string]float64) (float64, bool) {
	if len(ids) == 0 {
		return 0, false
	}
	vals := make([]float64, len(ids))
	for i, id := range ids {
		vals[i] = xs[id]
	}
	slices.Sort(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid], true
	}
	return (vals[mid-1] + vals[mid]) / 2, true
}

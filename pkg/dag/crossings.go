package dag

import "slices"

// Crossings counts edge crossings for the row orders in orders. Only edges
// between consecutive rows contribute.
func Crossings(g *Graph, orders [][]string) int {
	total := 0
	for r := 0; r+1 < len(orders); r++ {
		total += RowCrossings(g, orders[r], orders[r+1])
	}
	return total
}

// RowCrossings counts crossing edge pairs between an upper and a lower row.
//
// Edges are sorted by upper position and then lower position; two edges
// cross exactly when their lower positions are inverted in that sequence,
// so the count is the inversion count, taken by merge sort.
func RowCrossings(g *Graph, upper, lower []string) int {
	up, down := Index(upper), Index(lower)
	type span struct{ top, bottom int }
	var spans []span
	for _, id := range upper {
		for _, s := range g.Succ(id) {
			if b, ok := down[s]; ok {
				spans = append(spans, span{up[id], b})
			}
		}
	}
	slices.SortFunc(spans, func(a, b span) int {
		if a.top != b.top {
			return a.top - b.top
		}
		return a.bottom - b.bottom
	})
	seq := make([]int, len(spans))
	for i, s := range spans {
		seq[i] = s.bottom
	}
	return inversions(seq)
}

func inversions(a []int) int {
	return mergeCount(a, make([]int, len(a)))
}

// mergeCount sorts a in place and returns its strict inversion count.
func mergeCount(a, buf []int) int {
	n := len(a)
	if n < 2 {
		return 0
	}
	mid := n / 2
	count := mergeCount(a[:mid], buf[:mid]) + mergeCount(a[mid:], buf[mid:])

	i, j, k := 0, mid, 0
	for i < mid && j < n {
		if a[j] < a[i] {
			buf[k] = a[j]
			count += mid - i
			j++
		} else {
			buf[k] = a[i]
			i++
		}
		k++
	}
	k += copy(buf[k:], a[i:mid])
	copy(buf[k:], a[j:])
	copy(a, buf[:n])
	return count
}

// PairCrossings counts the crossings between edges of left and edges of
// right when left is placed before right in the same row. Neighbours are
// taken from the row above when up is set and from the row below
// otherwise; pos gives their positions.
func PairCrossings(g *Graph, left, right string, pos map[string]int, up bool) int {
	adj := g.Succ
	if up {
		adj = g.Pred
	}
	ls, rs := positions(adj(left), pos), positions(adj(right), pos)
	count := 0
	for _, a := range ls {
		for _, b := range rs {
			if a > b {
				count++
			}
		}
	}
	return count
}

func positions(ids []string, pos map[string]int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if p, ok := pos[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

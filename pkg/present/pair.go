package present

// PairReciprocal tags every edge whose reverse is also present. Both edges
// of a pair get [EdgeTypePair] and a shared pair id; the edge whose source
// sorts first carries its label above. Self loops are never paired. It
// returns the number of tagged edges.
func PairReciprocal(edges []Edge) int {
	type key struct{ from, to string }
	present := make(map[key]bool, len(edges))
	for _, e := range edges {
		present[key{e.Source, e.Target}] = true
	}
	paired := 0
	for i := range edges {
		e := &edges[i]
		if e.Source == e.Target || !present[key{e.Target, e.Source}] {
			continue
		}
		lo, hi, side := e.Source, e.Target, LabelAbove
		if hi < lo {
			lo, hi, side = hi, lo, LabelBelow
		}
		e.Type = EdgeTypePair
		e.Data = &EdgeData{PairID: lo + "<->" + hi, LabelSide: side}
		paired++
	}
	return paired
}

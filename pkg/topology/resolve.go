package topology

// NameIndex maps subcategory join names to subcategory ids. When two
// subcategories share a name the first one wins.
func (t *Topology) NameIndex() map[string]string {
	idx := make(map[string]string, len(t.Subcategories))
	for _, s := range t.Subcategories {
		name := s.JoinName()
		if name == "" {
			continue
		}
		if _, ok := idx[name]; !ok {
			idx[name] = s.ID
		}
	}
	return idx
}

// ResolveRelationships converts subcategory and cross-category relationship
// records into edges between subcategory ids. Records whose from or to name
// matches no subcategory are dropped and counted. Edge ids and labels are the
// record's own, so the kind prefix survives resolution.
//
// Subcategory relationships come first, followed by cross-category ones,
// each in input order.
func (t *Topology) ResolveRelationships() (edges []Edge, dropped int) {
	idx := t.NameIndex()
	for _, r := range t.Relationships() {
		from, okFrom := idx[r.From]
		to, okTo := idx[r.To]
		if !okFrom || !okTo {
			dropped++
			continue
		}
		edges = append(edges, Edge{ID: r.ID, Source: from, Target: to, Label: r.Label})
	}
	return edges, dropped
}

// UnresolvedRelationships returns the relationship records that
// [Topology.ResolveRelationships] drops.
func (t *Topology) UnresolvedRelationships() []Relationship {
	idx := t.NameIndex()
	var out []Relationship
	for _, r := range t.Relationships() {
		_, okFrom := idx[r.From]
		_, okTo := idx[r.To]
		if !okFrom || !okTo {
			out = append(out, r)
		}
	}
	return out
}

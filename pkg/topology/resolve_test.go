package topology

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNameIndex(t *testing.T) {
	topo := scenario()
	topo.Subcategories = append(topo.Subcategories,
		Subcategory{ID: "subA2", Name: "A", CategoryID: "cat1"},
		Subcategory{ID: "anon", CategoryID: "cat1"},
	)

	want := map[string]string{"A": "subA", "B": "subB"}
	if diff := cmp.Diff(want, topo.NameIndex()); diff != "" {
		t.Errorf("NameIndex() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveRelationships(t *testing.T) {
	topo := scenario()
	topo.SubcategoryRelationships = append(topo.SubcategoryRelationships,
		Relationship{ID: "c2_relationship_2", From: "Missing", To: "B", Label: "feeds"},
	)
	topo.CrossCategoryRelationships = []Relationship{
		{ID: "cross_c1_c2_rel_1", From: "B", To: "A", Label: "reports"},
		{ID: "cross_c1_c2_rel_2", From: "A", To: "Nowhere"},
	}

	edges, dropped := topo.ResolveRelationships()

	want := []Edge{
		{ID: "c2_relationship_1", Source: "subA", Target: "subB", Label: "uses"},
		{ID: "cross_c1_c2_rel_1", Source: "subB", Target: "subA", Label: "reports"},
	}
	if diff := cmp.Diff(want, edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}

	unresolved := topo.UnresolvedRelationships()
	if len(unresolved) != dropped {
		t.Errorf("UnresolvedRelationships() = %d records, want %d", len(unresolved), dropped)
	}
	for _, e := range edges {
		if e.Kind() == EdgeKindPlain {
			t.Errorf("edge %s lost its kind prefix", e.ID)
		}
	}
}

func TestResolveRelationshipsEmpty(t *testing.T) {
	topo := &Topology{}
	edges, dropped := topo.ResolveRelationships()
	if len(edges) != 0 || dropped != 0 {
		t.Errorf("ResolveRelationships() on empty = (%v, %d), want (nil, 0)", edges, dropped)
	}
}

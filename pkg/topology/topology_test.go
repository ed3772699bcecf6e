package topology

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	cgerrors "github.com/matzehuels/clustergraph/pkg/errors"
)

func scenario() *Topology {
	return &Topology{
		Nodes: []Node{{ID: "n1", Label: "Login"}, {ID: "n2"}, {ID: "n3"}, {ID: "n4"}},
		Edges: []Edge{{ID: "e1", Source: "n1", Target: "n2"}},
		Categories: []Category{
			{ID: "cat1", Label: "Cat1"},
		},
		Subcategories: []Subcategory{
			{ID: "subA", Label: "A", Name: "A", CategoryID: "cat1", NodeIDs: []string{"n1", "n2"}},
			{ID: "subB", Label: "B", CategoryID: "cat1", NodeIDs: []string{"n3"}},
		},
		SubcategoryRelationships: []Relationship{
			{ID: "c2_relationship_1", From: "A", To: "B", Label: "uses"},
		},
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		id   string
		want EdgeKind
	}{
		{"c2_relationship_1", EdgeKindSubcategory},
		{"c2_relationship", EdgeKindSubcategory},
		{"cross_c1_c2_rel_7", EdgeKindCrossCategory},
		{"e1", EdgeKindPlain},
		{"contains_n1", EdgeKindPlain},
		{"", EdgeKindPlain},
		{"C2_relationship_1", EdgeKindPlain},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := KindOf(tt.id); got != tt.want {
				t.Errorf("KindOf(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestNodeDisplayLabel(t *testing.T) {
	if got := (Node{ID: "n1", Label: "Login"}).DisplayLabel(); got != "Login" {
		t.Errorf("DisplayLabel() = %q, want Login", got)
	}
	if got := (Node{ID: "n1"}).DisplayLabel(); got != "n1" {
		t.Errorf("DisplayLabel() = %q, want n1", got)
	}
}

func TestMembershipAndStandalone(t *testing.T) {
	topo := scenario()

	want := map[string]string{"n1": "subA", "n2": "subA", "n3": "subB"}
	if diff := cmp.Diff(want, topo.Membership()); diff != "" {
		t.Errorf("Membership() mismatch (-want +got):\n%s", diff)
	}

	standalone := topo.Standalone()
	if len(standalone) != 1 || standalone[0].ID != "n4" {
		t.Errorf("Standalone() = %v, want [n4]", standalone)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Topology)
		code   cgerrors.Code
	}{
		{
			name:   "Valid",
			mutate: func(*Topology) {},
		},
		{
			name:   "EmptyNodeID",
			mutate: func(t *Topology) { t.Nodes[1].ID = "" },
			code:   cgerrors.ErrCodeInvalidID,
		},
		{
			name:   "NodeCollidesWithCategory",
			mutate: func(t *Topology) { t.Nodes = append(t.Nodes, Node{ID: "cat1"}) },
			code:   cgerrors.ErrCodeDuplicateID,
		},
		{
			name: "SubcategoryCollidesWithNode",
			mutate: func(t *Topology) {
				t.Subcategories = append(t.Subcategories, Subcategory{ID: "n4", CategoryID: "cat1"})
			},
			code: cgerrors.ErrCodeDuplicateID,
		},
		{
			name:   "UnknownCategory",
			mutate: func(t *Topology) { t.Subcategories[1].CategoryID = "nope" },
			code:   cgerrors.ErrCodeUnknownReference,
		},
		{
			name:   "CategoryIsNode",
			mutate: func(t *Topology) { t.Subcategories[1].CategoryID = "n4" },
			code:   cgerrors.ErrCodeUnknownReference,
		},
		{
			name:   "UnknownMember",
			mutate: func(t *Topology) { t.Subcategories[1].NodeIDs = append(t.Subcategories[1].NodeIDs, "ghost") },
			code:   cgerrors.ErrCodeUnknownReference,
		},
		{
			name:   "OverlappingMembership",
			mutate: func(t *Topology) { t.Subcategories[1].NodeIDs = append(t.Subcategories[1].NodeIDs, "n1") },
			code:   cgerrors.ErrCodeOverlappingMembership,
		},
		{
			name:   "DuplicateEdgeID",
			mutate: func(t *Topology) { t.Edges = append(t.Edges, Edge{ID: "e1", Source: "n2", Target: "n3"}) },
			code:   cgerrors.ErrCodeDuplicateID,
		},
		{
			name:   "EdgeUnknownTarget",
			mutate: func(t *Topology) { t.Edges[0].Target = "ghost" },
			code:   cgerrors.ErrCodeUnknownReference,
		},
		{
			name:   "EdgeToBox",
			mutate: func(t *Topology) { t.Edges = append(t.Edges, Edge{ID: "contains_1", Source: "cat1", Target: "subA"}) },
		},
		{
			name: "UnresolvedRelationshipIsNotAnError",
			mutate: func(t *Topology) {
				t.CrossCategoryRelationships = append(t.CrossCategoryRelationships, Relationship{ID: "cross_c1_c2_rel_1", From: "X", To: "Y"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topo := scenario()
			tt.mutate(topo)
			err := topo.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !cgerrors.Is(err, tt.code) {
				t.Fatalf("Validate() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateNil(t *testing.T) {
	var topo *Topology
	if err := topo.Validate(); !cgerrors.Is(err, cgerrors.ErrCodeInvalidInput) {
		t.Errorf("Validate() on nil = %v, want INVALID_INPUT", err)
	}
}

func TestClone(t *testing.T) {
	topo := scenario()
	clone := topo.Clone()
	if diff := cmp.Diff(topo, clone); diff != "" {
		t.Fatalf("Clone() mismatch (-orig +clone):\n%s", diff)
	}
	clone.Subcategories[0].NodeIDs[0] = "changed"
	if topo.Subcategories[0].NodeIDs[0] != "n1" {
		t.Error("Clone() shares member slices with the original")
	}
}

package topology

import (
	cgerrors "github.com/matzehuels/clustergraph/pkg/errors"
)

// Validate checks the structural contract the layout engine relies on:
//
//   - every id is well formed and unique across nodes, subcategories and
//     categories
//   - every subcategory names an existing category
//   - every member id names an existing node
//   - no node is listed by more than one subcategory
//   - every edge endpoint names a node, subcategory or category
//
// Relationship records are not checked here. Unresolvable names are a
// data-quality gap the engine tolerates, see [Topology.ResolveRelationships].
func (t *Topology) Validate() error {
	if t == nil {
		return cgerrors.New(cgerrors.ErrCodeInvalidInput, "topology is nil")
	}

	kinds := make(map[string]NodeKind, len(t.Nodes)+len(t.Subcategories)+len(t.Categories))
	claim := func(kind NodeKind, id string) error {
		if err := cgerrors.ValidateID(string(kind), id); err != nil {
			return err
		}
		if prev, ok := kinds[id]; ok {
			return cgerrors.New(cgerrors.ErrCodeDuplicateID, "%s id %q already used by a %s", kind, id, prev)
		}
		kinds[id] = kind
		return nil
	}

	for _, n := range t.Nodes {
		if err := claim(KindLeaf, n.ID); err != nil {
			return err
		}
	}
	for _, c := range t.Categories {
		if err := claim(KindCategory, c.ID); err != nil {
			return err
		}
	}
	for _, s := range t.Subcategories {
		if err := claim(KindSubcategory, s.ID); err != nil {
			return err
		}
	}

	owner := make(map[string]string)
	for _, s := range t.Subcategories {
		if kinds[s.CategoryID] != KindCategory {
			return cgerrors.New(cgerrors.ErrCodeUnknownReference, "subcategory %q references unknown category %q", s.ID, s.CategoryID)
		}
		for _, id := range s.NodeIDs {
			if kinds[id] != KindLeaf {
				return cgerrors.New(cgerrors.ErrCodeUnknownReference, "subcategory %q lists unknown node %q", s.ID, id)
			}
			if prev, ok := owner[id]; ok {
				return cgerrors.New(cgerrors.ErrCodeOverlappingMembership, "node %q listed by subcategories %q and %q", id, prev, s.ID)
			}
			owner[id] = s.ID
		}
	}

	edgeIDs := make(map[string]struct{}, len(t.Edges))
	for _, e := range t.Edges {
		if err := cgerrors.ValidateID("edge", e.ID); err != nil {
			return err
		}
		if _, ok := edgeIDs[e.ID]; ok {
			return cgerrors.New(cgerrors.ErrCodeDuplicateID, "duplicate edge id %q", e.ID)
		}
		edgeIDs[e.ID] = struct{}{}
		if _, ok := kinds[e.Source]; !ok {
			return cgerrors.New(cgerrors.ErrCodeUnknownReference, "edge %q has unknown source %q", e.ID, e.Source)
		}
		if _, ok := kinds[e.Target]; !ok {
			return cgerrors.New(cgerrors.ErrCodeUnknownReference, "edge %q has unknown target %q", e.ID, e.Target)
		}
	}
	return nil
}

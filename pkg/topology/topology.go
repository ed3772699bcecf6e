package topology

import "slices"

// NodeKind tags the three kinds of node a diagram can contain. Only leaf
// nodes appear in a [Topology]; box kinds are synthesised during layout.
type NodeKind string

const (
	KindLeaf        NodeKind = "leaf"
	KindSubcategory NodeKind = "subcategory"
	KindCategory    NodeKind = "category"
)

// Node is a leaf entity of the diagram.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed, labelled connection. Source and Target name node or
// cluster ids. The ID prefix encodes the edge kind, see [KindOf].
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
	Label  string `json:"label,omitempty"`
}

// Kind returns the kind encoded in the edge id.
func (e Edge) Kind() EdgeKind { return KindOf(e.ID) }

// Category is an outer cluster. It owns subcategories through their
// CategoryID field.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// Subcategory is an inner cluster grouping leaf nodes.
type Subcategory struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	// Name is the key relationships use to refer to this subcategory.
	// When empty, Label is used.
	Name       string   `json:"c2Name,omitempty"`
	CategoryID string   `json:"c1CategoryId"`
	NodeIDs    []string `json:"nodeIds"`
}

// JoinName returns the name relationships resolve against.
func (s Subcategory) JoinName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Label
}

// Relationship is a named reference between two subcategories. From and To
// hold subcategory names, not ids.
type Relationship struct {
	ID    string `json:"id"`
	From  string `json:"fromC2"`
	To    string `json:"toC2"`
	Label string `json:"label,omitempty"`
}

// Topology is the complete, position-free input of a layout run.
type Topology struct {
	Nodes                      []Node         `json:"graphNodes"`
	Edges                      []Edge         `json:"graphEdges"`
	Categories                 []Category     `json:"c1Outputs"`
	Subcategories              []Subcategory  `json:"c2Subcategories"`
	SubcategoryRelationships   []Relationship `json:"c2Relationships,omitempty"`
	CrossCategoryRelationships []Relationship `json:"crossC1C2Relationships,omitempty"`
}

// NodeIndex returns a lookup from node id to node.
func (t *Topology) NodeIndex() map[string]Node {
	m := make(map[string]Node, len(t.Nodes))
	for _, n := range t.Nodes {
		m[n.ID] = n
	}
	return m
}

// Membership returns a lookup from leaf node id to the id of the subcategory
// listing it. When a node is listed twice, the first subcategory wins;
// [Topology.Validate] rejects such input.
func (t *Topology) Membership() map[string]string {
	m := make(map[string]string)
	for _, s := range t.Subcategories {
		for _, id := range s.NodeIDs {
			if _, ok := m[id]; !ok {
				m[id] = s.ID
			}
		}
	}
	return m
}

// Standalone returns the nodes that belong to no subcategory, in input order.
func (t *Topology) Standalone() []Node {
	member := t.Membership()
	var out []Node
	for _, n := range t.Nodes {
		if _, ok := member[n.ID]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// Relationships returns subcategory relationships followed by cross-category
// relationships.
func (t *Topology) Relationships() []Relationship {
	return slices.Concat(t.SubcategoryRelationships, t.CrossCategoryRelationships)
}

// Clone returns a deep copy of the topology.
func (t *Topology) Clone() *Topology {
	out := &Topology{
		Nodes:                      slices.Clone(t.Nodes),
		Edges:                      slices.Clone(t.Edges),
		Categories:                 slices.Clone(t.Categories),
		Subcategories:              make([]Subcategory, len(t.Subcategories)),
		SubcategoryRelationships:   slices.Clone(t.SubcategoryRelationships),
		CrossCategoryRelationships: slices.Clone(t.CrossCategoryRelationships),
	}
	for i, s := range t.Subcategories {
		s.NodeIDs = slices.Clone(s.NodeIDs)
		out.Subcategories[i] = s
	}
	return out
}

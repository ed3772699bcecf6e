package diagram

import (
	"time"

	"github.com/matzehuels/clustergraph/pkg/topology"
)

// Point is a top-left corner in diagram coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Frame is a positioned rectangle. Position is always the top-left corner.
type Frame struct {
	Position Point   `json:"position"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// Contains reports whether o lies within f, with tolerance eps.
func (f Frame) Contains(o Frame, eps float64) bool {
	return o.Position.X >= f.Position.X-eps &&
		o.Position.Y >= f.Position.Y-eps &&
		o.Position.X+o.Width <= f.Position.X+f.Width+eps &&
		o.Position.Y+o.Height <= f.Position.Y+f.Height+eps
}

// Overlaps reports whether the interiors of f and o intersect.
func (f Frame) Overlaps(o Frame) bool {
	return f.Position.X < o.Position.X+o.Width && o.Position.X < f.Position.X+f.Width &&
		f.Position.Y < o.Position.Y+o.Height && o.Position.Y < f.Position.Y+f.Height
}

// Node is a positioned leaf node.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	// Subcategory is the owning subcategory id, empty for standalone nodes.
	Subcategory string `json:"subcategoryId,omitempty"`
	Frame
}

// Subcategory is a positioned inner cluster box.
type Subcategory struct {
	ID         string `json:"id"`
	Label      string `json:"label,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
	Frame
}

// Category is a positioned outer cluster box.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Frame
}

// Stats describes a layout run.
type Stats struct {
	Subcategories         int           `json:"subcategories"`
	EmptySubcategories    int           `json:"emptySubcategories"`
	StandaloneNodes       int           `json:"standaloneNodes"`
	ResolvedRelationships int           `json:"resolvedRelationships"`
	DroppedRelationships  int           `json:"droppedRelationships"`
	SkippedMembers        int           `json:"skippedMembers"`
	InnerDuration         time.Duration `json:"innerDuration"`
	MacroDuration         time.Duration `json:"macroDuration"`
	ComposeDuration       time.Duration `json:"composeDuration"`
}

// Diagram is the positioned result of a layout run.
type Diagram struct {
	Nodes         []Node          `json:"nodes"`
	Subcategories []Subcategory   `json:"subcategories"`
	Categories    []Category      `json:"categories"`
	Edges         []topology.Edge `json:"edges"`
	Width         float64         `json:"width"`
	Height        float64         `json:"height"`
	Stats         Stats           `json:"stats"`
}

// Node returns the leaf node with the given id.
func (d *Diagram) Node(id string) (Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Subcategory returns the subcategory box with the given id.
func (d *Diagram) Subcategory(id string) (Subcategory, bool) {
	for _, s := range d.Subcategories {
		if s.ID == id {
			return s, true
		}
	}
	return Subcategory{}, false
}

// Category returns the category box with the given id.
func (d *Diagram) Category(id string) (Category, bool) {
	for _, c := range d.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

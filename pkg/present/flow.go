package present

import (
	"encoding/json"

	"github.com/matzehuels/clustergraph/pkg/diagram"
)

// Canvas node and edge types.
const (
	NodeTypeGroup   = "group"
	NodeTypeDefault = "default"
	// EdgeTypePair is the custom edge type the canvas registers for
	// reciprocal edges.
	EdgeTypePair = "bilateral"
	// ExtentParent confines a child node to its parent's box.
	ExtentParent = "parent"
	// AnimatedLabel is the edge label that turns on animation.
	AnimatedLabel = "calls"
)

// Label sides of a reciprocal pair.
const (
	LabelAbove = "above"
	LabelBelow = "below"
)

// Position is a node's top-left corner, relative to its parent when
// ParentNode is set.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData is the payload rendered inside a node.
type NodeData struct {
	Label string `json:"label"`
}

// Node is a canvas node.
type Node struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Position   Position  `json:"position"`
	Data       NodeData  `json:"data"`
	ParentNode string    `json:"parentNode,omitempty"`
	Extent     string    `json:"extent,omitempty"`
	Style      NodeStyle `json:"style"`
}

// EdgeData marks a member of a reciprocal pair.
type EdgeData struct {
	PairID    string `json:"pairId"`
	LabelSide string `json:"labelSide"`
}

// Edge is a canvas edge.
type Edge struct {
	ID         string     `json:"id"`
	Source     string     `json:"source"`
	Target     string     `json:"target"`
	Label      string     `json:"label,omitempty"`
	Type       string     `json:"type,omitempty"`
	Style      EdgeStyle  `json:"style"`
	LabelStyle LabelStyle `json:"labelStyle"`
	Animated   bool       `json:"animated"`
	Data       *EdgeData  `json:"data,omitempty"`
}

// Flow is the full canvas document.
type Flow struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Option configures [Convert], [RenderJSON] and [RenderSVG].
type Option func(*converter)

type converter struct {
	theme    Theme
	absolute bool
	noPairs  bool
}

// WithTheme replaces the default colours.
func WithTheme(t Theme) Option { return func(c *converter) { c.theme = t } }

// WithAbsolutePositions keeps every position in the diagram frame and
// leaves parentNode unset, for canvases that do not nest nodes.
func WithAbsolutePositions() Option { return func(c *converter) { c.absolute = true } }

// WithoutPairing leaves reciprocal edges untagged.
func WithoutPairing() Option { return func(c *converter) { c.noPairs = true } }

func newConverter(opts []Option) *converter {
	c := &converter{theme: DefaultTheme()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert maps d onto canvas nodes and edges. It does not modify d and is
// safe to call concurrently.
func Convert(d *diagram.Diagram, opts ...Option) *Flow {
	c := newConverter(opts)
	f := &Flow{
		Nodes: make([]Node, 0, len(d.Categories)+len(d.Subcategories)+len(d.Nodes)),
		Edges: make([]Edge, 0, len(d.Edges)),
	}

	categories := make(map[string]diagram.Point, len(d.Categories))
	for _, cat := range d.Categories {
		categories[cat.ID] = cat.Position
		f.Nodes = append(f.Nodes, Node{
			ID:       cat.ID,
			Type:     NodeTypeGroup,
			Position: Position(cat.Position),
			Data:     NodeData{Label: cat.Label},
			Style:    sized(c.theme.Category, cat.Frame),
		})
	}

	subcategories := make(map[string]diagram.Point, len(d.Subcategories))
	for _, s := range d.Subcategories {
		subcategories[s.ID] = s.Position
		n := Node{
			ID:       s.ID,
			Type:     NodeTypeGroup,
			Position: Position(s.Position),
			Data:     NodeData{Label: s.Label},
			Style:    sized(c.theme.Subcategory, s.Frame),
		}
		if origin, ok := categories[s.CategoryID]; ok && !c.absolute {
			n.ParentNode, n.Extent = s.CategoryID, ExtentParent
			n.Position = relative(s.Position, origin)
		}
		f.Nodes = append(f.Nodes, n)
	}

	for _, leaf := range d.Nodes {
		label := leaf.Label
		if label == "" {
			label = leaf.ID
		}
		n := Node{
			ID:       leaf.ID,
			Type:     NodeTypeDefault,
			Position: Position(leaf.Position),
			Data:     NodeData{Label: label},
			Style:    sized(c.theme.Leaf, leaf.Frame),
		}
		if origin, ok := subcategories[leaf.Subcategory]; ok && !c.absolute {
			n.ParentNode, n.Extent = leaf.Subcategory, ExtentParent
			n.Position = relative(leaf.Position, origin)
		}
		f.Nodes = append(f.Nodes, n)
	}

	for _, e := range d.Edges {
		f.Edges = append(f.Edges, Edge{
			ID:         e.ID,
			Source:     e.Source,
			Target:     e.Target,
			Label:      e.Label,
			Style:      c.theme.edgeStyle(e.Kind()),
			LabelStyle: c.theme.Label,
			Animated:   e.Label == AnimatedLabel,
		})
	}
	if !c.noPairs {
		PairReciprocal(f.Edges)
	}
	return f
}

// RenderJSON converts d and encodes the flow as indented JSON.
func RenderJSON(d *diagram.Diagram, opts ...Option) ([]byte, error) {
	return json.MarshalIndent(Convert(d, opts...), "", "  ")
}

func relative(p, origin diagram.Point) Position {
	return Position{X: p.X - origin.X, Y: p.Y - origin.Y}
}

func sized(s NodeStyle, f diagram.Frame) NodeStyle {
	s.Width, s.Height = f.Width, f.Height
	return s
}

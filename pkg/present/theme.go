package present

import "github.com/matzehuels/clustergraph/pkg/topology"

// NodeStyle is the inline style of a canvas node.
type NodeStyle struct {
	Background      string  `json:"background,omitempty"`
	BackgroundColor string  `json:"backgroundColor,omitempty"`
	Border          string  `json:"border,omitempty"`
	BorderRadius    string  `json:"borderRadius,omitempty"`
	Color           string  `json:"color,omitempty"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	JustifyContent  string  `json:"justifyContent,omitempty"`
	AlignItems      string  `json:"alignItems,omitempty"`
	Padding         float64 `json:"padding,omitempty"`
	FontWeight      string  `json:"fontWeight,omitempty"`
}

// EdgeStyle is the stroke of a canvas edge.
type EdgeStyle struct {
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// LabelStyle is the style of an edge label.
type LabelStyle struct {
	Fill       string `json:"fill"`
	FontWeight string `json:"fontWeight"`
}

// Theme holds the colours of every node and edge kind. Width and Height of
// the node styles are overwritten with each element's own size.
type Theme struct {
	Category    NodeStyle
	Subcategory NodeStyle
	Leaf        NodeStyle
	Edges       map[topology.EdgeKind]EdgeStyle
	Label       LabelStyle
}

// DefaultTheme returns red categories, green subcategories and blue leaves.
func DefaultTheme() Theme {
	return Theme{
		Category: NodeStyle{
			BackgroundColor: "rgba(239, 68, 68, 0.05)",
			Border:          "2px solid #ef4444",
			BorderRadius:    "12px",
			JustifyContent:  "flex-start",
			AlignItems:      "flex-start",
			Padding:         10,
			FontWeight:      "bold",
		},
		Subcategory: NodeStyle{
			BackgroundColor: "rgba(34, 197, 94, 0.05)",
			Border:          "2px solid #22c55e",
			BorderRadius:    "10px",
		},
		Leaf: NodeStyle{
			Background:   "#e0f2fe",
			Border:       "1px solid #0ea5e9",
			Color:        "#0369a1",
			BorderRadius: "6px",
		},
		Edges: map[topology.EdgeKind]EdgeStyle{
			topology.EdgeKindSubcategory:   {Stroke: "#059669", StrokeWidth: 2},
			topology.EdgeKindCrossCategory: {Stroke: "#d97706", StrokeWidth: 2},
			topology.EdgeKindPlain:         {Stroke: "#4b5563", StrokeWidth: 1.5},
		},
		Label: LabelStyle{Fill: "#1f2937", FontWeight: "500"},
	}
}

// edgeStyle falls back to the plain style for kinds the theme omits.
func (t Theme) edgeStyle(k topology.EdgeKind) EdgeStyle {
	if s, ok := t.Edges[k]; ok {
		return s
	}
	return t.Edges[topology.EdgeKindPlain]
}

// fill returns the node fill colour, whichever field carries it.
func (s NodeStyle) fill() string {
	if s.Background != "" {
		return s.Background
	}
	return s.BackgroundColor
}

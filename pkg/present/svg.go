package present

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/clustergraph/pkg/diagram"
)

const svgFont = "ui-sans-serif, system-ui, sans-serif"

// RenderSVG draws d as a static SVG document: category and subcategory
// boxes behind their members, straight edges between element centres, and
// a label on every box and node. Edges whose endpoints are not in d are
// skipped.
func RenderSVG(d *diagram.Diagram, opts ...Option) []byte {
	c := newConverter(opts)
	t := c.theme

	centres := make(map[string]diagram.Point, len(d.Nodes)+len(d.Subcategories))
	for _, n := range d.Nodes {
		centres[n.ID] = centre(n.Frame)
	}
	for _, s := range d.Subcategories {
		centres[s.ID] = centre(s.Frame)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.1f" height="%.1f">`+"\n",
		d.Width, d.Height, d.Width, d.Height)
	buf.WriteString(`  <defs><marker id="arrow" viewBox="0 0 10 10" refX="10" refY="5" markerWidth="6" markerHeight="6" orient="auto-start-reverse"><path d="M 0 0 L 10 5 L 0 10 z" fill="context-stroke"/></marker></defs>` + "\n")

	for _, cat := range d.Categories {
		writeBox(&buf, cat.Frame, t.Category, 12, "category")
		writeLabel(&buf, cat.Position.X+8, cat.Position.Y+16, cat.Label, "#b91c1c", "bold")
	}
	for _, s := range d.Subcategories {
		writeBox(&buf, s.Frame, t.Subcategory, 10, "subcategory")
		writeLabel(&buf, s.Position.X+6, s.Position.Y+14, s.Label, "#15803d", "normal")
	}
	for _, e := range d.Edges {
		from, okFrom := centres[e.Source]
		to, okTo := centres[e.Target]
		if !okFrom || !okTo || e.Source == e.Target {
			continue
		}
		s := t.edgeStyle(e.Kind())
		fmt.Fprintf(&buf, `  <line class="edge" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%g" marker-end="url(#arrow)"/>`+"\n",
			from.X, from.Y, to.X, to.Y, s.Stroke, s.StrokeWidth)
	}
	for _, n := range d.Nodes {
		writeBox(&buf, n.Frame, t.Leaf, 6, "node")
		label := n.Label
		if label == "" {
			label = n.ID
		}
		p := centre(n.Frame)
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="12" fill="%s">%s</text>`+"\n",
			p.X, p.Y, svgFont, orDefault(t.Leaf.Color, "#000"), escapeXML(label))
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeBox(buf *bytes.Buffer, f diagram.Frame, s NodeStyle, radius float64, class string) {
	fmt.Fprintf(buf, `  <rect class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%g" fill="%s" stroke="%s"/>`+"\n",
		class, f.Position.X, f.Position.Y, f.Width, f.Height, radius, orDefault(s.fill(), "none"), borderColor(s.Border))
}

func writeLabel(buf *bytes.Buffer, x, y float64, label, fill, weight string) {
	if label == "" {
		return
	}
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="12" font-weight="%s" fill="%s">%s</text>`+"\n",
		x, y, svgFont, weight, fill, escapeXML(label))
}

// borderColor extracts the colour from a CSS border shorthand such as
// "2px solid #ef4444".
func borderColor(border string) string {
	var width, style, colour string
	if n, _ := fmt.Sscanf(border, "%s %s %s", &width, &style, &colour); n == 3 {
		return colour
	}
	return "#000"
}

func centre(f diagram.Frame) diagram.Point {
	return diagram.Point{X: f.Position.X + f.Width/2, Y: f.Position.Y + f.Height/2}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

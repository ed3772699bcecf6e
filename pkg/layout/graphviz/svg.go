package graphviz

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/matzehuels/clustergraph/pkg/layout"
)

var (
	backgroundRe = regexp.MustCompile(`class="graph"[^>]*>\s*<title>[^<]*</title>\s*<polygon[^>]*points="([^"]*)"`)
	shapeRe      = regexp.MustCompile(`class="(?:node|cluster)">\s*<title>([^<]*)</title>\s*<polygon[^>]*points="([^"]*)"`)
)

type rect struct{ minX, minY, maxX, maxY float64 }

func (r rect) width() float64  { return r.maxX - r.minX }
func (r rect) height() float64 { return r.maxY - r.minY }

// parseSVG reads the background polygon and the polygon of every node and
// cluster named in ids from a dot-rendered SVG.
func parseSVG(svg []byte, ids map[string]string) (*layout.Result, error) {
	m := backgroundRe.FindSubmatch(svg)
	if m == nil {
		return nil, fmt.Errorf("svg: background polygon not found")
	}
	bg, err := parsePoints(string(m[1]))
	if err != nil {
		return nil, fmt.Errorf("svg background: %w", err)
	}

	res := &layout.Result{
		Width:  bg.width(),
		Height: bg.height(),
		Nodes:  make(map[string]layout.Box, len(ids)),
	}
	for _, sm := range shapeRe.FindAllSubmatch(svg, -1) {
		id, ok := ids[string(sm[1])]
		if !ok {
			continue
		}
		r, err := parsePoints(string(sm[2]))
		if err != nil {
			return nil, fmt.Errorf("svg shape %s: %w", sm[1], err)
		}
		res.Nodes[id] = layout.Box{
			X:      (r.minX+r.maxX)/2 - bg.minX,
			Y:      (r.minY+r.maxY)/2 - bg.minY,
			Width:  r.width(),
			Height: r.height(),
		}
	}
	if len(res.Nodes) != len(ids) {
		return nil, fmt.Errorf("svg: found %d of %d shapes", len(res.Nodes), len(ids))
	}
	return res, nil
}

// parsePoints returns the bounding rectangle of an SVG points list
// ("x1,y1 x2,y2 …").
func parsePoints(s string) (rect, error) {
	r := rect{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return rect{}, fmt.Errorf("empty points")
	}
	for _, f := range fields {
		xs, ys, ok := strings.Cut(f, ",")
		if !ok {
			return rect{}, fmt.Errorf("malformed point %q", f)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return rect{}, fmt.Errorf("point %q: %w", f, err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return rect{}, fmt.Errorf("point %q: %w", f, err)
		}
		r.minX, r.maxX = math.Min(r.minX, x), math.Max(r.maxX, x)
		r.minY, r.maxY = math.Min(r.minY, y), math.Max(r.maxY, y)
	}
	return r, nil
}

package layered

import (
	"github.com/matzehuels/clustergraph/pkg/dag"
	"github.com/matzehuels/clustergraph/pkg/dag/transform"
	"github.com/matzehuels/clustergraph/pkg/layout"
)

type item struct {
	id   string
	w, h float64
}

type point struct{ x, y float64 }

// place draws one flat level. Items are positioned by centre in a frame
// whose origin is the top-left corner of the drawing, margins included.
func (e Engine) place(items []item, edges [][2]string, opts layout.Options, mx, my float64) (map[string]point, float64, float64) {
	transposed := opts.Transposed()
	if transposed {
		mx, my = my, mx
	}

	g := dag.New()
	for _, it := range items {
		w, h := it.w, it.h
		if transposed {
			w, h = h, w
		}
		_ = g.AddNode(dag.Node{ID: it.id, Width: w, Height: h})
	}
	for _, ed := range edges {
		// self loops and unknown endpoints are rejected by AddEdge
		_ = g.AddEdge(ed[0], ed[1])
	}

	transform.Rank(g)
	order(g, e.Sweeps)
	xs, ys, w, h := coordinates(g, opts.NodeSep, opts.RankSep, mx, my)

	pos := make(map[string]point, len(items))
	for _, it := range items {
		p := point{xs[it.id], ys[it.id]}
		if transposed {
			p.x, p.y = p.y, p.x
		}
		pos[it.id] = p
	}
	if transposed {
		w, h = h, w
	}

	switch opts.RankDir {
	case layout.BottomTop:
		for id, p := range pos {
			pos[id] = point{p.x, h - p.y}
		}
	case layout.RightLeft:
		for id, p := range pos {
			pos[id] = point{w - p.x, p.y}
		}
	}
	return pos, w, h
}

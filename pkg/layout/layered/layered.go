package layered

import (
	"context"

	"github.com/matzehuels/clustergraph/pkg/layout"
)

const (
	// DefaultSweeps bounds the number of barycenter sweeps per level.
	DefaultSweeps = 8
	// DefaultClusterPadding is the gap between a parent's border and its
	// children's drawing.
	DefaultClusterPadding = 20
)

// Engine is the native layered layout engine.
type Engine struct {
	// Sweeps bounds the barycenter passes per level. Zero selects
	// DefaultSweeps.
	Sweeps int
	// ClusterPadding surrounds the children of every compound node.
	ClusterPadding float64
}

// New returns an Engine with default settings.
func New() *Engine {
	return &Engine{Sweeps: DefaultSweeps, ClusterPadding: DefaultClusterPadding}
}

var _ layout.Engine = (*Engine)(nil)

// Layout implements [layout.Engine].
func (e *Engine) Layout(ctx context.Context, g *layout.Graph) (*layout.Result, error) {
	if len(g.Nodes) == 0 {
		return layout.Empty(), nil
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	opts, err := g.Options.Normalize()
	if err != nil {
		return nil, err
	}

	lv := &leveller{
		engine:   e.withDefaults(),
		opts:     opts,
		nodes:    make(map[string]layout.Node, len(g.Nodes)),
		children: g.Children(),
		edges:    g.Edges,
	}
	for _, n := range g.Nodes {
		lv.nodes[n.ID] = n
	}

	boxes := make(map[string]layout.Box, len(g.Nodes))
	w, h, err := lv.level(ctx, "", opts.MarginX, opts.MarginY, boxes)
	if err != nil {
		return nil, err
	}
	return &layout.Result{Width: w, Height: h, Nodes: boxes}, nil
}

func (e *Engine) withDefaults() Engine {
	out := *e
	if out.Sweeps <= 0 {
		out.Sweeps = DefaultSweeps
	}
	if out.ClusterPadding < 0 {
		out.ClusterPadding = 0
	}
	return out
}

type leveller struct {
	engine   Engine
	opts     layout.Options
	nodes    map[string]layout.Node
	children map[string][]string
	edges    []layout.Edge
}

// level lays out the direct children of parent ("" for the top level) and,
// recursively, their descendants. Boxes are written to out relative to the
// level's own origin; the returned extent includes the margins.
func (lv *leveller) level(ctx context.Context, parent string, mx, my float64, out map[string]layout.Box) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	ids := lv.children[parent]
	items := make([]item, len(ids))
	nested := make(map[string]map[string]layout.Box)
	for i, id := range ids {
		n := lv.nodes[id]
		items[i] = item{id: id, w: n.Width, h: n.Height}
		if len(lv.children[id]) == 0 {
			continue
		}
		sub := make(map[string]layout.Box)
		pad := lv.engine.ClusterPadding
		w, h, err := lv.level(ctx, id, pad, pad, sub)
		if err != nil {
			return 0, 0, err
		}
		items[i].w, items[i].h = w, h
		nested[id] = sub
	}

	pos, w, h := lv.engine.place(items, lv.liftedEdges(parent), lv.opts, mx, my)

	for _, it := range items {
		p := pos[it.id]
		box := layout.Box{X: p.x, Y: p.y, Width: it.w, Height: it.h}
		out[it.id] = box
		tx, ty := box.TopLeft()
		for id, b := range nested[it.id] {
			b.X += tx
			b.Y += ty
			out[id] = b
		}
	}
	return w, h, nil
}

// liftedEdges maps every edge onto the children of parent. Edges with an
// endpoint outside parent's subtree, or with both endpoints inside the same
// child's subtree, are not part of this level.
func (lv *leveller) liftedEdges(parent string) [][2]string {
	var out [][2]string
	for _, e := range lv.edges {
		src, ok := lv.lift(e.Source, parent)
		if !ok {
			continue
		}
		dst, ok := lv.lift(e.Target, parent)
		if !ok || src == dst {
			continue
		}
		out = append(out, [2]string{src, dst})
	}
	return out
}

// lift returns the ancestor of id (or id itself) whose parent is level.
func (lv *leveller) lift(id, level string) (string, bool) {
	cur := id
	for {
		p := lv.nodes[cur].Parent
		if p == level {
			return cur, true
		}
		if p == "" {
			return "", false
		}
		cur = p
	}
}

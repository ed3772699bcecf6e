package diagram

import (
	"context"
	"errors"
	"runtime"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	cgerrors "github.com/matzehuels/clustergraph/pkg/errors"
	"github.com/matzehuels/clustergraph/pkg/layout"
	"github.com/matzehuels/clustergraph/pkg/observability"
	"github.com/matzehuels/clustergraph/pkg/topology"
)

// Engine runs the three layout phases on top of a layout primitive.
type Engine struct {
	Layouter layout.Engine
	Config   Config
	// Logger receives debug records; nil means log.Default().
	Logger *log.Logger
	// Hooks observes phase boundaries; nil disables them.
	Hooks observability.LayoutHooks
}

// New returns an engine using layouter and cfg.
func New(layouter layout.Engine, cfg Config) *Engine {
	return &Engine{Layouter: layouter, Config: cfg}
}

// cluster is the inner layout input and output of one subcategory.
type cluster struct {
	sub     topology.Subcategory
	members []string
	edges   []layout.Edge

	width, height float64
	local         map[string]layout.Box
}

// Layout positions every node, subcategory and category of t.
func (e *Engine) Layout(ctx context.Context, t *topology.Topology) (*Diagram, error) {
	if t == nil {
		return nil, cgerrors.New(cgerrors.ErrCodeInvalidInput, "topology is nil")
	}
	if e.Layouter == nil {
		return nil, cgerrors.New(cgerrors.ErrCodeInternal, "no layout engine configured")
	}
	if err := e.Config.Validate(); err != nil {
		return nil, err
	}
	hooks := observability.LayoutOrNoop(e.Hooks)

	clusters, skipped := e.plan(t)
	stats := Stats{Subcategories: len(clusters), SkippedMembers: skipped}

	start := time.Now()
	hooks.OnPhaseStart(ctx, observability.PhaseInner, len(clusters))
	err := e.layoutClusters(ctx, clusters)
	stats.InnerDuration = time.Since(start)
	hooks.OnPhaseComplete(ctx, observability.PhaseInner, stats.InnerDuration, err)
	if err != nil {
		return nil, err
	}
	for _, c := range clusters {
		if len(c.members) == 0 {
			stats.EmptySubcategories++
		}
	}

	relations, dropped := t.ResolveRelationships()
	stats.ResolvedRelationships, stats.DroppedRelationships = len(relations), dropped
	hooks.OnRelationshipsResolved(ctx, len(relations), dropped)
	if dropped > 0 {
		e.logger().Debug("dropped relationships", "count", dropped, "records", relationshipIDs(t.UnresolvedRelationships()))
	}

	standalone := t.Standalone()
	stats.StandaloneNodes = len(standalone)

	start = time.Now()
	macroGraph := e.macroGraph(t, standalone, clusters, relations)
	hooks.OnPhaseStart(ctx, observability.PhaseMacro, len(macroGraph.Nodes))
	macro, err := e.Layouter.Layout(ctx, macroGraph)
	if err != nil {
		err = layoutError(err, "macro layout")
	}
	stats.MacroDuration = time.Since(start)
	hooks.OnPhaseComplete(ctx, observability.PhaseMacro, stats.MacroDuration, err)
	if err != nil {
		return nil, err
	}

	start = time.Now()
	hooks.OnPhaseStart(ctx, observability.PhaseCompose, len(t.Nodes))
	d := e.compose(t, standalone, clusters, macro)
	d.Edges = slices.Concat(t.Edges, relations)
	stats.ComposeDuration = time.Since(start)
	d.Stats = stats
	hooks.OnPhaseComplete(ctx, observability.PhaseCompose, stats.ComposeDuration, nil)

	e.logger().Debug("layout complete",
		"nodes", len(d.Nodes),
		"subcategories", len(d.Subcategories),
		"categories", len(d.Categories),
		"edges", len(d.Edges),
		"width", d.Width,
		"height", d.Height)
	return d, nil
}

// plan assigns each known node to the first subcategory listing it and
// collects the edges internal to each subcategory. It returns the number of
// member entries skipped as unknown or repeated.
func (e *Engine) plan(t *topology.Topology) ([]*cluster, int) {
	nodes := t.NodeIndex()
	owner := make(map[string]int)
	clusters := make([]*cluster, len(t.Subcategories))
	skipped := 0
	for i, s := range t.Subcategories {
		c := &cluster{sub: s}
		for _, id := range s.NodeIDs {
			if _, ok := nodes[id]; !ok {
				skipped++
				continue
			}
			if _, taken := owner[id]; taken {
				skipped++
				continue
			}
			owner[id] = i
			c.members = append(c.members, id)
		}
		clusters[i] = c
	}
	for _, edge := range t.Edges {
		if edge.Source == edge.Target {
			continue
		}
		src, okSrc := owner[edge.Source]
		dst, okDst := owner[edge.Target]
		if !okSrc || !okDst || src != dst {
			continue
		}
		c := clusters[src]
		c.edges = append(c.edges, layout.Edge{Source: edge.Source, Target: edge.Target, Label: edge.Label})
	}
	if skipped > 0 {
		e.logger().Debug("skipped subcategory members", "count", skipped)
	}
	return clusters, skipped
}

// layoutClusters runs every inner layout with bounded concurrency. Each
// goroutine writes only its own cluster.
func (e *Engine) layoutClusters(ctx context.Context, clusters []*cluster) error {
	workers := e.Config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, c := range clusters {
		g.Go(func() error {
			return e.layoutCluster(ctx, c)
		})
	}
	return g.Wait()
}

func (e *Engine) layoutCluster(ctx context.Context, c *cluster) error {
	if err := ctx.Err(); err != nil {
		return cgerrors.Wrap(cgerrors.ErrCodeCanceled, err, "inner layout of %q", c.sub.ID)
	}
	pad := e.Config.ClusterPadding
	if len(c.members) == 0 {
		c.width, c.height = pad, pad
		c.local = map[string]layout.Box{}
		return nil
	}

	g := &layout.Graph{
		Options: e.Config.Inner,
		Nodes:   make([]layout.Node, len(c.members)),
		Edges:   c.edges,
	}
	for i, id := range c.members {
		g.Nodes[i] = layout.Node{ID: id, Width: e.Config.NodeWidth, Height: e.Config.NodeHeight}
	}
	res, err := e.Layouter.Layout(ctx, g)
	if err != nil {
		return layoutError(err, "inner layout of %q", c.sub.ID)
	}
	c.width, c.height = res.Width+pad, res.Height+pad
	c.local = res.Nodes
	e.logger().Debug("subcategory laid out",
		"id", c.sub.ID,
		"members", len(c.members),
		"edges", len(c.edges),
		"width", c.width,
		"height", c.height)
	return nil
}

// macroGraph builds the top-level graph: standalone nodes first, then
// categories, then subcategories nested in their category.
func (e *Engine) macroGraph(t *topology.Topology, standalone []topology.Node, clusters []*cluster, relations []topology.Edge) *layout.Graph {
	g := &layout.Graph{Options: e.Config.Macro}
	for _, n := range standalone {
		g.Nodes = append(g.Nodes, layout.Node{ID: n.ID, Width: e.Config.NodeWidth, Height: e.Config.NodeHeight})
	}
	categories := make(map[string]bool, len(t.Categories))
	for _, c := range t.Categories {
		categories[c.ID] = true
		g.Nodes = append(g.Nodes, layout.Node{ID: c.ID})
	}
	for _, c := range clusters {
		n := layout.Node{ID: c.sub.ID, Width: c.width, Height: c.height}
		if categories[c.sub.CategoryID] {
			n.Parent = c.sub.CategoryID
		}
		g.Nodes = append(g.Nodes, n)
	}
	for _, r := range relations {
		g.Edges = append(g.Edges, layout.Edge{Source: r.Source, Target: r.Target, Label: r.Label})
	}
	return g
}

// compose converts macro centres into top-left corners and translates
// member nodes into the global frame. Ids missing from a result are
// skipped.
func (e *Engine) compose(t *topology.Topology, standalone []topology.Node, clusters []*cluster, macro *layout.Result) *Diagram {
	d := &Diagram{Width: macro.Width, Height: macro.Height}
	nodes := t.NodeIndex()

	for _, c := range t.Categories {
		box, ok := macro.Nodes[c.ID]
		if !ok {
			continue
		}
		d.Categories = append(d.Categories, Category{ID: c.ID, Label: c.Label, Frame: frame(box)})
	}

	halfW, halfH := e.Config.NodeWidth/2, e.Config.NodeHeight/2
	for _, c := range clusters {
		box, ok := macro.Nodes[c.sub.ID]
		if !ok {
			continue
		}
		f := frame(box)
		d.Subcategories = append(d.Subcategories, Subcategory{
			ID:         c.sub.ID,
			Label:      c.sub.Label,
			CategoryID: c.sub.CategoryID,
			Frame:      f,
		})
		for _, id := range c.members {
			local, ok := c.local[id]
			if !ok {
				continue
			}
			d.Nodes = append(d.Nodes, Node{
				ID:          id,
				Label:       nodes[id].Label,
				Subcategory: c.sub.ID,
				Frame: Frame{
					Position: Point{X: f.Position.X + local.X - halfW, Y: f.Position.Y + local.Y - halfH},
					Width:    e.Config.NodeWidth,
					Height:   e.Config.NodeHeight,
				},
			})
		}
	}

	for _, n := range standalone {
		box, ok := macro.Nodes[n.ID]
		if !ok {
			continue
		}
		d.Nodes = append(d.Nodes, Node{ID: n.ID, Label: n.Label, Frame: frame(box)})
	}
	return d
}

func (e *Engine) logger() *log.Logger {
	if e.Logger == nil {
		return log.Default()
	}
	return e.Logger
}

func frame(b layout.Box) Frame {
	x, y := b.TopLeft()
	return Frame{Position: Point{X: x, Y: y}, Width: b.Width, Height: b.Height}
}

func layoutError(err error, format string, args ...any) error {
	if cgerrors.Is(err, cgerrors.ErrCodeCanceled) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return cgerrors.Wrap(cgerrors.ErrCodeCanceled, err, format, args...)
	}
	return cgerrors.Wrap(cgerrors.ErrCodeLayoutFailed, err, format, args...)
}

func relationshipIDs(rs []topology.Relationship) []string {
	ids := make([]string, len(rs))
	for i, r := range rs {
		ids[i] = r.ID
	}
	return ids
}

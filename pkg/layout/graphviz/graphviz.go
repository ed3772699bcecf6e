package graphviz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/clustergraph/pkg/layout"
)

// DefaultClusterPadding is the margin, in points, dot keeps around a
// cluster's contents.
const DefaultClusterPadding = 20

// Engine lays out graphs with Graphviz dot.
type Engine struct {
	ClusterPadding float64
}

// New returns an Engine with default settings.
func New() *Engine {
	return &Engine{ClusterPadding: DefaultClusterPadding}
}

var _ layout.Engine = (*Engine)(nil)

// Layout implements [layout.Engine]. Each call starts its own Graphviz
// instance, so concurrent calls do not share state.
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

	dot, ids := ToDOT(g, opts, e.ClusterPadding)
	svg, err := render(ctx, dot)
	if err != nil {
		return nil, err
	}
	return parseSVG(svg, ids)
}

func render(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

package layout

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrDuplicateNode is returned when two nodes share an id.
	ErrDuplicateNode = errors.New("duplicate node")
	// ErrUnknownNode is returned when an edge endpoint names no node.
	ErrUnknownNode = errors.New("unknown node")
	// ErrUnknownParent is returned when a node's Parent names no node.
	ErrUnknownParent = errors.New("unknown parent")
	// ErrParentCycle is returned when parent links form a cycle.
	ErrParentCycle = errors.New("parent cycle")
	// ErrInvalidSize is returned for negative node extents.
	ErrInvalidSize = errors.New("invalid node size")
)

// Engine lays out a graph. Implementations must be safe for concurrent use
// by multiple goroutines, each with its own Graph.
type Engine interface {
	Layout(ctx context.Context, g *Graph) (*Result, error)
}

// RankDir is the direction ranks advance in.
type RankDir string

const (
	TopBottom RankDir = "TB"
	BottomTop RankDir = "BT"
	LeftRight RankDir = "LR"
	RightLeft RankDir = "RL"
)

// Options tunes a single layout invocation.
type Options struct {
	RankDir RankDir // defaults to TopBottom
	NodeSep float64 // gap between neighbours within a rank
	RankSep float64 // gap between ranks
	MarginX float64 // space left and right of the drawing
	MarginY float64 // space above and below the drawing
}

// Node is a box to place. Width and Height are ignored for nodes that have
// children.
type Node struct {
	ID     string
	Width  float64
	Height float64
	Parent string
}

// Edge is a directed connection. Label is carried for engines that reserve
// room for it; it does not affect the result of the native engine.
type Edge struct {
	Source string
	Target string
	Label  string
}

// Graph is the input of a layout invocation. A Graph is read, never
// modified, by engines.
type Graph struct {
	Options Options
	Nodes   []Node
	Edges   []Edge
}

// Box is a positioned node. X and Y are the centre.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TopLeft returns the corner opposite the box's centre by half its extent.
func (b Box) TopLeft() (x, y float64) {
	return b.X - b.Width/2, b.Y - b.Height/2
}

// Contains reports whether o lies within b, with tolerance eps.
func (b Box) Contains(o Box, eps float64) bool {
	bx, by := b.TopLeft()
	ox, oy := o.TopLeft()
	return ox >= bx-eps && oy >= by-eps &&
		ox+o.Width <= bx+b.Width+eps && oy+o.Height <= by+b.Height+eps
}

// Overlaps reports whether the interiors of b and o intersect.
func (b Box) Overlaps(o Box) bool {
	bx, by := b.TopLeft()
	ox, oy := o.TopLeft()
	return bx < ox+o.Width && ox < bx+b.Width && by < oy+o.Height && oy < by+b.Height
}

// Result is the output of a layout invocation.
type Result struct {
	Width  float64
	Height float64
	Nodes  map[string]Box
}

// Empty returns the result for a graph without nodes.
func Empty() *Result {
	return &Result{Nodes: map[string]Box{}}
}

// Validate checks node ids, parent links, sizes and edge endpoints.
func (g *Graph) Validate() error {
	index := make(map[string]*Node, len(g.Nodes))
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if _, ok := index[n.ID]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
		}
		if n.Width < 0 || n.Height < 0 {
			return fmt.Errorf("%w: %q is %gx%g", ErrInvalidSize, n.ID, n.Width, n.Height)
		}
		index[n.ID] = n
	}
	for _, n := range g.Nodes {
		if n.Parent == "" {
			continue
		}
		seen := map[string]bool{n.ID: true}
		for p := n.Parent; p != ""; p = index[p].Parent {
			if _, ok := index[p]; !ok {
				return fmt.Errorf("%w: %q of %q", ErrUnknownParent, p, n.ID)
			}
			if seen[p] {
				return fmt.Errorf("%w: through %q", ErrParentCycle, n.ID)
			}
			seen[p] = true
		}
	}
	for _, e := range g.Edges {
		if _, ok := index[e.Source]; !ok {
			return fmt.Errorf("%w: edge source %q", ErrUnknownNode, e.Source)
		}
		if _, ok := index[e.Target]; !ok {
			return fmt.Errorf("%w: edge target %q", ErrUnknownNode, e.Target)
		}
	}
	return nil
}

// Children returns each parent's direct children in node order. Top-level
// nodes are listed under the empty key.
func (g *Graph) Children() map[string][]string {
	m := make(map[string][]string)
	for _, n := range g.Nodes {
		m[n.Parent] = append(m[n.Parent], n.ID)
	}
	return m
}

// Transposed reports whether ranks run horizontally.
func (o Options) Transposed() bool {
	return o.RankDir == LeftRight || o.RankDir == RightLeft
}

// Normalize fills defaults and reports unsupported values.
func (o Options) Normalize() (Options, error) {
	switch o.RankDir {
	case "":
		o.RankDir = TopBottom
	case TopBottom, BottomTop, LeftRight, RightLeft:
	default:
		return o, fmt.Errorf("unsupported rank direction %q", o.RankDir)
	}
	if o.NodeSep < 0 || o.RankSep < 0 || o.MarginX < 0 || o.MarginY < 0 {
		return o, fmt.Errorf("negative spacing in %+v", o)
	}
	return o, nil
}

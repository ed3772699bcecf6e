// Package graphviz implements [layout.Engine] on top of Graphviz dot, run
// in-process through github.com/goccy/go-graphviz.
//
// The graph is translated to DOT with fixed-size box nodes and one
// "subgraph cluster_N" per compound node. dot renders it to SVG, and node
// and cluster boxes are read back from the SVG polygons. One SVG unit is one
// point, and sizes are handed to dot in inches at 72 points per inch, so
// coordinates come back in the caller's units without scaling. SVG already
// grows y downward; positions are rebased on the drawing's background
// polygon so the top-left of the drawing is the origin.
//
// Node ids never reach DOT. Every node gets a synthetic name (n0, n1, …,
// cluster_0, …), so arbitrary ids are safe.
package graphviz

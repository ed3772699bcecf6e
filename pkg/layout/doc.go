// Package layout defines the directed layered layout primitive the diagram
// engine is built on.
//
// # Overview
//
// An [Engine] takes a [Graph] of sized nodes and directed edges and returns a
// [Result] with a centre position and extent for every node plus the
// drawing's overall width and height. Nodes may declare a Parent; a parent's
// extent is derived from its children, which are kept inside it. This is
// the compound (grouping) facility the macro layout relies on.
//
// Two implementations exist:
//
//   - [github.com/matzehuels/clustergraph/pkg/layout/layered]: a pure-Go
//     Sugiyama engine
//   - [github.com/matzehuels/clustergraph/pkg/layout/graphviz]: Graphviz dot
//     run in-process
//
// [github.com/matzehuels/clustergraph/pkg/layout/engines] builds one by name.
// Engines are plain values; construct one and pass it to whoever needs it.
//
// # Coordinates
//
// Positions reported by engines are centres, with y growing downward.
// Everything surfaced to callers outside this package is a top-left corner;
// use [Box.TopLeft] for the conversion.
package layout

// Package present maps a positioned [diagram.Diagram] onto the node and
// edge objects an interactive flow canvas expects.
//
// # Flow Output
//
// [Convert] emits categories first, then subcategories, then leaves, so a
// parent always precedes its children. Categories and subcategories are
// "group" nodes; subcategories name their category as parentNode and are
// confined to it with extent "parent". Leaves nested in a subcategory do
// the same with their subcategory. Child positions are relative to the
// parent's top-left corner unless [WithAbsolutePositions] is given.
//
// Edges are styled by the kind encoded in their id prefix, see
// [topology.KindOf]. An edge labelled "calls" is animated.
//
// # Reciprocal Edges
//
// When both a→b and b→a are present, both edges get the [EdgeTypePair]
// type and share a data.pairId. The edge whose source sorts first puts its
// label above the curve and the other below, so both labels stay legible.
//
// # Static Preview
//
// [RenderSVG] draws the same diagram as a standalone SVG document with
// straight edges, for quick inspection without a canvas.
package present

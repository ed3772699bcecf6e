// Package diagram computes positions for a two-level clustered topology.
//
// # Pipeline
//
// [Engine.Layout] runs three phases in strict order:
//
//  1. Inner layout: every subcategory's members and the edges between them
//     are laid out on their own, top to bottom, and the drawing's extent
//     plus ClusterPadding becomes the subcategory's box size. Subcategories
//     are independent and are laid out concurrently.
//  2. Macro layout: standalone nodes, the subcategory boxes and one parent
//     node per category are laid out together. Subcategories are children
//     of their category, so the layout primitive keeps each category's
//     subcategories inside it. Only resolved relationships are edges here.
//  3. Composition: every position is converted to a top-left corner and
//     member nodes are translated into the global frame:
//
//	global = subcategoryTopLeft + localCenter - (NodeWidth/2, NodeHeight/2)
//
// The result is a [Diagram] holding every leaf exactly once, every
// subcategory and category box, and the original edges followed by the
// resolved relationship edges.
//
// # Tolerated Input
//
// Relationship records naming an unknown subcategory are dropped and
// counted in [Stats]. Empty subcategories get a padding-only box without
// invoking the primitive. Member ids that name no node are skipped. A node
// listed by several subcategories belongs to the first. Call
// [topology.Topology.Validate] first to reject such input instead.
//
// The engine holds no state between calls; concurrent calls are safe when
// the layout primitive is.
package diagram

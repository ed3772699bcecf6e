// Package layered is a pure-Go implementation of [layout.Engine] using the
// Sugiyama method.
//
// # Phases
//
// Each level of the compound hierarchy is drawn independently:
//
//  1. Ranking: cycles broken by reversing back edges, longest-path layer
//     assignment, long edges split by dummy nodes ([transform.Rank]).
//  2. Ordering: alternating down and up barycenter sweeps followed by
//     adjacent transposition; the ordering with the fewest crossings
//     ([dag.Crossings]) is kept.
//  3. Positioning: ranks are stacked RankSep apart; within a rank nodes are
//     pulled towards the median of their neighbours and then separated by
//     NodeSep without changing their order.
//
// # Compound Nodes
//
// A node with children is drawn by first laying out its children as a
// nested drawing surrounded by ClusterPadding, then treating the result as a
// fixed-size box at the parent's level. Edges whose endpoints sit in
// different subtrees are lifted to the nearest ancestors that share a level;
// edges inside one subtree only affect that subtree.
//
// The engine has no internal state beyond its settings. Output is a pure
// function of the input, with ties broken by node insertion order.
//
// [transform.Rank]: github.com/matzehuels/clustergraph/pkg/dag/transform.Rank
// [dag.Crossings]: github.com/matzehuels/clustergraph/pkg/dag.Crossings
package layered

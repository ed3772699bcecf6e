// Package topology defines the input model of a clustered diagram: leaf
// nodes, directed edges, and the two fixed levels of clustering that group
// them.
//
// # Overview
//
// A [Topology] is produced by an upstream data converter and is the only
// input to the layout engine in [github.com/matzehuels/clustergraph/pkg/diagram].
// It carries no positions. Leaf nodes are partitioned into subcategories
// (inner clusters); each subcategory belongs to exactly one category (outer
// cluster). Nodes that belong to no subcategory are standalone.
//
// Relationships between subcategories are recorded by subcategory name rather
// than id. [Topology.ResolveRelationships] joins them through a name index
// built once per call and turns the resolvable ones into [Edge] values:
//
//	edges, dropped := topo.ResolveRelationships()
//
// Records naming an unknown subcategory are dropped without error; the count
// is reported so callers can surface data-quality gaps.
//
// # Edge Kinds
//
// The kind of an edge is encoded in its id prefix and read back with
// [KindOf]. The prefixes are a wire contract with existing renderers:
//
//	c2_relationship…   subcategory relationship
//	cross_c1_c2_rel…   cross-category relationship
//	(anything else)    plain/structural edge
//
// # Serialization
//
// [Read] and [Write] use the JSON layout of the original data converter
// (graphNodes, graphEdges, c1Outputs, c2Subcategories, c2Relationships,
// crossC1C2Relationships) so existing fixtures load unchanged.
package topology

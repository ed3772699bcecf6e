// Package dag holds the row-organised working graph of the native layered
// layout engine.
//
// Nodes carry a row and an extent, and every row keeps an explicit
// left-to-right order that crossing reduction rewrites:
//
//	g := dag.New()
//	_ = g.AddNode(dag.Node{ID: "login", Width: 150, Height: 40})
//	_ = g.AddNode(dag.Node{ID: "session", Width: 150, Height: 40})
//	_ = g.AddEdge("login", "session")
//
// Queries that return several nodes keep insertion order, so a drawing is a
// pure function of the order its input was added in.
//
// [Crossings] and [RowCrossings] count crossings between rows as the
// inversion count of the edge sequence. [PairCrossings] scores a single
// adjacent swap.
//
// The [transform] subpackage ranks a raw graph.
//
// [transform]: github.com/matzehuels/clustergraph/pkg/dag/transform
package dag

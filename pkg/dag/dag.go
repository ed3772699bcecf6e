package dag

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrEmptyID       = errors.New("node id must not be empty")
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrUnknownNode   = errors.New("unknown node")
	ErrSelfLoop      = errors.New("self loop")

	// ErrRowSpan is returned by [Graph.Check] for an edge that does not go
	// exactly one row down.
	ErrRowSpan = errors.New("edge does not connect consecutive rows")
)

// Node is a vertex with a row and a drawing extent. Width runs along the
// row, Height across rows.
type Node struct {
	ID     string
	Row    int
	Width  float64
	Height float64
	// Virtual nodes are inserted by subdivision and have no extent. Origin
	// names the real node their chain starts from.
	Virtual bool
	Origin  string
}

// Edge is a directed connection. Flipped edges were reversed to break a
// cycle and are drawn To→From.
type Edge struct {
	From    string
	To      string
	Flipped bool
}

// Graph is a directed graph organised into rows for layered drawing.
// Queries returning several nodes preserve insertion order. A Graph is not
// safe for concurrent use.
type Graph struct {
	nodes []*Node
	index map[string]*Node
	edges []Edge
	succ  map[string][]string
	pred  map[string][]string
	rows  [][]*Node
}

func New() *Graph {
	return &Graph{
		index: make(map[string]*Node),
		succ:  make(map[string][]string),
		pred:  make(map[string][]string),
	}
}

// AddNode appends n to the end of its row.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrEmptyID
	}
	if _, ok := g.index[n.ID]; ok {
		return ErrDuplicateNode
	}
	if n.Row < 0 {
		n.Row = 0
	}
	p := &n
	g.nodes = append(g.nodes, p)
	g.index[n.ID] = p
	g.place(p)
	return nil
}

// AddEdge connects two distinct existing nodes. Parallel edges are kept.
func (g *Graph) AddEdge(from, to string) error {
	return g.add(Edge{From: from, To: to})
}

func (g *Graph) add(e Edge) error {
	if _, ok := g.index[e.From]; !ok {
		return ErrUnknownNode
	}
	if _, ok := g.index[e.To]; !ok {
		return ErrUnknownNode
	}
	if e.From == e.To {
		return ErrSelfLoop
	}
	g.edges = append(g.edges, e)
	g.succ[e.From] = append(g.succ[e.From], e.To)
	g.pred[e.To] = append(g.pred[e.To], e.From)
	return nil
}

// Remove deletes the first edge from→to and reports whether one existed.
func (g *Graph) Remove(from, to string) (Edge, bool) {
	i := slices.IndexFunc(g.edges, func(e Edge) bool { return e.From == from && e.To == to })
	if i < 0 {
		return Edge{}, false
	}
	e := g.edges[i]
	g.edges = slices.Delete(g.edges, i, i+1)
	g.succ[from] = deleteFirst(g.succ[from], to)
	g.pred[to] = deleteFirst(g.pred[to], from)
	return e, true
}

// Connect adds e, keeping its Flipped flag.
func (g *Graph) Connect(e Edge) error { return g.add(e) }

// Flip reverses the first edge from→to and toggles its Flipped flag.
func (g *Graph) Flip(from, to string) bool {
	e, ok := g.Remove(from, to)
	if !ok {
		return false
	}
	_ = g.add(Edge{From: to, To: from, Flipped: !e.Flipped})
	return true
}

func deleteFirst(ids []string, id string) []string {
	if i := slices.Index(ids, id); i >= 0 {
		return slices.Delete(ids, i, i+1)
	}
	return ids
}

func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.index[id]
	return n, ok
}

// Nodes returns every node in insertion order.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Edges returns a copy of every edge in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

func (g *Graph) Len() int { return len(g.nodes) }

// Succ and Pred return adjacency in edge insertion order. The slices must
// not be modified.
func (g *Graph) Succ(id string) []string { return g.succ[id] }
func (g *Graph) Pred(id string) []string { return g.pred[id] }

// Assign moves nodes to the rows in rows and rebuilds every row in
// insertion order. Nodes missing from rows stay where they are.
func (g *Graph) Assign(rows map[string]int) {
	g.rows = nil
	for _, n := range g.nodes {
		if r, ok := rows[n.ID]; ok && r >= 0 {
			n.Row = r
		}
		g.place(n)
	}
}

func (g *Graph) place(n *Node) {
	for len(g.rows) <= n.Row {
		g.rows = append(g.rows, nil)
	}
	g.rows[n.Row] = append(g.rows[n.Row], n)
}

// Rows returns the number of rows, the highest row plus one.
func (g *Graph) Rows() int { return len(g.rows) }

// Row returns the nodes of row r left to right; out-of-range rows are empty.
func (g *Graph) Row(r int) []*Node {
	if r < 0 || r >= len(g.rows) {
		return nil
	}
	return g.rows[r]
}

// Order returns the ids of row r left to right.
func (g *Graph) Order(r int) []string {
	row := g.Row(r)
	ids := make([]string, len(row))
	for i, n := range row {
		ids[i] = n.ID
	}
	return ids
}

// Orders returns the ids of every row.
func (g *Graph) Orders() [][]string {
	out := make([][]string, len(g.rows))
	for r := range g.rows {
		out[r] = g.Order(r)
	}
	return out
}

// SetOrder rearranges row r. Ids not on row r are ignored.
func (g *Graph) SetOrder(r int, ids []string) {
	if r < 0 || r >= len(g.rows) {
		return
	}
	row := make([]*Node, 0, len(ids))
	for _, id := range ids {
		if n, ok := g.index[id]; ok && n.Row == r {
			row = append(row, n)
		}
	}
	g.rows[r] = row
}

// Check reports whether every edge points exactly one row down. Such a
// graph cannot contain a cycle.
func (g *Graph) Check() error {
	for _, e := range g.edges {
		if g.index[e.To].Row != g.index[e.From].Row+1 {
			return fmt.Errorf("%w: %s (row %d) -> %s (row %d)", ErrRowSpan,
				e.From, g.index[e.From].Row, e.To, g.index[e.To].Row)
		}
	}
	return nil
}

// Index maps each id to its position in ids.
func Index(ids []string) map[string]int {
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}

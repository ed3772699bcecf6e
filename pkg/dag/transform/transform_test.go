package transform

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/clustergraph/pkg/dag"
)

func build(t *testing.T, ids []string, edges [][2]string) *dag.Graph {
	t.Helper()
	g := dag.New()
	for _, id := range ids {
		if err := g.AddNode(dag.Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%s): %v", id, err)
		}
	}
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%v): %v", e, err)
		}
	}
	return g
}

func TestBreakCycles(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		edges [][2]string
		want  int
	}{
		{"empty", nil, nil, 0},
		{"chain", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}}, 0},
		{"two cycle", []string{"a", "b"}, [][2]string{{"a", "b"}, {"b", "a"}}, 1},
		{"triangle", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}}, 1},
		{"disjoint cycles", []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "a"}, {"c", "d"}, {"d", "c"}}, 2},
		{"diamond", []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.ids, tt.edges)
			if got := BreakCycles(g); got != tt.want {
				t.Errorf("BreakCycles() = %d, want %d", got, tt.want)
			}
			if len(g.Edges()) != len(tt.edges) {
				t.Errorf("edge count = %d, want %d", len(g.Edges()), len(tt.edges))
			}
			if again := BreakCycles(g); again != 0 {
				t.Errorf("second pass flipped %d edges", again)
			}
		})
	}
}

func TestBreakCyclesFlipsBackEdge(t *testing.T) {
	g := build(t, []string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"d", "b"}})
	BreakCycles(g)

	var flipped []dag.Edge
	for _, e := range g.Edges() {
		if e.Flipped {
			flipped = append(flipped, e)
		}
	}
	want := []dag.Edge{{From: "b", To: "d", Flipped: true}}
	if diff := cmp.Diff(want, flipped); diff != "" {
		t.Errorf("flipped edges mismatch (-want +got):\n%s", diff)
	}
}

func TestBreakCyclesDeepChain(t *testing.T) {
	const n = 20000
	ids := make([]string, n)
	var edges [][2]string
	for i := range ids {
		ids[i] = fmt.Sprintf("n%d", i)
		if i > 0 {
			edges = append(edges, [2]string{ids[i-1], ids[i]})
		}
	}
	edges = append(edges, [2]string{ids[n-1], ids[0]})
	g := build(t, ids, edges)
	if got := BreakCycles(g); got != 1 {
		t.Errorf("BreakCycles() = %d, want 1", got)
	}
}

func rowsOf(g *dag.Graph) map[string]int {
	m := make(map[string]int, g.Len())
	for _, n := range g.Nodes() {
		m[n.ID] = n.Row
	}
	return m
}

func TestAssignRows(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		edges [][2]string
		want  map[string]int
	}{
		{"isolated", []string{"a", "b"}, nil, map[string]int{"a": 0, "b": 0}},
		{"chain", []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}}, map[string]int{"a": 0, "b": 1, "c": 2}},
		{
			"longest path wins",
			[]string{"a", "b", "c", "d"},
			[][2]string{{"a", "b"}, {"b", "c"}, {"a", "d"}, {"c", "d"}},
			map[string]int{"a": 0, "b": 1, "c": 2, "d": 3},
		},
		{
			"sink below late source",
			[]string{"x", "y", "z"},
			[][2]string{{"y", "z"}, {"x", "y"}},
			map[string]int{"x": 0, "y": 1, "z": 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.ids, tt.edges)
			AssignRows(g)
			if diff := cmp.Diff(tt.want, rowsOf(g)); diff != "" {
				t.Errorf("rows mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"a", "c"}})
	AssignRows(g)
	if added := Split(g); added != 1 {
		t.Fatalf("Split() = %d, want 1", added)
	}
	if err := g.Check(); err != nil {
		t.Fatalf("Check() = %v", err)
	}
	v, ok := g.Node("a~1")
	if !ok {
		t.Fatal("virtual node a~1 missing")
	}
	want := dag.Node{ID: "a~1", Row: 1, Virtual: true, Origin: "a"}
	if diff := cmp.Diff(want, *v); diff != "" {
		t.Errorf("virtual node mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitAvoidsTakenIDs(t *testing.T) {
	g := build(t, []string{"a", "a~1", "c", "d"}, [][2]string{{"a", "a~1"}, {"a~1", "c"}, {"c", "d"}, {"a", "d"}})
	AssignRows(g)
	if added := Split(g); added != 2 {
		t.Fatalf("Split() = %d, want 2", added)
	}
	if err := g.Check(); err != nil {
		t.Fatalf("Check() = %v", err)
	}
	for _, id := range []string{"a~1.1", "a~2"} {
		if _, ok := g.Node(id); !ok {
			t.Errorf("virtual node %s missing", id)
		}
	}
}

func TestRank(t *testing.T) {
	g := build(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	got := Rank(g)
	if diff := cmp.Diff(Stats{Flipped: 1, Virtual: 1}, got); diff != "" {
		t.Errorf("Rank() mismatch (-want +got):\n%s", diff)
	}
	if err := g.Check(); err != nil {
		t.Errorf("Check() after Rank = %v", err)
	}
}

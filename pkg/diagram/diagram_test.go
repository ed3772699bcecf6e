package diagram

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	cgerrors "github.com/matzehuels/clustergraph/pkg/errors"
	"github.com/matzehuels/clustergraph/pkg/layout"
	"github.com/matzehuels/clustergraph/pkg/layout/layered"
	"github.com/matzehuels/clustergraph/pkg/topology"
)

const eps = 1e-6

// scenario has one category holding subcategories A (n1, n2) and B (n3),
// a standalone node n4, and one resolvable and one dangling relationship.
func scenario() *topology.Topology {
	return &topology.Topology{
		Nodes: []topology.Node{
			{ID: "n1", Label: "One"},
			{ID: "n2", Label: "Two"},
			{ID: "n3", Label: "Three"},
			{ID: "n4", Label: "Four"},
		},
		Edges: []topology.Edge{
			{ID: "e1", Source: "n1", Target: "n2"},
			{ID: "e2", Source: "n4", Target: "n3"},
		},
		Categories: []topology.Category{{ID: "cat1", Label: "Cat1"}},
		Subcategories: []topology.Subcategory{
			{ID: "subA", Label: "A", CategoryID: "cat1", NodeIDs: []string{"n1", "n2"}},
			{ID: "subB", Label: "B", CategoryID: "cat1", NodeIDs: []string{"n3"}},
		},
		SubcategoryRelationships: []topology.Relationship{
			{ID: "c2_relationship_1", From: "A", To: "B", Label: "uses"},
			{ID: "c2_relationship_2", From: "Missing", To: "B"},
		},
	}
}

// wide builds a topology with several categories, uneven subcategories,
// internal and crossing edges, and relationships between boxes.
func wide() *topology.Topology {
	t := &topology.Topology{}
	node := 0
	for c := range 3 {
		cat := fmt.Sprintf("cat%d", c)
		t.Categories = append(t.Categories, topology.Category{ID: cat, Label: cat})
		for s := range c + 2 {
			sub := topology.Subcategory{
				ID:         fmt.Sprintf("sub%d_%d", c, s),
				Label:      fmt.Sprintf("S%d.%d", c, s),
				CategoryID: cat,
			}
			for range s + 1 {
				id := fmt.Sprintf("n%d", node)
				node++
				t.Nodes = append(t.Nodes, topology.Node{ID: id})
				if len(sub.NodeIDs) > 0 {
					prev := sub.NodeIDs[len(sub.NodeIDs)-1]
					t.Edges = append(t.Edges, topology.Edge{ID: "e_" + prev + "_" + id, Source: prev, Target: id})
				}
				sub.NodeIDs = append(sub.NodeIDs, id)
			}
			t.Subcategories = append(t.Subcategories, sub)
		}
	}
	for i := range 3 {
		id := fmt.Sprintf("solo%d", i)
		t.Nodes = append(t.Nodes, topology.Node{ID: id})
		t.Edges = append(t.Edges, topology.Edge{ID: "e_" + id, Source: id, Target: "n0"})
	}
	t.Edges = append(t.Edges, topology.Edge{ID: "e_cross", Source: "n0", Target: fmt.Sprintf("n%d", node-1)})
	t.SubcategoryRelationships = []topology.Relationship{
		{ID: "c2_relationship_1", From: "S0.0", To: "S0.1", Label: "calls"},
		{ID: "c2_relationship_2", From: "S0.1", To: "S0.0", Label: "returns"},
	}
	t.CrossCategoryRelationships = []topology.Relationship{
		{ID: "cross_c1_c2_rel_1", From: "S0.1", To: "S2.3", Label: "feeds"},
		{ID: "cross_c1_c2_rel_2", From: "S1.2", To: "S2.0"},
	}
	return t
}

func newEngine() *Engine {
	return New(layered.New(), DefaultConfig())
}

func mustLayout(t *testing.T, e *Engine, topo *topology.Topology) *Diagram {
	t.Helper()
	d, err := e.Layout(context.Background(), topo)
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	return d
}

func TestLayoutScenario(t *testing.T) {
	d := mustLayout(t, newEngine(), scenario())

	a, okA := d.Subcategory("subA")
	b, okB := d.Subcategory("subB")
	cat, okC := d.Category("cat1")
	if !okA || !okB || !okC {
		t.Fatalf("missing boxes: A=%v B=%v cat1=%v", okA, okB, okC)
	}
	if !cat.Contains(a.Frame, eps) || !cat.Contains(b.Frame, eps) {
		t.Errorf("cat1 %+v does not contain A %+v and B %+v", cat.Frame, a.Frame, b.Frame)
	}
	if a.Overlaps(b.Frame) {
		t.Errorf("A %+v overlaps B %+v", a.Frame, b.Frame)
	}

	n1, _ := d.Node("n1")
	n2, _ := d.Node("n2")
	n3, _ := d.Node("n3")
	for _, n := range []Node{n1, n2} {
		if !a.Contains(n.Frame, eps) {
			t.Errorf("%s %+v outside A %+v", n.ID, n.Frame, a.Frame)
		}
	}
	if n1.Overlaps(n2.Frame) {
		t.Errorf("n1 overlaps n2")
	}
	if !b.Contains(n3.Frame, eps) {
		t.Errorf("n3 %+v outside B %+v", n3.Frame, b.Frame)
	}
	n4, ok := d.Node("n4")
	if !ok || n4.Subcategory != "" {
		t.Errorf("n4 = %+v, want standalone node", n4)
	}
	if n4.Overlaps(cat.Frame) {
		t.Errorf("standalone n4 %+v overlaps cat1 %+v", n4.Frame, cat.Frame)
	}

	wantEdges := []topology.Edge{
		{ID: "e1", Source: "n1", Target: "n2"},
		{ID: "e2", Source: "n4", Target: "n3"},
		{ID: "c2_relationship_1", Source: "subA", Target: "subB", Label: "uses"},
	}
	if diff := cmp.Diff(wantEdges, d.Edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
	if d.Stats.ResolvedRelationships != 1 || d.Stats.DroppedRelationships != 1 {
		t.Errorf("stats = %+v, want 1 resolved and 1 dropped", d.Stats)
	}
}

func TestLayoutSingleMemberBox(t *testing.T) {
	topo := &topology.Topology{
		Nodes:         []topology.Node{{ID: "n1"}},
		Subcategories: []topology.Subcategory{{ID: "s", NodeIDs: []string{"n1"}}},
	}
	d := mustLayout(t, newEngine(), topo)

	s, _ := d.Subcategory("s")
	if math.Abs(s.Width-230) > eps || math.Abs(s.Height-120) > eps {
		t.Errorf("box = %gx%g, want 230x120", s.Width, s.Height)
	}
	n, _ := d.Node("n1")
	want := Point{X: s.Position.X + 20, Y: s.Position.Y + 20}
	if math.Abs(n.Position.X-want.X) > eps || math.Abs(n.Position.Y-want.Y) > eps {
		t.Errorf("n1 at %+v, want %+v", n.Position, want)
	}
}

func TestLayoutPartition(t *testing.T) {
	topo := wide()
	d := mustLayout(t, newEngine(), topo)

	if len(d.Nodes) != len(topo.Nodes) {
		t.Fatalf("got %d nodes, want %d", len(d.Nodes), len(topo.Nodes))
	}
	seen := make(map[string]bool)
	for _, n := range d.Nodes {
		if seen[n.ID] {
			t.Errorf("node %q emitted twice", n.ID)
		}
		seen[n.ID] = true
	}
	owner := topo.Membership()
	for _, n := range d.Nodes {
		if n.Subcategory != owner[n.ID] {
			t.Errorf("node %q in %q, want %q", n.ID, n.Subcategory, owner[n.ID])
		}
	}
	if len(d.Subcategories) != len(topo.Subcategories) || len(d.Categories) != len(topo.Categories) {
		t.Errorf("got %d subcategories and %d categories", len(d.Subcategories), len(d.Categories))
	}
}

func TestLayoutContainment(t *testing.T) {
	d := mustLayout(t, newEngine(), wide())

	for _, n := range d.Nodes {
		if n.Subcategory == "" {
			continue
		}
		s, _ := d.Subcategory(n.Subcategory)
		if !s.Contains(n.Frame, eps) {
			t.Errorf("node %s %+v outside %s %+v", n.ID, n.Frame, s.ID, s.Frame)
		}
	}
	for _, s := range d.Subcategories {
		c, _ := d.Category(s.CategoryID)
		if !c.Contains(s.Frame, eps) {
			t.Errorf("subcategory %s %+v outside %s %+v", s.ID, s.Frame, c.ID, c.Frame)
		}
	}
	for i, a := range d.Subcategories {
		for _, b := range d.Subcategories[i+1:] {
			if a.Overlaps(b.Frame) {
				t.Errorf("subcategories %s and %s overlap", a.ID, b.ID)
			}
		}
	}
	for i, a := range d.Categories {
		for _, b := range d.Categories[i+1:] {
			if a.Overlaps(b.Frame) {
				t.Errorf("categories %s and %s overlap", a.ID, b.ID)
			}
		}
	}
}

func TestLayoutDeterministic(t *testing.T) {
	ignoreTiming := cmpopts.IgnoreFields(Stats{}, "InnerDuration", "MacroDuration", "ComposeDuration")
	first := mustLayout(t, newEngine(), wide())
	for i := range 3 {
		e := newEngine()
		e.Config.Workers = i + 1
		got := mustLayout(t, e, wide())
		if diff := cmp.Diff(first, got, ignoreTiming); diff != "" {
			t.Fatalf("run with %d workers differs (-first +got):\n%s", i+1, diff)
		}
	}
}

func TestLayoutEdgePreservation(t *testing.T) {
	topo := wide()
	d := mustLayout(t, newEngine(), topo)

	resolved, dropped := topo.ResolveRelationships()
	if len(d.Edges) != len(topo.Edges)+len(resolved) {
		t.Fatalf("got %d edges, want %d", len(d.Edges), len(topo.Edges)+len(resolved))
	}
	if diff := cmp.Diff(topo.Edges, d.Edges[:len(topo.Edges)]); diff != "" {
		t.Errorf("original edges changed (-want +got):\n%s", diff)
	}
	if dropped != 0 || d.Stats.DroppedRelationships != 0 {
		t.Errorf("dropped = %d, stats %d, want 0", dropped, d.Stats.DroppedRelationships)
	}
	for _, e := range d.Edges[len(topo.Edges):] {
		if _, ok := d.Subcategory(e.Source); !ok {
			t.Errorf("relationship %s source %q is not a subcategory", e.ID, e.Source)
		}
	}
}

func TestLayoutEmptySubcategory(t *testing.T) {
	topo := scenario()
	topo.Subcategories = append(topo.Subcategories, topology.Subcategory{ID: "subC", Label: "C", CategoryID: "cat1"})

	rec := &recorder{engine: layered.New()}
	d := mustLayout(t, New(rec, DefaultConfig()), topo)

	c, ok := d.Subcategory("subC")
	if !ok {
		t.Fatal("empty subcategory missing from output")
	}
	if c.Width != DefaultClusterPadding || c.Height != DefaultClusterPadding {
		t.Errorf("empty box = %gx%g, want padding only", c.Width, c.Height)
	}
	for _, n := range d.Nodes {
		if n.Subcategory == "subC" {
			t.Errorf("node %q placed in empty subcategory", n.ID)
		}
	}
	// Two non-empty inner layouts plus the macro layout.
	if len(rec.graphs) != 3 {
		t.Errorf("primitive invoked %d times, want 3", len(rec.graphs))
	}
	if d.Stats.EmptySubcategories != 1 {
		t.Errorf("EmptySubcategories = %d, want 1", d.Stats.EmptySubcategories)
	}
}

func TestLayoutPrimitiveInputs(t *testing.T) {
	rec := &recorder{engine: layered.New()}
	mustLayout(t, New(rec, DefaultConfig()), scenario())

	var macro *layout.Graph
	inner := make(map[string]*layout.Graph)
	for _, g := range rec.graphs {
		if g.Options.RankSep == DefaultMacroRankSep {
			macro = g
			continue
		}
		inner[g.Nodes[0].ID] = g
	}
	if macro == nil {
		t.Fatal("macro layout not invoked")
	}

	var order []string
	parents := make(map[string]string)
	for _, n := range macro.Nodes {
		order = append(order, n.ID)
		parents[n.ID] = n.Parent
	}
	if diff := cmp.Diff([]string{"n4", "cat1", "subA", "subB"}, order); diff != "" {
		t.Errorf("macro node order (-want +got):\n%s", diff)
	}
	if parents["subA"] != "cat1" || parents["subB"] != "cat1" || parents["n4"] != "" {
		t.Errorf("parents = %v", parents)
	}
	wantMacroEdges := []layout.Edge{{Source: "subA", Target: "subB", Label: "uses"}}
	if diff := cmp.Diff(wantMacroEdges, macro.Edges); diff != "" {
		t.Errorf("macro edges (-want +got):\n%s", diff)
	}

	a := inner["n1"]
	if a == nil || len(a.Nodes) != 2 {
		t.Fatalf("inner graph of A = %+v", a)
	}
	if diff := cmp.Diff([]layout.Edge{{Source: "n1", Target: "n2"}}, a.Edges); diff != "" {
		t.Errorf("inner edges of A (-want +got):\n%s", diff)
	}
	if b := inner["n3"]; b == nil || len(b.Edges) != 0 {
		t.Errorf("inner graph of B = %+v, want n3 without edges", b)
	}
}

func TestLayoutUnknownCategory(t *testing.T) {
	topo := scenario()
	topo.Subcategories[1].CategoryID = "nowhere"
	d := mustLayout(t, newEngine(), topo)

	b, ok := d.Subcategory("subB")
	if !ok {
		t.Fatal("subB missing")
	}
	if b.CategoryID != "nowhere" {
		t.Errorf("CategoryID = %q, want the input value", b.CategoryID)
	}
	cat, _ := d.Category("cat1")
	if cat.Contains(b.Frame, 0) {
		t.Errorf("subB %+v placed inside cat1 %+v", b.Frame, cat.Frame)
	}
}

func TestLayoutSkipsBadMembers(t *testing.T) {
	topo := scenario()
	topo.Subcategories[0].NodeIDs = []string{"n1", "ghost", "n2", "n1"}
	topo.Subcategories[1].NodeIDs = []string{"n3", "n2"}
	d := mustLayout(t, newEngine(), topo)

	if d.Stats.SkippedMembers != 3 {
		t.Errorf("SkippedMembers = %d, want 3", d.Stats.SkippedMembers)
	}
	if len(d.Nodes) != 4 {
		t.Errorf("got %d nodes, want 4", len(d.Nodes))
	}
	if n2, _ := d.Node("n2"); n2.Subcategory != "subA" {
		t.Errorf("n2 in %q, want first subcategory", n2.Subcategory)
	}
}

func TestLayoutOutputOrder(t *testing.T) {
	d := mustLayout(t, newEngine(), scenario())
	var ids []string
	for _, n := range d.Nodes {
		ids = append(ids, n.ID)
	}
	if diff := cmp.Diff([]string{"n1", "n2", "n3", "n4"}, ids); diff != "" {
		t.Errorf("node order (-want +got):\n%s", diff)
	}
}

func TestLayoutErrors(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name   string
		engine *Engine
		topo   *topology.Topology
		code   cgerrors.Code
	}{
		{"nil topology", newEngine(), nil, cgerrors.ErrCodeInvalidInput},
		{"no primitive", &Engine{Config: DefaultConfig()}, scenario(), cgerrors.ErrCodeInternal},
		{"bad config", &Engine{Layouter: layered.New(), Config: Config{}}, scenario(), cgerrors.ErrCodeInvalidConfig},
		{"primitive fails", New(failing{boom}, DefaultConfig()), scenario(), cgerrors.ErrCodeLayoutFailed},
		{"primitive canceled", New(failing{context.Canceled}, DefaultConfig()), scenario(), cgerrors.ErrCodeCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.engine.Layout(context.Background(), tt.topo)
			if !cgerrors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLayoutCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newEngine().Layout(ctx, scenario())
	if !cgerrors.Is(err, cgerrors.ErrCodeCanceled) {
		t.Errorf("err = %v, want CANCELED", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"zero width", func(c *Config) { c.NodeWidth = 0 }, false},
		{"negative padding", func(c *Config) { c.ClusterPadding = -1 }, false},
		{"bad rankdir", func(c *Config) { c.Inner.RankDir = "XY" }, false},
		{"macro tighter than inner", func(c *Config) { c.Macro.RankSep = 10 }, false},
		{"left to right", func(c *Config) { c.Macro.RankDir = layout.LeftRight }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
			if err != nil && !cgerrors.Is(err, cgerrors.ErrCodeInvalidConfig) {
				t.Errorf("code = %s, want INVALID_CONFIG", cgerrors.GetCode(err))
			}
		})
	}
}

// recorder wraps an engine and keeps every graph it is asked to lay out.
type recorder struct {
	engine layout.Engine
	mu     sync.Mutex
	graphs []*layout.Graph
}

func (r *recorder) Layout(ctx context.Context, g *layout.Graph) (*layout.Result, error) {
	r.mu.Lock()
	r.graphs = append(r.graphs, g)
	r.mu.Unlock()
	return r.engine.Layout(ctx, g)
}

type failing struct{ err error }

func (f failing) Layout(context.Context, *layout.Graph) (*layout.Result, error) {
	return nil, f.err
}

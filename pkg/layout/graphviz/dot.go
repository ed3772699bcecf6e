package graphviz

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/clustergraph/pkg/layout"
)

const pointsPerInch = 72

// names maps node ids to DOT identifiers and back.
type names struct {
	byID   map[string]string
	byName map[string]string
}

func (n *names) set(id, name string) {
	n.byID[id] = name
	n.byName[name] = id
}

type builder struct {
	g        *layout.Graph
	padding  float64
	children map[string][]string
	parent   map[string]string
	nodes    map[string]layout.Node
	names    names
	buf      bytes.Buffer
}

// ToDOT converts g to DOT. It also returns the mapping from synthetic DOT
// names back to node ids. clusterPadding is the cluster margin in points.
func ToDOT(g *layout.Graph, opts layout.Options, clusterPadding float64) (string, map[string]string) {
	b := &builder{
		g:        g,
		padding:  clusterPadding,
		children: g.Children(),
		parent:   make(map[string]string, len(g.Nodes)),
		nodes:    make(map[string]layout.Node, len(g.Nodes)),
		names:    names{byID: map[string]string{}, byName: map[string]string{}},
	}
	clusters, leaves := 0, 0
	for _, n := range g.Nodes {
		b.nodes[n.ID] = n
		b.parent[n.ID] = n.Parent
		if len(b.children[n.ID]) > 0 {
			b.names.set(n.ID, fmt.Sprintf("cluster_%d", clusters))
			clusters++
		} else {
			b.names.set(n.ID, fmt.Sprintf("n%d", leaves))
			leaves++
		}
	}

	b.buf.WriteString("digraph G {\n")
	fmt.Fprintf(&b.buf, "  rankdir=%s;\n", opts.RankDir)
	b.buf.WriteString("  compound=true;\n")
	b.buf.WriteString("  newrank=true;\n")
	fmt.Fprintf(&b.buf, "  nodesep=%s;\n", inches(opts.NodeSep))
	fmt.Fprintf(&b.buf, "  ranksep=%s;\n", inches(opts.RankSep))
	fmt.Fprintf(&b.buf, "  pad=\"%s,%s\";\n", inches(opts.MarginX), inches(opts.MarginY))
	b.buf.WriteString("  node [shape=box, fixedsize=true, label=\"\"];\n")
	b.buf.WriteString("  edge [arrowhead=normal];\n")
	b.buf.WriteString("\n")

	b.writeLevel("", 1)
	b.buf.WriteString("\n")
	b.writeEdges()
	b.buf.WriteString("}\n")
	return b.buf.String(), b.names.byName
}

func (b *builder) writeLevel(parent string, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, id := range b.children[parent] {
		name := b.names.byID[id]
		if kids := b.children[id]; len(kids) > 0 {
			fmt.Fprintf(&b.buf, "%ssubgraph %s {\n", indent, name)
			fmt.Fprintf(&b.buf, "%s  label=\"\";\n", indent)
			fmt.Fprintf(&b.buf, "%s  margin=%g;\n", indent, b.padding)
			b.writeLevel(id, depth+1)
			fmt.Fprintf(&b.buf, "%s}\n", indent)
			continue
		}
		n := b.nodes[id]
		fmt.Fprintf(&b.buf, "%s%s [width=%s, height=%s];\n", indent, name, inches(n.Width), inches(n.Height))
	}
}

func (b *builder) writeEdges() {
	for _, e := range b.g.Edges {
		if e.Source == e.Target || b.isAncestor(e.Source, e.Target) || b.isAncestor(e.Target, e.Source) {
			continue
		}
		var attrs []string
		src, dst := e.Source, e.Target
		if len(b.children[src]) > 0 {
			attrs = append(attrs, "ltail="+b.names.byID[src])
			src = b.firstLeaf(src)
		}
		if len(b.children[dst]) > 0 {
			attrs = append(attrs, "lhead="+b.names.byID[dst])
			dst = b.firstLeaf(dst)
		}
		if len(attrs) > 0 {
			fmt.Fprintf(&b.buf, "  %s -> %s [%s];\n", b.names.byID[src], b.names.byID[dst], strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&b.buf, "  %s -> %s;\n", b.names.byID[src], b.names.byID[dst])
		}
	}
}

// isAncestor reports whether a is a proper ancestor of id.
func (b *builder) isAncestor(a, id string) bool {
	for p := b.parent[id]; p != ""; p = b.parent[p] {
		if p == a {
			return true
		}
	}
	return false
}

// firstLeaf returns the first descendant of id that has no children.
func (b *builder) firstLeaf(id string) string {
	for len(b.children[id]) > 0 {
		id = b.children[id][0]
	}
	return id
}

func inches(v float64) string {
	return fmt.Sprintf("%.4f", v/pointsPerInch)
}

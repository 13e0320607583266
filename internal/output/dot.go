// # internal/output/dot.go
package output

import (
	"fmt"
	"interfacer/internal/engine/graph"
	"strings"
)

type DOTGenerator struct {
	graph *graph.ImportGraph
	root  string
}

func NewDOTGenerator(g *graph.ImportGraph, root string) *DOTGenerator {
	return &DOTGenerator{graph: g, root: root}
}

// Generate renders the batch import graph. Entry files and interface files
// are drawn in separate clusters; edges on a cycle (self-imports included)
// are highlighted.
func (d *DOTGenerator) Generate(cycles [][]string) (string, error) {
	var buf strings.Builder

	buf.WriteString("digraph imports {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=8, penwidth=1.2];\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.6;\n\n")

	cycleEdges := cycleEdgeSet(cycles)
	inCycle := cycleNodeSet(cycles)

	var entries, interfaces []graph.Node
	for _, n := range d.graph.Nodes() {
		if n.Entry {
			entries = append(entries, n)
		} else {
			interfaces = append(interfaces, n)
		}
	}

	buf.WriteString("  subgraph cluster_entries {\n")
	buf.WriteString("    label=\"Compiled Files\";\n")
	buf.WriteString("    style=filled;\n")
	buf.WriteString("    color=\"whitesmoke\";\n")
	buf.WriteString("    node [fillcolor=\"white\", style=\"rounded,filled\"];\n")
	for _, n := range entries {
		d.writeNode(&buf, "    ", n, inCycle[n.Path])
	}
	buf.WriteString("  }\n\n")

	buf.WriteString("  // Interface files\n")
	buf.WriteString("  node [fillcolor=\"gainsboro\", style=\"rounded,filled\", color=\"grey\"];\n")
	for _, n := range interfaces {
		d.writeNode(&buf, "  ", n, inCycle[n.Path])
	}
	buf.WriteString("\n")

	for _, e := range d.graph.Edges() {
		from := displayPath(d.root, e.From)
		to := displayPath(d.root, e.To)
		switch {
		case e.Self:
			buf.WriteString(fmt.Sprintf("  %q -> %q [color=\"darkorange\", penwidth=2.0, label=\"self as %s\"];\n", from, to, e.Alias))
		case cycleEdges[e.From] != nil && cycleEdges[e.From][e.To]:
			buf.WriteString(fmt.Sprintf("  %q -> %q [color=\"red\", penwidth=3.0, label=\"CYCLE as %s\"];\n", from, to, e.Alias))
		default:
			buf.WriteString(fmt.Sprintf("  %q -> %q [color=\"forestgreen\", label=\"as %s\"];\n", from, to, e.Alias))
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func (d *DOTGenerator) writeNode(buf *strings.Builder, indent string, n graph.Node, cyclic bool) {
	id := displayPath(d.root, n.Path)
	label := fmt.Sprintf("%s\\n%s", n.Module, id)
	if cyclic {
		buf.WriteString(fmt.Sprintf("%s%q [label=\"%s\", fillcolor=\"mistyrose\", color=\"red\", penwidth=2.0];\n", indent, id, label))
		return
	}
	buf.WriteString(fmt.Sprintf("%s%q [label=\"%s\", color=\"darkslategrey\"];\n", indent, id, label))
}

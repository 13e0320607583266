package output

import (
	"fmt"
	"interfacer/internal/engine/graph"
	"strings"
	"unicode"
)

type MermaidGenerator struct {
	graph *graph.ImportGraph
	root  string
}

func NewMermaidGenerator(g *graph.ImportGraph, root string) *MermaidGenerator {
	return &MermaidGenerator{graph: g, root: root}
}

func (m *MermaidGenerator) Generate(cycles [][]string) (string, error) {
	var b strings.Builder
	b.WriteString("%%{init: {'flowchart': {'nodeSpacing': 80, 'rankSpacing': 110, 'curve': 'basis'}}}%%\n")
	b.WriteString("flowchart LR\n")

	nodes := m.graph.Nodes()
	paths := make([]string, len(nodes))
	for i, n := range nodes {
		paths[i] = n.Path
	}
	ids := makeMermaidIDs(paths)
	inCycle := cycleNodeSet(cycles)
	cycleEdges := cycleEdgeSet(cycles)

	var entryIDs, cycleIDs []string
	for _, n := range nodes {
		label := escapeMermaidLabel(fmt.Sprintf("%s\\n%s", n.Module, displayPath(m.root, n.Path)))
		b.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", ids[n.Path], label))
		if n.Entry {
			entryIDs = append(entryIDs, ids[n.Path])
		}
		if inCycle[n.Path] {
			cycleIDs = append(cycleIDs, ids[n.Path])
		}
	}
	if len(entryIDs) > 0 {
		b.WriteString("  classDef entryNode fill:#f4f8ff,stroke:#2f5597,stroke-width:1px;\n")
		b.WriteString("  class " + strings.Join(entryIDs, ",") + " entryNode;\n")
	}
	if len(cycleIDs) > 0 {
		b.WriteString("  classDef cycleNode fill:#ffecec,stroke:#cc0000,stroke-width:2px;\n")
		b.WriteString("  class " + strings.Join(cycleIDs, ",") + " cycleNode;\n")
	}

	b.WriteString("\n")
	var cycleLinks []int
	for i, e := range m.graph.Edges() {
		label := escapeMermaidLabel(e.Alias)
		if e.Self || (cycleEdges[e.From] != nil && cycleEdges[e.From][e.To]) {
			cycleLinks = append(cycleLinks, i)
		}
		b.WriteString(fmt.Sprintf("  %s -->|%s| %s\n", ids[e.From], label, ids[e.To]))
	}
	if len(cycleLinks) > 0 {
		b.WriteString(fmt.Sprintf("\n  linkStyle %s stroke:#cc0000,stroke-width:3px;\n", joinInts(cycleLinks)))
	}

	return b.String(), nil
}

func sanitizeMermaidID(name string) string {
	if name == "" {
		return "m"
	}
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "m"
	}
	if unicode.IsDigit(rune(out[0])) {
		return "m_" + out
	}
	return out
}

func makeMermaidIDs(names []string) map[string]string {
	ids := make(map[string]string, len(names))
	used := make(map[string]int, len(names))
	for _, name := range names {
		base := sanitizeMermaidID(name)
		idx := used[base]
		used[base] = idx + 1
		if idx == 0 {
			ids[name] = base
			continue
		}
		ids[name] = fmt.Sprintf("%s_%d", base, idx+1)
	}
	return ids
}

func escapeMermaidLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ",")
}

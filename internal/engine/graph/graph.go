package graph

import (
	"interfacer/internal/engine/parser"
	"interfacer/internal/shared/observability"
	"sort"
	"sync"
)

// Node is one file taking part in a batch, either as an entry being compiled
// or as a resolved interface source.
type Node struct {
	Path   string
	Module string
	Entry  bool
}

// ImportEdge records one resolved import binding. Self is set when the
// importing file resolved to itself.
type ImportEdge struct {
	From     string
	To       string
	Alias    string
	Location parser.Location
	Self     bool
}

// ImportGraph collects the resolved imports of one batch. Safe for
// concurrent use by the driver's workers.
type ImportGraph struct {
	mu sync.RWMutex

	nodes      map[string]*Node
	edges      []ImportEdge
	imports    map[string]map[string]bool // from -> to
	importedBy map[string]map[string]bool // to -> from
}

func NewImportGraph() *ImportGraph {
	return &ImportGraph{
		nodes:      make(map[string]*Node),
		imports:    make(map[string]map[string]bool),
		importedBy: make(map[string]map[string]bool),
	}
}

// AddFile registers path. Once a file is marked as an entry it stays one.
func (g *ImportGraph) AddFile(path, module string, entry bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addFileLocked(path, module, entry)
	g.publishLocked()
}

func (g *ImportGraph) addFileLocked(path, module string, entry bool) {
	if n, ok := g.nodes[path]; ok {
		n.Entry = n.Entry || entry
		if n.Module == "" {
			n.Module = module
		}
		return
	}
	g.nodes[path] = &Node{Path: path, Module: module, Entry: entry}
}

// AddEdge records an import; unknown endpoints are added as non-entry nodes.
func (g *ImportGraph) AddEdge(edge ImportEdge) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.addFileLocked(edge.From, "", false)
	g.addFileLocked(edge.To, "", false)
	edge.Self = edge.Self || edge.From == edge.To
	g.edges = append(g.edges, edge)

	if g.imports[edge.From] == nil {
		g.imports[edge.From] = make(map[string]bool)
	}
	g.imports[edge.From][edge.To] = true
	if g.importedBy[edge.To] == nil {
		g.importedBy[edge.To] = make(map[string]bool)
	}
	g.importedBy[edge.To][edge.From] = true

	g.publishLocked()
}

func (g *ImportGraph) publishLocked() {
	observability.GraphNodes.Set(float64(len(g.nodes)))
	observability.GraphEdges.Set(float64(len(g.edges)))
}

// Nodes returns copies of all nodes sorted by path.
func (g *ImportGraph) Nodes() []Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (g *ImportGraph) Node(path string) (Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	n, ok := g.nodes[path]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Edges returns all edges ordered by importing file, then source position.
func (g *ImportGraph) Edges() []ImportEdge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := append([]ImportEdge(nil), g.edges...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.Location.Line != b.Location.Line {
			return a.Location.Line < b.Location.Line
		}
		return a.Location.Column < b.Location.Column
	})
	return out
}

// Imports lists the files that from imports, sorted.
func (g *ImportGraph) Imports(from string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return sortedKeys(g.imports[from])
}

// Importers lists the files importing to, sorted.
func (g *ImportGraph) Importers(to string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return sortedKeys(g.importedBy[to])
}

func (g *ImportGraph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}

func (g *ImportGraph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// # internal/output/tsv.go
package output

import (
	"fmt"
	"interfacer/internal/engine/graph"
	"strings"
)

type TSVGenerator struct {
	graph *graph.ImportGraph
	root  string
}

func NewTSVGenerator(g *graph.ImportGraph, root string) *TSVGenerator {
	return &TSVGenerator{graph: g, root: root}
}

// Generate lists every alias binding of the batch, one row per import.
func (t *TSVGenerator) Generate() (string, error) {
	var buf strings.Builder

	buf.WriteString("File\tAlias\tTarget\tLine\tColumn\tSelf\n")
	for _, e := range t.graph.Edges() {
		buf.WriteString(fmt.Sprintf("%s\t%s\t%s\t%d\t%d\t%t\n",
			displayPath(t.root, e.From),
			e.Alias,
			displayPath(t.root, e.To),
			e.Location.Line,
			e.Location.Column,
			e.Self,
		))
	}

	return buf.String(), nil
}

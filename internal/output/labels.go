package output

import (
	"interfacer/internal/shared/util"
	"path/filepath"
)

// displayPath shortens path to its form relative to root when it lies
// inside root. Files outside the root keep their absolute path.
func displayPath(root, path string) string {
	if root == "" || !util.IsWithin(path, root) {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func cycleEdgeSet(cycles [][]string) map[string]map[string]bool {
	edges := make(map[string]map[string]bool)
	for _, cycle := range cycles {
		for i := 0; i < len(cycle); i++ {
			from := cycle[i]
			to := cycle[(i+1)%len(cycle)]
			if edges[from] == nil {
				edges[from] = make(map[string]bool)
			}
			edges[from][to] = true
		}
	}
	return edges
}

func cycleNodeSet(cycles [][]string) map[string]bool {
	nodes := make(map[string]bool)
	for _, cycle := range cycles {
		for _, n := range cycle {
			nodes[n] = true
		}
	}
	return nodes
}

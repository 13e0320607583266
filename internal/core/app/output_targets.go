package app

import (
	"interfacer/internal/core/app/helpers"
	"path/filepath"
)

var artifactSuffixes = map[string]string{
	"abi":       ".abi.json",
	"interface": ".interface.vy",
	"imports":   "imports.tsv",
	"dot":       "imports.dot",
	"mermaid":   "imports.mmd",
}

// artifactPath places per-file artifacts next to each other under outDir,
// mirroring the file's location below root. Batch artifacts sit at outDir.
func artifactPath(outDir, root string, art Artifact) string {
	suffix := artifactSuffixes[art.Format]
	if art.Entry == "" {
		return filepath.Join(outDir, suffix)
	}
	return filepath.Join(outDir, helpers.ArtifactStem(root, art.source)+suffix)
}

package helpers

import (
	"interfacer/internal/shared/util"
	"path/filepath"
	"strings"
)

func ResolveOutputPath(path, root string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

// ArtifactStem names the artifacts of one compiled file: its path relative
// to root without the extension, or the bare file name when it lies outside.
func ArtifactStem(root, path string) string {
	stem := filepath.Base(path)
	if root != "" && util.IsWithin(path, root) {
		if rel, err := filepath.Rel(root, path); err == nil {
			stem = rel
		}
	}
	return strings.TrimSuffix(stem, filepath.Ext(stem))
}

func WriteArtifact(path, content string) error {
	return util.WriteStringWithDirs(path, content, 0o644)
}

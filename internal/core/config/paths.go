package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type ResolvedPaths struct {
	ProjectRoot    string
	InterfaceRoots []string
	OutputDir      string
}

// ResolvePaths makes every configured path absolute. Relative project roots
// are taken from cwd; interface roots and the output directory from the
// project root.
func ResolvePaths(cfg *Config, cwd string) (ResolvedPaths, error) {
	if strings.TrimSpace(cwd) == "" {
		return ResolvedPaths{}, fmt.Errorf("cwd must not be empty")
	}

	projectRoot := ResolveRelative(cwd, cfg.Paths.ProjectRoot)

	roots := make([]string, 0, len(cfg.Paths.InterfaceRoots))
	for _, root := range cfg.Paths.InterfaceRoots {
		roots = append(roots, ResolveRelative(projectRoot, root))
	}

	resolved := ResolvedPaths{
		ProjectRoot:    projectRoot,
		InterfaceRoots: roots,
	}
	if dir := strings.TrimSpace(cfg.Output.Dir); dir != "" {
		resolved.OutputDir = ResolveRelative(projectRoot, dir)
	}
	return resolved, nil
}

func ResolveRelative(base, value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	return filepath.Clean(filepath.Join(base, raw))
}

// FindConfigFile walks up from start looking for DefaultConfigFile and
// returns "" when none exists.
func FindConfigFile(start string) string {
	abs, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	dir := abs
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		dir = filepath.Dir(abs)
	}
	for {
		candidate := filepath.Join(dir, DefaultConfigFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePaths_DefaultLayout(t *testing.T) {
	root := t.TempDir()

	cfg := DefaultConfig()
	got, err := ResolvePaths(cfg, root)
	if err != nil {
		t.Fatal(err)
	}
	if got.ProjectRoot != filepath.Clean(root) {
		t.Fatalf("expected project root %q, got %q", root, got.ProjectRoot)
	}
	if len(got.InterfaceRoots) != 1 || got.InterfaceRoots[0] != filepath.Join(root, "interfaces") {
		t.Fatalf("unexpected interface roots: %v", got.InterfaceRoots)
	}
	if got.OutputDir != "" {
		t.Fatalf("expected no output dir, got %q", got.OutputDir)
	}
}

func TestResolvePaths_AbsoluteOverrides(t *testing.T) {
	root := t.TempDir()
	shared := filepath.Join(t.TempDir(), "shared")

	cfg := DefaultConfig()
	cfg.Paths.ProjectRoot = "project"
	cfg.Paths.InterfaceRoots = []string{shared, "local"}
	cfg.Output.Dir = "out"

	got, err := ResolvePaths(cfg, root)
	if err != nil {
		t.Fatal(err)
	}
	project := filepath.Join(root, "project")
	if got.ProjectRoot != project {
		t.Fatalf("expected %q, got %q", project, got.ProjectRoot)
	}
	if got.InterfaceRoots[0] != shared || got.InterfaceRoots[1] != filepath.Join(project, "local") {
		t.Fatalf("unexpected interface roots: %v", got.InterfaceRoots)
	}
	if got.OutputDir != filepath.Join(project, "out") {
		t.Fatalf("unexpected output dir: %q", got.OutputDir)
	}
}

func TestResolvePaths_EmptyCwd(t *testing.T) {
	if _, err := ResolvePaths(DefaultConfig(), " "); err == nil {
		t.Fatal("expected error for empty cwd")
	}
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "contracts", "tokens")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(nested); got != "" && filepath.Dir(got) == nested {
		t.Fatalf("unexpected config file in fresh tree: %q", got)
	}

	cfgPath := filepath.Join(root, DefaultConfigFile)
	if err := os.WriteFile(cfgPath, []byte("version = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(nested); got != cfgPath {
		t.Fatalf("expected %q, got %q", cfgPath, got)
	}
}

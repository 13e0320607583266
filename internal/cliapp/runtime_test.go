package cliapp

import (
	"bytes"
	"interfacer/internal/core/config"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), versionString) {
		t.Fatalf("expected version in output, got %q", stdout.String())
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"explode"}, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
}

func TestRun_Compile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"contracts/Token.vy":  "import Bar as Bar\n\n@external\ndef mint(to: address) -> bool:\n    return True\n",
		"interfaces/Bar.json": `[{"type":"function","name":"bar","inputs":[],"outputs":[],"stateMutability":"nonpayable"}]`,
	})
	cfgPath := filepath.Join(root, config.DefaultConfigFile)
	writeFiles(t, root, map[string]string{config.DefaultConfigFile: "[paths]\nproject_root = \".\"\n"})

	var stdout, stderr bytes.Buffer
	code := run([]string{"compile", "--config", cfgPath, "--root", root, "-f", "interface", filepath.Join(root, "contracts")}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d\nstderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "def mint(to: address) -> bool: nonpayable") {
		t.Fatalf("expected rendered interface, got %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "1 file(s), 0 failed") {
		t.Fatalf("expected summary, got %q", stderr.String())
	}
}

func TestRun_CompileFailure(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"Bad.vy": "from .. import Outside\n"})

	var stdout, stderr bytes.Buffer
	code := run([]string{"compile", "--root", root, filepath.Join(root, "Bad.vy")}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "MODULE_NOT_FOUND") {
		t.Fatalf("expected the failure to be listed, got %q", stderr.String())
	}
}

func TestRun_CompileWritesArtifacts(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"Pool.vy": "@external\ndef swap() -> uint256:\n    return 0\n"})
	out := filepath.Join(root, "build")

	var stdout, stderr bytes.Buffer
	code := run([]string{"compile", "--root", root, "-o", out, "-f", "abi,imports", filepath.Join(root, "Pool.vy")}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d\nstderr: %s", code, stderr.String())
	}
	for _, name := range []string{"Pool.abi.json", "imports.tsv"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	if stdout.Len() != 0 {
		t.Errorf("written artifacts should not be echoed, got %q", stdout.String())
	}
}

func TestRun_Locate(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"a/Foo.json": "[]",
		"b/Foo.vy":   "",
	})

	var stdout, stderr bytes.Buffer
	code := run([]string{"locate", "Foo", filepath.Join(root, "a"), filepath.Join(root, "b")}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr.String())
	}
	if strings.TrimSpace(stdout.String()) != filepath.Join(root, "a", "Foo.json") {
		t.Fatalf("unexpected location %q", stdout.String())
	}

	stdout.Reset()
	if code := run([]string{"locate", "Missing", root}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1 for a missing module, got %d", code)
	}
}

func TestApplyCompileOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	opts := &cliOptions{
		root:           "proj",
		formats:        []string{"dot"},
		outDir:         "out",
		workers:        4,
		failFast:       true,
		interfaceRoots: []string{"vendor"},
	}
	applyCompileOptions(opts, cfg, "/work")

	if cfg.Paths.ProjectRoot != filepath.Join("/work", "proj") {
		t.Errorf("unexpected root %q", cfg.Paths.ProjectRoot)
	}
	if cfg.Output.Dir != filepath.Join("/work", "out") || cfg.Batch.Workers != 4 || !cfg.Batch.FailFast {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if got := cfg.Paths.InterfaceRoots[len(cfg.Paths.InterfaceRoots)-1]; got != filepath.Join("/work", "vendor") {
		t.Errorf("unexpected interface root %q", got)
	}
	if len(cfg.Output.Formats) != 1 || cfg.Output.Formats[0] != "dot" {
		t.Errorf("unexpected formats %v", cfg.Output.Formats)
	}
}

func TestLoadConfig_DefaultsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	cfg, err := loadConfig("", dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Paths.ProjectRoot != dir {
		t.Errorf("expected project root %q, got %q", dir, cfg.Paths.ProjectRoot)
	}
	if len(cfg.Paths.InterfaceRoots) != 1 || cfg.Paths.InterfaceRoots[0] != config.DefaultInterfaceRoot {
		t.Errorf("unexpected interface roots %v", cfg.Paths.InterfaceRoots)
	}
}

package app

import (
	"context"
	"interfacer/internal/core/config"
	"interfacer/internal/core/errors"
	"interfacer/internal/shared/util"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const tokenCode = `
import Bar as Bar

total: public(uint256)

@view
@external
def balanceOf(owner: address) -> uint256:
    return 0
`

const barABI = `[{"type":"function","name":"bar","inputs":[],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"}]`

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root, err := util.CanonicalPath(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		if err := util.WriteStringWithDirs(filepath.Join(root, name), content, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func newTestApp(t *testing.T, mutate func(*config.Config)) *App {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	a, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestCompileFiles(t *testing.T) {
	root := writeProject(t, map[string]string{
		"contracts/Token.vy":  tokenCode,
		"interfaces/Bar.json": barABI,
	})
	a := newTestApp(t, nil)

	entry := filepath.Join(root, "contracts", "Token.vy")
	res, err := a.CompileFiles(context.Background(), []string{entry}, root, []string{"abi", "interface", "imports"})
	if err != nil {
		t.Fatalf("CompileFiles: %v", err)
	}

	abi, ok := res.Artifact(entry, "abi")
	if !ok {
		t.Fatal("missing abi artifact")
	}
	if !strings.Contains(abi.Content, `"name": "balanceOf"`) || !strings.Contains(abi.Content, `"name": "total"`) {
		t.Errorf("unexpected abi:\n%s", abi.Content)
	}

	text, ok := res.Artifact(entry, "interface")
	if !ok {
		t.Fatal("missing interface artifact")
	}
	if !strings.Contains(text.Content, "interface Token:") || !strings.Contains(text.Content, "def balanceOf(owner: address) -> uint256: view") {
		t.Errorf("unexpected interface:\n%s", text.Content)
	}

	tsv, ok := res.Artifact("", "imports")
	if !ok {
		t.Fatal("missing imports artifact")
	}
	if !strings.Contains(tsv.Content, "contracts/Token.vy\tBar\tinterfaces/Bar.json\t2\t") {
		t.Errorf("unexpected imports:\n%s", tsv.Content)
	}
	if abi.Path != "" {
		t.Errorf("nothing should be written without an output dir, got %s", abi.Path)
	}
}

func TestCompileFiles_WritesArtifacts(t *testing.T) {
	root := writeProject(t, map[string]string{
		"contracts/Token.vy":  tokenCode,
		"interfaces/Bar.json": barABI,
	})
	a := newTestApp(t, func(cfg *config.Config) {
		cfg.Output.Dir = "build"
		cfg.Output.Formats = []string{"abi", "dot"}
	})

	res, err := a.CompileFiles(context.Background(), []string{filepath.Join(root, "contracts", "Token.vy")}, root, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Artifacts) != 2 {
		t.Fatalf("expected 2 artifacts, got %d", len(res.Artifacts))
	}

	for _, want := range []string{
		filepath.Join(root, "build", "contracts", "Token.abi.json"),
		filepath.Join(root, "build", "imports.dot"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Errorf("expected %s to be written: %v", want, err)
		}
	}
}

func TestCompileFiles_UnknownFormat(t *testing.T) {
	a := newTestApp(t, nil)
	_, err := a.CompileFiles(context.Background(), nil, t.TempDir(), []string{"bytecode"})
	if !errors.IsCode(err, errors.CodeValidationError) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestCompileFiles_UnresolvedImport(t *testing.T) {
	root := writeProject(t, map[string]string{
		"Good.vy": "@external\ndef ok() -> bool:\n    return True\n",
		"Bad.vy":  "import Missing as Missing\n",
	})
	a := newTestApp(t, nil)

	good := filepath.Join(root, "Good.vy")
	bad := filepath.Join(root, "Bad.vy")
	res, err := a.CompileFiles(context.Background(), []string{good, bad}, root, []string{"abi"})
	if !errors.IsCode(err, errors.CodeModuleNotFound) {
		t.Fatalf("expected MODULE_NOT_FOUND, got %v", err)
	}
	if res == nil || res.Batch.Failed() != 1 {
		t.Fatalf("expected a partial result with one failure, got %+v", res)
	}
	if _, ok := res.Artifact(good, "abi"); !ok {
		t.Error("expected an artifact for the file that resolved")
	}
	if _, ok := res.Artifact(bad, "abi"); ok {
		t.Error("expected no artifact for the failed file")
	}
}

func TestCompileFiles_MissingRoot(t *testing.T) {
	a := newTestApp(t, nil)
	res, err := a.CompileFiles(context.Background(), nil, filepath.Join(t.TempDir(), "gone"), nil)
	if res != nil || !errors.IsCode(err, errors.CodeModuleNotFound) {
		t.Fatalf("expected batch-level MODULE_NOT_FOUND, got %v / %v", res, err)
	}
}

func TestCompileFiles_ReportsSelfImportCycle(t *testing.T) {
	root := writeProject(t, map[string]string{
		"Meta.vy": "import Meta as Meta\n\n@external\ndef foo() -> uint256:\n    return 1\n",
	})
	a := newTestApp(t, nil)

	res, err := a.CompileFiles(context.Background(), []string{filepath.Join(root, "Meta.vy")}, root, []string{"mermaid"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Cycles) != 1 {
		t.Fatalf("expected the self import as a cycle, got %v", res.Cycles)
	}
	if art, ok := res.Artifact("", "mermaid"); !ok || !strings.Contains(art.Content, "flowchart LR") {
		t.Errorf("unexpected mermaid artifact %+v", art)
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Formats = []string{"pdf"}
	if _, err := New(cfg, nil); !errors.IsCode(err, errors.CodeValidationError) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}

	cfg = config.DefaultConfig()
	cfg.Batch.Exclude = []string{"[oops"}
	if _, err := New(cfg, nil); err == nil {
		t.Fatal("expected invalid glob to be rejected")
	}
}

func TestExpandEntries(t *testing.T) {
	root := writeProject(t, map[string]string{
		"contracts/Token.vy":      "",
		"contracts/test_Token.vy": "",
		"contracts/Token.json":    "[]",
		"vendor/Lib.vy":           "",
		"tokens/Pool.vy":          "",
		"README.md":               "",
	})

	a := newTestApp(t, func(cfg *config.Config) {
		cfg.Batch.Exclude = []string{"test_*", "vendor"}
	})
	files, err := a.ExpandEntries([]string{root})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(root, "contracts", "Token.vy"),
		filepath.Join(root, "tokens", "Pool.vy"),
	}
	if strings.Join(files, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", files, want)
	}

	a = newTestApp(t, func(cfg *config.Config) {
		cfg.Batch.Include = []string{"tokens/*"}
	})
	files, err = a.ExpandEntries([]string{root, filepath.Join(root, "contracts", "Token.vy")})
	if err != nil {
		t.Fatal(err)
	}
	want = []string{
		filepath.Join(root, "contracts", "Token.vy"),
		filepath.Join(root, "tokens", "Pool.vy"),
	}
	if strings.Join(files, ",") != strings.Join(want, ",") {
		t.Fatalf("got %v, want %v", files, want)
	}
}

func TestExpandEntries_MissingPath(t *testing.T) {
	a := newTestApp(t, nil)
	_, err := a.ExpandEntries([]string{filepath.Join(t.TempDir(), "nope")})
	if !errors.IsCode(err, errors.CodeModuleNotFound) {
		t.Fatalf("expected MODULE_NOT_FOUND, got %v", err)
	}
}

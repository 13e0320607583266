package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsWithin(t *testing.T) {
	t.Parallel()

	root := filepath.Join(string(filepath.Separator), "p")
	cases := []struct {
		name     string
		target   string
		expected bool
	}{
		{name: "Exact", target: root, expected: true},
		{name: "Nested", target: filepath.Join(root, "contracts", "sub"), expected: true},
		{name: "Parent", target: string(filepath.Separator), expected: false},
		{name: "Neighbor", target: filepath.Join(string(filepath.Separator), "pp"), expected: false},
		{name: "DotDotPrefixedName", target: filepath.Join(root, "..foo"), expected: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := IsWithin(tc.target, root); got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestCanonicalPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	realDir := filepath.Join(dir, "real")
	if err := os.MkdirAll(realDir, 0o755); err != nil {
		t.Fatal(err)
	}
	realCanon, err := CanonicalPath(realDir)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("CleansDotDot", func(t *testing.T) {
		got, err := CanonicalPath(filepath.Join(realDir, "x", ".."))
		if err != nil {
			t.Fatal(err)
		}
		if got != realCanon {
			t.Fatalf("expected %q, got %q", realCanon, got)
		}
	})

	t.Run("MissingSuffixKept", func(t *testing.T) {
		got, err := CanonicalPath(filepath.Join(realDir, "missing", "deeper"))
		if err != nil {
			t.Fatal(err)
		}
		if got != filepath.Join(realCanon, "missing", "deeper") {
			t.Fatalf("unexpected canonical path %q", got)
		}
	})

	t.Run("Symlink", func(t *testing.T) {
		link := filepath.Join(dir, "link")
		if err := os.Symlink(realDir, link); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
		got, err := CanonicalPath(filepath.Join(link, "Bar.vy"))
		if err != nil {
			t.Fatal(err)
		}
		if got != filepath.Join(realCanon, "Bar.vy") {
			t.Fatalf("expected symlink to be evaluated, got %q", got)
		}
	})
}

func TestWriteFileWithDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "file.txt")
	content := []byte("hello")

	if err := WriteFileWithDirs(path, content, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(got) != string(content) {
		t.Fatalf("expected %q, got %q", string(content), string(got))
	}
}

func TestWriteStringWithDirs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "file.txt")

	if err := WriteStringWithDirs(path, "hello", 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("expected %q, got %q", "hello", string(got))
	}
}

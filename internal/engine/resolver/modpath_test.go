package resolver

import (
	"interfacer/internal/core/errors"
	"interfacer/internal/engine/parser"
	"testing"
)

func TestFromImport(t *testing.T) {
	mp := FromImport(parser.Import{Level: 2, Package: []string{"contracts", "other"}, Name: "Bar", Alias: "B"})

	if mp.Name() != "Bar" || mp.Alias != "B" || !mp.IsRelative() {
		t.Fatalf("unexpected module path %+v", mp)
	}
	if dirs := mp.Dirs(); len(dirs) != 2 || dirs[1] != "other" {
		t.Fatalf("unexpected dirs %v", dirs)
	}
	if mp.String() != "..contracts.other.Bar" {
		t.Fatalf("unexpected rendering %q", mp.String())
	}
}

func TestModulePath_NegativeLevelRendersWithoutDots(t *testing.T) {
	mp := ModulePath{Level: -1, Segments: []string{"Bar"}}
	if mp.String() != "Bar" {
		t.Fatalf("unexpected rendering %q", mp.String())
	}
	err := mp.Validate()
	if !errors.IsCode(err, errors.CodeModuleNotFound) {
		t.Fatalf("expected MODULE_NOT_FOUND, got %v", err)
	}
}

func TestModulePath_Validate(t *testing.T) {
	cases := []struct {
		name string
		mp   ModulePath
		ok   bool
	}{
		{"absolute", ModulePath{Segments: []string{"interfaces", "Bar"}}, true},
		{"relative", ModulePath{Level: 3, Segments: []string{"Bar"}}, true},
		{"empty", ModulePath{Level: 1}, false},
		{"negative level", ModulePath{Level: -1, Segments: []string{"Bar"}}, false},
		{"dotdot segment", ModulePath{Segments: []string{"..", "Bar"}}, false},
		{"separator", ModulePath{Segments: []string{"a/b"}}, false},
		{"leading digit", ModulePath{Segments: []string{"1Bar"}}, false},
		{"underscore", ModulePath{Segments: []string{"_private_2"}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.mp.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.ok && !errors.IsCode(err, errors.CodeModuleNotFound) {
				t.Fatalf("expected MODULE_NOT_FOUND, got %v", err)
			}
		})
	}
}

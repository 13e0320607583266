package resolver

import (
	"interfacer/internal/core/errors"
	"interfacer/internal/engine/parser"
	"strings"
)

// ModulePath is the parsed target of an import before any filesystem work.
// Level 0 is absolute; level 1 is the importer's directory and every further
// level ascends one parent.
type ModulePath struct {
	Level    int
	Segments []string
	Alias    string
}

func FromImport(imp parser.Import) ModulePath {
	return ModulePath{
		Level:    imp.Level,
		Segments: imp.Segments(),
		Alias:    imp.Alias,
	}
}

// Name is the bare module name, the last segment.
func (m ModulePath) Name() string {
	if len(m.Segments) == 0 {
		return ""
	}
	return m.Segments[len(m.Segments)-1]
}

// Dirs returns the subdirectory chain in front of the module name.
func (m ModulePath) Dirs() []string {
	if len(m.Segments) == 0 {
		return nil
	}
	return m.Segments[:len(m.Segments)-1]
}

func (m ModulePath) IsRelative() bool { return m.Level > 0 }

func (m ModulePath) String() string {
	return strings.Repeat(".", max(m.Level, 0)) + strings.Join(m.Segments, ".")
}

// Validate rejects paths that could address anything other than a plain
// file below a candidate directory. Invalid paths report MODULE_NOT_FOUND.
func (m ModulePath) Validate() error {
	if m.Level < 0 {
		return notFound(m, "negative import level")
	}
	if len(m.Segments) == 0 {
		return notFound(m, "empty module path")
	}
	for _, seg := range m.Segments {
		if !isIdentifier(seg) {
			return errors.AddContext(notFound(m, "invalid module path segment"), "segment", seg)
		}
	}
	return nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func notFound(m ModulePath, msg string) error {
	err := errors.Newf(errors.CodeModuleNotFound, "%s: %s", msg, m.String())
	return errors.AddContext(err, errors.CtxModule, m.String())
}

package parser

import (
	"strings"
	"time"
)

// File is the syntax summary of one contract source file: the imports it
// declares and every top-level function and state variable it defines.
type File struct {
	Path      string
	Imports   []Import
	Functions []Function
	StateVars []StateVar
	HasErrors bool // tree-sitter reported ERROR/MISSING nodes
	ParsedAt  time.Time
}

// Import is one bound name of an import statement. A statement such as
// "from . import A, B" produces two imports sharing Level and Package.
type Import struct {
	Level    int      // leading dots; 0 for absolute imports
	Package  []string // segments before the imported name
	Name     string   // bare module name
	Alias    string   // bound name in the importing file
	Raw      string   // statement text
	Location Location
}

// Segments returns the package segments followed by the module name.
func (i Import) Segments() []string {
	out := make([]string, 0, len(i.Package)+1)
	out = append(out, i.Package...)
	return append(out, i.Name)
}

// Target renders the import target the way it was written ("..a.B").
func (i Import) Target() string {
	return strings.Repeat(".", i.Level) + strings.Join(i.Segments(), ".")
}

type Function struct {
	Name       string
	Params     []Param
	Returns    string // raw return annotation, "" when absent
	Decorators []string
	Location   Location
}

// HasDecorator reports whether the function carries the bare decorator name.
func (f Function) HasDecorator(name string) bool {
	for _, d := range f.Decorators {
		if d == name {
			return true
		}
	}
	return false
}

type Param struct {
	Name string
	Type string
}

// StateVar is a top-level annotated declaration such as "total: public(uint256)".
type StateVar struct {
	Name     string
	Type     string
	Location Location
}

type Location struct {
	File   string
	Line   int
	Column int
}

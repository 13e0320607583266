package ports

import (
	"interfacer/internal/engine/parser"
)

// SourceParser abstracts contract source parsing and source-file checks.
type SourceParser interface {
	ParseFile(path string, content []byte) (*parser.File, error)
	IsSupportedPath(filePath string) bool
}

var _ SourceParser = (*parser.Parser)(nil)

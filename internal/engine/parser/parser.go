package parser

import (
	"interfacer/internal/core/errors"
	"interfacer/internal/shared/observability"
	"path/filepath"
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

// DefaultSourceExtension is the reserved extension of contract source files.
const DefaultSourceExtension = ".vy"

// Parser parses contract source files. Contract syntax is a subset of
// Python's, so the Python grammar is used for the concrete syntax tree.
type Parser struct {
	pool       *ParserPool
	extractor  *ContractExtractor
	extensions map[string]bool
}

// NewParser returns a parser accepting the given source extensions
// (DefaultSourceExtension when none are given).
func NewParser(extensions ...string) *Parser {
	if len(extensions) == 0 {
		extensions = []string{DefaultSourceExtension}
	}
	p := &Parser{
		pool:       NewParserPool(sitter.NewLanguage(tree_sitter_python.Language())),
		extractor:  &ContractExtractor{},
		extensions: make(map[string]bool, len(extensions)),
	}
	for _, ext := range extensions {
		p.extensions[strings.ToLower(ext)] = true
	}
	return p
}

func (p *Parser) ParseFile(path string, content []byte) (*File, error) {
	if !p.IsSupportedPath(path) {
		return nil, errors.AddContext(
			errors.New(errors.CodeNotSupported, "not a contract source file"),
			errors.CtxPath, path,
		)
	}

	start := time.Now()
	defer func() {
		observability.ParsingDuration.Observe(time.Since(start).Seconds())
	}()

	sp := p.pool.Get()
	defer p.pool.Put(sp)

	tree := sp.Parse(content, nil)
	if tree == nil {
		return nil, errors.AddContext(errors.New(errors.CodeInternal, "parse failed"), errors.CtxPath, path)
	}
	defer tree.Close()

	res, err := p.extractor.Extract(tree.RootNode(), content, path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "extraction failed")
	}
	return res, nil
}

func (p *Parser) IsSupportedPath(path string) bool {
	return p.extensions[strings.ToLower(filepath.Ext(path))]
}

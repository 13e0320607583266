package parser

import (
	"strings"
	"time"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// ContractExtractor turns a tree-sitter (Python grammar) syntax tree of a
// contract source file into a File. Function bodies are never inspected.
type ContractExtractor struct{}

func (e *ContractExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path:      filePath,
		HasErrors: root.HasError(),
		ParsedAt:  time.Now(),
	}

	ctx := &ExtractionContext{Source: source, File: file}
	engine := NewExtractorEngine(map[string]NodeHandler{
		"import_statement":      e.extractImport,
		"import_from_statement": e.extractFromImport,
		"decorated_definition":  e.extractDecorated,
		"function_definition":   e.extractUndecorated,
		"class_definition":      skipNode,
		"expression_statement":  e.extractStateVar,
	})
	engine.Walk(ctx, root)

	return file, nil
}

func skipNode(*ExtractionContext, *sitter.Node) bool { return true }

func (e *ContractExtractor) extractImport(ctx *ExtractionContext, node *sitter.Node) bool {
	raw := ctx.Text(node)
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		var path, alias string
		switch child.Kind() {
		case "dotted_name":
			path = ctx.Text(child)
		case "aliased_import":
			path = ctx.Text(child.ChildByFieldName("name"))
			alias = ctx.Text(child.ChildByFieldName("alias"))
		default:
			continue
		}
		segments := splitDotted(path)
		if len(segments) == 0 {
			continue
		}
		ctx.File.Imports = append(ctx.File.Imports, newImport(ctx, node, raw, 0, nil, segments, alias))
	}
	return true
}

func (e *ContractExtractor) extractFromImport(ctx *ExtractionContext, node *sitter.Node) bool {
	raw := ctx.Text(node)
	level := 0
	var pkg []string
	afterImport := false

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "import":
			afterImport = true
		case "relative_import":
			level = len(strings.TrimSpace(ctx.ChildText(child, "import_prefix")))
			pkg = splitDotted(ctx.ChildText(child, "dotted_name"))
		case "dotted_name":
			if !afterImport {
				pkg = splitDotted(ctx.Text(child))
				continue
			}
			if name := splitDotted(ctx.Text(child)); len(name) > 0 {
				ctx.File.Imports = append(ctx.File.Imports, newImport(ctx, node, raw, level, pkg, name, ""))
			}
		case "aliased_import":
			if !afterImport {
				continue
			}
			name := splitDotted(ctx.Text(child.ChildByFieldName("name")))
			if len(name) == 0 {
				continue
			}
			alias := ctx.Text(child.ChildByFieldName("alias"))
			ctx.File.Imports = append(ctx.File.Imports, newImport(ctx, node, raw, level, pkg, name, alias))
		}
	}
	return true
}

// newImport splits the imported path so that the last segment is the module
// name and everything before it joins the package chain.
func newImport(ctx *ExtractionContext, stmt *sitter.Node, raw string, level int, pkg, segments []string, alias string) Import {
	full := make([]string, 0, len(pkg)+len(segments))
	full = append(full, pkg...)
	full = append(full, segments...)

	name := full[len(full)-1]
	if alias == "" {
		alias = name
	}
	return Import{
		Level:    level,
		Package:  full[:len(full)-1],
		Name:     name,
		Alias:    alias,
		Raw:      raw,
		Location: ctx.Location(stmt),
	}
}

func (e *ContractExtractor) extractDecorated(ctx *ExtractionContext, node *sitter.Node) bool {
	def := node.ChildByFieldName("definition")
	if def == nil || def.Kind() != "function_definition" {
		return true
	}

	var decorators []string
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child.Kind() != "decorator" {
			continue
		}
		if name := decoratorName(ctx.Text(child)); name != "" {
			decorators = append(decorators, name)
		}
	}
	e.extractFunction(ctx, def, decorators)
	return true
}

func (e *ContractExtractor) extractUndecorated(ctx *ExtractionContext, node *sitter.Node) bool {
	e.extractFunction(ctx, node, nil)
	return true
}

func (e *ContractExtractor) extractFunction(ctx *ExtractionContext, node *sitter.Node, decorators []string) {
	name := ctx.Text(node.ChildByFieldName("name"))
	if name == "" {
		return
	}

	ctx.File.Functions = append(ctx.File.Functions, Function{
		Name:       name,
		Params:     e.extractParams(ctx, node.ChildByFieldName("parameters")),
		Returns:    ctx.CompactText(node.ChildByFieldName("return_type")),
		Decorators: decorators,
		Location:   ctx.Location(node),
	})
}

func (e *ContractExtractor) extractParams(ctx *ExtractionContext, params *sitter.Node) []Param {
	if params == nil {
		return nil
	}

	var out []Param
	for i := uint(0); i < params.ChildCount(); i++ {
		child := params.Child(i)
		switch child.Kind() {
		case "identifier":
			out = append(out, Param{Name: ctx.Text(child)})
		case "typed_parameter":
			out = append(out, Param{
				Name: ctx.ChildText(child, "identifier"),
				Type: ctx.CompactText(child.ChildByFieldName("type")),
			})
		case "default_parameter":
			out = append(out, Param{Name: ctx.Text(child.ChildByFieldName("name"))})
		case "typed_default_parameter":
			out = append(out, Param{
				Name: ctx.Text(child.ChildByFieldName("name")),
				Type: ctx.CompactText(child.ChildByFieldName("type")),
			})
		}
	}
	return out
}

// extractStateVar records top-level annotated declarations ("x: T").
func (e *ContractExtractor) extractStateVar(ctx *ExtractionContext, node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil || parent.Kind() != "module" {
		return true
	}

	assign := firstChildOfKind(node, "assignment")
	if assign == nil {
		return true
	}
	left := assign.ChildByFieldName("left")
	typ := assign.ChildByFieldName("type")
	if left == nil || typ == nil || left.Kind() != "identifier" {
		return true
	}

	ctx.File.StateVars = append(ctx.File.StateVars, StateVar{
		Name:     ctx.Text(left),
		Type:     ctx.CompactText(typ),
		Location: ctx.Location(node),
	})
	return true
}

func decoratorName(text string) string {
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "@"))
	if idx := strings.IndexByte(text, '('); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

func splitDotted(value string) []string {
	parts := strings.Split(value, ".")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

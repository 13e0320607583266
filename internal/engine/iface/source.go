package iface

import (
	"fmt"
	"interfacer/internal/engine/parser"
	"path/filepath"
	"sort"
	"strings"
)

const constructorName = "__init__"

// FromFile derives the descriptor of a parsed source file. Only functions
// decorated @external (or the older @public) are kept, the constructor is
// dropped, and every public state variable contributes a view getter.
// Imports of the file are not looked at. Functions keep declaration order.
func FromFile(path string, file *parser.File) *Descriptor {
	type declared struct {
		line int
		fn   Function
	}
	var decls []declared

	for _, sv := range file.StateVars {
		if getter, ok := getterFor(sv); ok {
			decls = append(decls, declared{sv.Location.Line, getter})
		}
	}
	for _, fn := range file.Functions {
		if fn.Name == constructorName || !isExternal(fn) {
			continue
		}
		inputs := make([]Param, 0, len(fn.Params))
		for _, p := range fn.Params {
			inputs = append(inputs, Param{Name: p.Name, Type: ABIType(p.Type)})
		}
		decls = append(decls, declared{fn.Location.Line, Function{
			Name:       fn.Name,
			Inputs:     inputs,
			Outputs:    outputsOf(fn.Returns),
			Mutability: mutabilityOf(fn),
		}})
	}

	sort.SliceStable(decls, func(i, j int) bool { return decls[i].line < decls[j].line })
	functions := make([]Function, len(decls))
	for i, d := range decls {
		functions[i] = d.fn
	}
	return NewDescriptor(ModuleName(path), path, KindSource, functions)
}

// ModuleName is the bare module name of a file: its base name without extension.
func ModuleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func isExternal(fn parser.Function) bool {
	return fn.HasDecorator("external") || fn.HasDecorator("public")
}

func mutabilityOf(fn parser.Function) Mutability {
	switch {
	case fn.HasDecorator("pure"):
		return MutabilityPure
	case fn.HasDecorator("view"), fn.HasDecorator("constant"):
		return MutabilityView
	case fn.HasDecorator("payable"):
		return MutabilityPayable
	default:
		return MutabilityNonPayable
	}
}

func outputsOf(returns string) []Param {
	if returns == "" {
		return nil
	}
	var types []string
	if strings.HasPrefix(returns, "(") && strings.HasSuffix(returns, ")") {
		types = splitTopLevel(returns[1 : len(returns)-1])
	} else {
		types = []string{returns}
	}
	out := make([]Param, 0, len(types))
	for _, t := range types {
		if t == "" {
			continue
		}
		out = append(out, Param{Type: ABIType(t)})
	}
	return out
}

// getterFor builds the implicit getter of a "name: public(T)" declaration.
// Mapping keys and array indexes become arg0, arg1, ... in nesting order.
func getterFor(sv parser.StateVar) (Function, bool) {
	inner, ok := unwrapCall(sv.Type, "public")
	if !ok {
		return Function{}, false
	}
	for _, wrapper := range []string{"constant", "immutable"} {
		if t, ok := unwrapCall(inner, wrapper); ok {
			inner = t
		}
	}

	var inputs []Param
	arg := func(typ string) {
		inputs = append(inputs, Param{Name: fmt.Sprintf("arg%d", len(inputs)), Type: ABIType(typ)})
	}
	for {
		if kv, ok := mappingArgs(inner); ok {
			arg(kv[0])
			inner = kv[1]
			continue
		}
		if elem, ok := dynArrayElem(inner); ok {
			arg("uint256")
			inner = elem
			continue
		}
		if elem, ok := fixedArrayElem(inner); ok {
			arg("uint256")
			inner = elem
			continue
		}
		break
	}

	return Function{
		Name:       sv.Name,
		Inputs:     inputs,
		Outputs:    []Param{{Type: ABIType(inner)}},
		Mutability: MutabilityView,
	}, true
}

// mappingArgs matches HashMap[K,V] and the older map(K,V).
func mappingArgs(t string) ([2]string, bool) {
	var body string
	switch {
	case strings.HasPrefix(t, "HashMap[") && strings.HasSuffix(t, "]"):
		body = t[len("HashMap[") : len(t)-1]
	case strings.HasPrefix(t, "map(") && strings.HasSuffix(t, ")"):
		body = t[len("map(") : len(t)-1]
	default:
		return [2]string{}, false
	}
	parts := splitTopLevel(body)
	if len(parts) != 2 {
		return [2]string{}, false
	}
	return [2]string{parts[0], parts[1]}, true
}

func dynArrayElem(t string) (string, bool) {
	if !strings.HasPrefix(t, "DynArray[") || !strings.HasSuffix(t, "]") {
		return "", false
	}
	parts := splitTopLevel(t[len("DynArray[") : len(t)-1])
	if len(parts) != 2 {
		return "", false
	}
	return parts[0], true
}

func fixedArrayElem(t string) (string, bool) {
	if !strings.HasSuffix(t, "]") || isByteString(t) {
		return "", false
	}
	open := matchingOpen(t, len(t)-1, '[', ']')
	if open <= 0 {
		return "", false
	}
	return t[:open], true
}

func isByteString(t string) bool {
	for _, prefix := range []string{"String[", "Bytes[", "string[", "bytes["} {
		if strings.HasPrefix(t, prefix) {
			return true
		}
	}
	return false
}

// ABIType maps a source-level type annotation to its ABI spelling.
func ABIType(t string) string {
	switch {
	case t == "":
		return t
	case isByteString(t):
		if strings.HasPrefix(strings.ToLower(t), "string[") {
			return "string"
		}
		return "bytes"
	case t == "decimal":
		return "fixed168x10"
	}
	if elem, ok := dynArrayElem(t); ok {
		return ABIType(elem) + "[]"
	}
	if elem, ok := fixedArrayElem(t); ok {
		return ABIType(elem) + t[len(elem):]
	}
	return t
}

func unwrapCall(t, name string) (string, bool) {
	if !strings.HasPrefix(t, name+"(") || !strings.HasSuffix(t, ")") {
		return "", false
	}
	return t[len(name)+1 : len(t)-1], true
}

// splitTopLevel splits on commas that are not nested in brackets or parens.
func splitTopLevel(s string) []string {
	var out []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		case ',':
			if depth == 0 {
				out = append(out, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if last := strings.TrimSpace(s[start:]); last != "" || len(out) > 0 {
		out = append(out, last)
	}
	return out
}

func matchingOpen(s string, closeIdx int, openCh, closeCh byte) int {
	depth := 0
	for i := closeIdx; i >= 0; i-- {
		switch s[i] {
		case closeCh:
			depth++
		case openCh:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

package iface

import (
	"strings"
)

// Kind records which file format a descriptor was derived from.
type Kind string

const (
	KindSource Kind = "source"
	KindABI    Kind = "abi"
)

type Mutability string

const (
	MutabilityPure       Mutability = "pure"
	MutabilityView       Mutability = "view"
	MutabilityNonPayable Mutability = "nonpayable"
	MutabilityPayable    Mutability = "payable"
)

// Valid reports whether m is one of the four ABI mutability tags.
func (m Mutability) Valid() bool {
	switch m {
	case MutabilityPure, MutabilityView, MutabilityNonPayable, MutabilityPayable:
		return true
	}
	return false
}

type Param struct {
	Name string
	Type string
}

// Function is one externally callable signature.
type Function struct {
	Name       string
	Inputs     []Param
	Outputs    []Param
	Mutability Mutability
}

// Signature renders the canonical "name(type,type)" form.
func (f Function) Signature() string {
	types := make([]string, len(f.Inputs))
	for i, p := range f.Inputs {
		types[i] = p.Type
	}
	return f.Name + "(" + strings.Join(types, ",") + ")"
}

func (f Function) clone() Function {
	out := f
	out.Inputs = append([]Param(nil), f.Inputs...)
	out.Outputs = append([]Param(nil), f.Outputs...)
	return out
}

// Descriptor is the externally visible function set of one module. It is
// immutable after construction and shared by every importer of the file.
type Descriptor struct {
	name      string
	path      string
	kind      Kind
	functions []Function
	index     map[string]int
}

// NewDescriptor copies functions; later changes to the argument are not seen.
// When two functions share a name the first one wins for Function lookups.
func NewDescriptor(name, path string, kind Kind, functions []Function) *Descriptor {
	d := &Descriptor{
		name:      name,
		path:      path,
		kind:      kind,
		functions: make([]Function, len(functions)),
		index:     make(map[string]int, len(functions)),
	}
	for i, fn := range functions {
		d.functions[i] = fn.clone()
		if _, ok := d.index[fn.Name]; !ok {
			d.index[fn.Name] = i
		}
	}
	return d
}

func (d *Descriptor) Name() string { return d.name }
func (d *Descriptor) Path() string { return d.path }
func (d *Descriptor) Kind() Kind   { return d.kind }
func (d *Descriptor) Len() int     { return len(d.functions) }

// Functions returns a copy of the functions in declaration order.
func (d *Descriptor) Functions() []Function {
	out := make([]Function, len(d.functions))
	for i, fn := range d.functions {
		out[i] = fn.clone()
	}
	return out
}

func (d *Descriptor) Function(name string) (Function, bool) {
	i, ok := d.index[name]
	if !ok {
		return Function{}, false
	}
	return d.functions[i].clone(), true
}

// FunctionNames returns the function names in declaration order.
func (d *Descriptor) FunctionNames() []string {
	out := make([]string, len(d.functions))
	for i, fn := range d.functions {
		out[i] = fn.Name
	}
	return out
}

// SameSignatures reports whether both descriptors expose identical
// signatures, outputs and mutability in the same order, regardless of the
// file format they came from.
func (d *Descriptor) SameSignatures(other *Descriptor) bool {
	if d == other {
		return true
	}
	if d == nil || other == nil || len(d.functions) != len(other.functions) {
		return false
	}
	for i, fn := range d.functions {
		o := other.functions[i]
		if fn.Signature() != o.Signature() || fn.Mutability != o.Mutability || len(fn.Outputs) != len(o.Outputs) {
			return false
		}
		for j := range fn.Outputs {
			if fn.Outputs[j].Type != o.Outputs[j].Type {
				return false
			}
		}
	}
	return true
}

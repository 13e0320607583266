package iface

import (
	"bytes"
	"encoding/json"
	"interfacer/internal/core/errors"
)

type abiParam struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type abiEntry struct {
	Type            string     `json:"type"`
	Name            string     `json:"name,omitempty"`
	Inputs          []abiParam `json:"inputs"`
	Outputs         []abiParam `json:"outputs"`
	StateMutability string     `json:"stateMutability,omitempty"`
	Constant        *bool      `json:"constant,omitempty"`
	Payable         *bool      `json:"payable,omitempty"`
}

type abiDocument struct {
	ABI json.RawMessage `json:"abi"`
}

// DecodeABI reads a JSON ABI interface file. Both a bare entry list and an
// object with an "abi" member are accepted. Entries other than functions
// (events, constructors, fallbacks) are skipped.
func DecodeABI(path string, data []byte) (*Descriptor, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var doc abiDocument
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, malformed(path, err, "invalid JSON interface")
		}
		if len(doc.ABI) == 0 {
			return nil, malformed(path, nil, `interface object has no "abi" member`)
		}
		trimmed = bytes.TrimSpace(doc.ABI)
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, malformed(path, nil, "interface is not a JSON array of entries")
	}

	var entries []abiEntry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, malformed(path, err, "invalid JSON interface")
	}

	functions := make([]Function, 0, len(entries))
	for i, entry := range entries {
		if entry.Type != "" && entry.Type != "function" {
			continue
		}
		if entry.Name == "" {
			return nil, errors.AddContext(malformed(path, nil, "function entry without a name"), "entry", i)
		}
		mut, err := entryMutability(entry)
		if err != nil {
			return nil, errors.AddContext(malformed(path, err, "invalid function entry"), "entry", i)
		}
		functions = append(functions, Function{
			Name:       entry.Name,
			Inputs:     fromABIParams(entry.Inputs),
			Outputs:    fromABIParams(entry.Outputs),
			Mutability: mut,
		})
	}
	return NewDescriptor(ModuleName(path), path, KindABI, functions), nil
}

// EncodeABI renders d as an indented JSON ABI function list.
func EncodeABI(d *Descriptor) ([]byte, error) {
	entries := make([]abiEntry, 0, d.Len())
	for _, fn := range d.functions {
		entries = append(entries, abiEntry{
			Type:            "function",
			Name:            fn.Name,
			Inputs:          toABIParams(fn.Inputs),
			Outputs:         toABIParams(fn.Outputs),
			StateMutability: string(fn.Mutability),
		})
	}
	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "encode ABI")
	}
	return append(out, '\n'), nil
}

func entryMutability(entry abiEntry) (Mutability, error) {
	if entry.StateMutability != "" {
		m := Mutability(entry.StateMutability)
		if !m.Valid() {
			return "", errors.Newf(errors.CodeMalformedInterface, "unknown stateMutability %q", entry.StateMutability)
		}
		return m, nil
	}
	switch {
	case entry.Constant != nil && *entry.Constant:
		return MutabilityView, nil
	case entry.Payable != nil && *entry.Payable:
		return MutabilityPayable, nil
	default:
		return MutabilityNonPayable, nil
	}
}

func fromABIParams(in []abiParam) []Param {
	if len(in) == 0 {
		return nil
	}
	out := make([]Param, len(in))
	for i, p := range in {
		out[i] = Param{Name: p.Name, Type: p.Type}
	}
	return out
}

func toABIParams(in []Param) []abiParam {
	out := make([]abiParam, len(in))
	for i, p := range in {
		out[i] = abiParam{Name: p.Name, Type: p.Type}
	}
	return out
}

func malformed(path string, err error, msg string) error {
	var out error
	if err != nil {
		out = errors.Wrap(err, errors.CodeMalformedInterface, msg)
	} else {
		out = errors.New(errors.CodeMalformedInterface, msg)
	}
	return errors.AddContext(out, errors.CtxPath, path)
}

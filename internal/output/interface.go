package output

import (
	"interfacer/internal/engine/iface"
	"strings"
)

// GenerateABI renders the descriptor as a JSON ABI document.
func GenerateABI(d *iface.Descriptor) (string, error) {
	out, err := iface.EncodeABI(d)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// GenerateInterface renders the descriptor as a source-style interface
// block that other contracts can paste and import:
//
//	interface Token:
//	    def balanceOf(arg0: address) -> uint256: view
func GenerateInterface(d *iface.Descriptor) (string, error) {
	var b strings.Builder
	b.WriteString("# External Interfaces\n")
	b.WriteString("interface ")
	b.WriteString(d.Name())
	b.WriteString(":\n")

	fns := d.Functions()
	if len(fns) == 0 {
		b.WriteString("    pass\n")
		return b.String(), nil
	}
	for _, fn := range fns {
		b.WriteString("    def ")
		b.WriteString(fn.Name)
		b.WriteString("(")
		for i, p := range fn.Inputs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.Name)
			b.WriteString(": ")
			b.WriteString(p.Type)
		}
		b.WriteString(")")
		b.WriteString(returnClause(fn.Outputs))
		b.WriteString(": ")
		b.WriteString(string(fn.Mutability))
		b.WriteString("\n")
	}
	return b.String(), nil
}

func returnClause(outputs []iface.Param) string {
	switch len(outputs) {
	case 0:
		return ""
	case 1:
		return " -> " + outputs[0].Type
	}
	types := make([]string, len(outputs))
	for i, p := range outputs {
		types[i] = p.Type
	}
	return " -> (" + strings.Join(types, ", ") + ")"
}

package parser

import (
	"testing"
)

func FuzzContractParser(f *testing.F) {
	f.Add([]byte(`from . import Bar
import interfaces.Token as Token

total: public(uint256)

@external
def run(x: uint256) -> bool:
    return True
`))
	f.Add([]byte("from .. import"))
	f.Add([]byte("@external\ndef"))

	p := NewParser()
	f.Fuzz(func(t *testing.T, data []byte) {
		file, err := p.ParseFile("fuzz.vy", data)
		if err != nil {
			return
		}
		for _, imp := range file.Imports {
			if imp.Name == "" || imp.Alias == "" {
				t.Fatalf("import with empty name or alias: %+v", imp)
			}
			if imp.Level < 0 {
				t.Fatalf("negative import level: %+v", imp)
			}
		}
	})
}

package output

import (
	"interfacer/internal/engine/graph"
	"interfacer/internal/engine/iface"
	"interfacer/internal/engine/parser"
	"strings"
	"testing"
)

func sampleGraph() *graph.ImportGraph {
	g := graph.NewImportGraph()
	g.AddFile("/proj/contracts/Meta.vy", "Meta", true)
	g.AddEdge(graph.ImportEdge{
		From:     "/proj/contracts/Meta.vy",
		To:       "/proj/interfaces/Bar.json",
		Alias:    "Bar",
		Location: parser.Location{Line: 3, Column: 1},
	})
	g.AddEdge(graph.ImportEdge{
		From:     "/proj/contracts/Meta.vy",
		To:       "/proj/contracts/Meta.vy",
		Alias:    "Meta",
		Location: parser.Location{Line: 2, Column: 1},
		Self:     true,
	})
	return g
}

func TestDOTGenerator(t *testing.T) {
	g := sampleGraph()
	dot, err := NewDOTGenerator(g, "/proj").Generate(g.DetectCycles())
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(dot, "digraph imports") {
		t.Error("DOT output missing digraph header")
	}
	if !strings.Contains(dot, `"contracts/Meta.vy" -> "interfaces/Bar.json"`) {
		t.Error("DOT output missing edge Meta -> Bar")
	}
	if !strings.Contains(dot, "self as Meta") {
		t.Error("DOT output missing self-import label")
	}
	if !strings.Contains(dot, "cluster_entries") {
		t.Error("DOT output missing entry cluster")
	}
}

func TestTSVGenerator(t *testing.T) {
	tsv, err := NewTSVGenerator(sampleGraph(), "/proj").Generate()
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(tsv), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines in TSV, got %d", len(lines))
	}
	if lines[1] != "contracts/Meta.vy\tMeta\tcontracts/Meta.vy\t2\t1\ttrue" {
		t.Errorf("unexpected TSV line: %s", lines[1])
	}
	if lines[2] != "contracts/Meta.vy\tBar\tinterfaces/Bar.json\t3\t1\tfalse" {
		t.Errorf("unexpected TSV line: %s", lines[2])
	}
}

func TestTSVGenerator_KeepsPathsOutsideRoot(t *testing.T) {
	g := graph.NewImportGraph()
	g.AddEdge(graph.ImportEdge{From: "/tmp/x/foo.vy", To: "/tmp/x/bar.vy", Alias: "Bar"})

	tsv, err := NewTSVGenerator(g, "/proj").Generate()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tsv, "/tmp/x/foo.vy\tBar\t/tmp/x/bar.vy") {
		t.Errorf("expected absolute paths, got %q", tsv)
	}
}

func TestMermaidGenerator(t *testing.T) {
	g := sampleGraph()
	out, err := NewMermaidGenerator(g, "/proj").Generate(g.DetectCycles())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "flowchart LR") {
		t.Error("missing flowchart header")
	}
	if !strings.Contains(out, "proj_contracts_Meta_vy -->|Meta| proj_contracts_Meta_vy") {
		t.Errorf("missing self edge in %q", out)
	}
	if !strings.Contains(out, "linkStyle 0 stroke:#cc0000") {
		t.Errorf("self edge not highlighted in %q", out)
	}
}

func TestMakeMermaidIDs_Unique(t *testing.T) {
	ids := makeMermaidIDs([]string{"a/b.vy", "a_b.vy", "9lives"})
	if ids["a/b.vy"] == ids["a_b.vy"] {
		t.Fatalf("expected distinct ids, got %v", ids)
	}
	if ids["9lives"] != "m_9lives" {
		t.Errorf("unexpected id %q", ids["9lives"])
	}
}

func sampleDescriptor() *iface.Descriptor {
	return iface.NewDescriptor("Token", "/proj/Token.vy", iface.KindSource, []iface.Function{
		{
			Name:       "balanceOf",
			Inputs:     []iface.Param{{Name: "arg0", Type: "address"}},
			Outputs:    []iface.Param{{Type: "uint256"}},
			Mutability: iface.MutabilityView,
		},
		{
			Name:       "transfer",
			Inputs:     []iface.Param{{Name: "to", Type: "address"}, {Name: "amount", Type: "uint256"}},
			Outputs:    []iface.Param{{Type: "bool"}, {Type: "uint256"}},
			Mutability: iface.MutabilityNonPayable,
		},
	})
}

func TestGenerateInterface(t *testing.T) {
	out, err := GenerateInterface(sampleDescriptor())
	if err != nil {
		t.Fatal(err)
	}
	want := "# External Interfaces\n" +
		"interface Token:\n" +
		"    def balanceOf(arg0: address) -> uint256: view\n" +
		"    def transfer(to: address, amount: uint256) -> (bool, uint256): nonpayable\n"
	if out != want {
		t.Errorf("unexpected interface:\n%s", out)
	}
}

func TestGenerateInterface_Empty(t *testing.T) {
	out, _ := GenerateInterface(iface.NewDescriptor("Empty", "/proj/Empty.vy", iface.KindSource, nil))
	if !strings.HasSuffix(out, "interface Empty:\n    pass\n") {
		t.Errorf("unexpected interface: %q", out)
	}
}

func TestGenerateABI(t *testing.T) {
	out, err := GenerateABI(sampleDescriptor())
	if err != nil {
		t.Fatal(err)
	}
	back, err := iface.DecodeABI("Token.json", []byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if !back.SameSignatures(sampleDescriptor()) {
		t.Errorf("ABI did not round trip: %s", out)
	}
}

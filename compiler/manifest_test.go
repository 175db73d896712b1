package compiler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const combinedJSON = `{
	"contracts": {
		"contracts/Zeta.sol:Zeta": {"abi": [{"type":"function","name":"z","inputs":[],"outputs":[]}], "bin": "6000"},
		"contracts/Alpha.sol:Alpha": {"abi": "[{\"type\":\"constructor\",\"inputs\":[]}]", "bin": "6001"},
		"contracts/Alpha.sol:IAlpha": {"abi": [], "bin": ""}
	},
	"version": "0.8.26+commit.8a97fa7a"
}`

func TestParseCombinedJSON(t *testing.T) {
	m, err := ParseCombinedJSON([]byte(combinedJSON))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	t.Run("version", func(t *testing.T) {
		if m.Version != "0.8.26+commit.8a97fa7a" {
			t.Errorf("Expected version, got %q", m.Version)
		}
	})

	t.Run("document order", func(t *testing.T) {
		want := []string{"contracts/Zeta.sol:Zeta", "contracts/Alpha.sol:Alpha", "contracts/Alpha.sol:IAlpha"}
		if len(m.Contracts) != len(want) {
			t.Fatalf("Expected %d contracts, got %d", len(want), len(m.Contracts))
		}
		for i, name := range want {
			if m.Contracts[i].Name != name {
				t.Errorf("Contract %d: expected %s, got %s", i, name, m.Contracts[i].Name)
			}
		}
	})

	t.Run("inline abi verbatim", func(t *testing.T) {
		want := `[{"type":"function","name":"z","inputs":[],"outputs":[]}]`
		if m.Contracts[0].ABI != want {
			t.Errorf("Expected %s, got %s", want, m.Contracts[0].ABI)
		}
	})

	t.Run("string abi unquoted", func(t *testing.T) {
		want := `[{"type":"constructor","inputs":[]}]`
		if m.Contracts[1].ABI != want {
			t.Errorf("Expected %s, got %s", want, m.Contracts[1].ABI)
		}
	})

	t.Run("bin verbatim", func(t *testing.T) {
		if m.Contracts[1].Bin != "6001" || m.Contracts[2].Bin != "" {
			t.Errorf("Unexpected bin values %q, %q", m.Contracts[1].Bin, m.Contracts[2].Bin)
		}
	})
}

func TestParseCombinedJSONErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contract string
	}{
		{"not json", `{`, ""},
		{"missing contracts", `{"version":"1"}`, ""},
		{"contracts not object", `{"contracts":[]}`, ""},
		{"missing abi", `{"contracts":{"a.sol:A":{"bin":"00"}}}`, "a.sol:A"},
		{"numeric abi", `{"contracts":{"a.sol:A":{"abi":5,"bin":"00"}}}`, "a.sol:A"},
		{"abi string not json", `{"contracts":{"a.sol:A":{"abi":"[","bin":"00"}}}`, "a.sol:A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCombinedJSON([]byte(tt.input))
			if !errors.Is(err, ErrManifestParse) {
				t.Fatalf("Expected ErrManifestParse, got %v", err)
			}
			var parseErr *ManifestParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Expected ManifestParseError, got %T", err)
			}
			if parseErr.Contract != tt.contract {
				t.Errorf("Expected contract %q, got %q", tt.contract, parseErr.Contract)
			}
		})
	}
}

func TestContractNameParts(t *testing.T) {
	tests := []struct {
		name string
		file string
		typ  string
	}{
		{"contracts/Store.sol:Store", "contracts/Store.sol", "Store"},
		{"C:/work/Store.sol:Store", "C:/work/Store.sol", "Store"},
		{"Store", "", "Store"},
	}
	for _, tt := range tests {
		c := Contract{Name: tt.name}
		if c.File() != tt.file || c.Type() != tt.typ {
			t.Errorf("%s: expected (%s, %s), got (%s, %s)", tt.name, tt.file, tt.typ, c.File(), c.Type())
		}
	}
}

func TestMerge(t *testing.T) {
	a := &Manifest{Version: "0.8.0", Contracts: []Contract{{Name: "a.sol:A"}, {Name: "lib.sol:L", Bin: "first"}}}
	b := &Manifest{Version: "0.8.1", Contracts: []Contract{{Name: "lib.sol:L", Bin: "second"}, {Name: "b.sol:B"}}}

	m := Merge(a, nil, b)
	if m.Version != "0.8.0" {
		t.Errorf("Expected first version, got %s", m.Version)
	}
	if len(m.Contracts) != 3 {
		t.Fatalf("Expected 3 contracts, got %d", len(m.Contracts))
	}
	if m.Contracts[1].Bin != "first" {
		t.Error("Expected the first occurrence to win")
	}
	if m.Contracts[2].Name != "b.sol:B" {
		t.Errorf("Expected b.sol:B last, got %s", m.Contracts[2].Name)
	}
}

func TestReadCombinedJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "combined.json")
	if err := os.WriteFile(path, []byte(combinedJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := ReadCombinedJSONFile(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(m.Contracts) != 3 {
		t.Errorf("Expected 3 contracts, got %d", len(m.Contracts))
	}

	if _, err := ReadCombinedJSONFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}
}

package compiler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Manifest is the parsed output of solc --combined-json abi,bin.
// Contracts keep the order in which they appear in the document.
type Manifest struct {
	Version   string
	Contracts []Contract
}

// Contract is one compiled contract of a manifest.
type Contract struct {
	// Name is the qualified "<file>:<ContractName>" key.
	Name string
	// ABI is the ABI JSON array, verbatim.
	ABI string
	// Bin is the creation bytecode as hex, verbatim. Empty for abstract
	// contracts and interfaces.
	Bin string
}

// File returns the source file part of the qualified name.
func (c Contract) File() string {
	if i := strings.LastIndex(c.Name, ":"); i >= 0 {
		return c.Name[:i]
	}
	return ""
}

// Type returns the contract name without its file.
func (c Contract) Type() string {
	return c.Name[strings.LastIndex(c.Name, ":")+1:]
}

// ParseCombinedJSON parses a combined-JSON document. The abi of each contract
// may be a JSON string (solc < 0.8) or an inline array.
func ParseCombinedJSON(data []byte) (*Manifest, error) {
	var doc struct {
		Version   string          `json:"version"`
		Contracts json.RawMessage `json:"contracts"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ManifestParseError{Err: err}
	}
	contracts, err := parseContracts(doc.Contracts)
	if err != nil {
		return nil, err
	}
	return &Manifest{Version: doc.Version, Contracts: contracts}, nil
}

// ReadCombinedJSONFile reads and parses a combined-JSON file.
func ReadCombinedJSONFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("compiler: read manifest: %w", err)
	}
	return ParseCombinedJSON(data)
}

// parseContracts walks the contracts object token by token so that the
// document order survives.
func parseContracts(raw json.RawMessage) ([]Contract, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, &ManifestParseError{Err: errors.New("missing contracts object")}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, &ManifestParseError{Err: err}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &ManifestParseError{Err: fmt.Errorf("contracts is not an object")}
	}
	var contracts []Contract
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ManifestParseError{Err: err}
		}
		name := tok.(string)
		var entry struct {
			ABI json.RawMessage `json:"abi"`
			Bin string          `json:"bin"`
		}
		if err := dec.Decode(&entry); err != nil {
			return nil, &ManifestParseError{Contract: name, Err: err}
		}
		abi, err := rawABI(entry.ABI)
		if err != nil {
			return nil, &ManifestParseError{Contract: name, Err: err}
		}
		contracts = append(contracts, Contract{Name: name, ABI: abi, Bin: entry.Bin})
	}
	return contracts, nil
}

func rawABI(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		return "", errors.New("missing abi")
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		if !json.Valid([]byte(s)) {
			return "", errors.New("abi string is not valid JSON")
		}
		return s, nil
	case raw[0] == '[':
		return string(raw), nil
	}
	return "", fmt.Errorf("abi must be a string or an array, got %.20s", raw)
}

// Merge concatenates manifests in order. A qualified name seen more than
// once keeps its first occurrence; the version is the first non-empty one.
func Merge(manifests ...*Manifest) *Manifest {
	merged := new(Manifest)
	seen := make(map[string]bool)
	for _, m := range manifests {
		if m == nil {
			continue
		}
		if merged.Version == "" {
			merged.Version = m.Version
		}
		for _, c := range m.Contracts {
			if seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			merged.Contracts = append(merged.Contracts, c)
		}
	}
	return merged
}

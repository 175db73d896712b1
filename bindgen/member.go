package bindgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/branched-services/go-solbind/compiler"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Kind classifies an ABI member.
type Kind int

const (
	KindFunction Kind = iota
	KindConstructor
	KindEvent
)

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindConstructor:
		return "constructor"
	case KindEvent:
		return "event"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Parameter is an ABI input or output.
type Parameter struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Indexed bool   `json:"indexed"`
}

// Member is one entry of an ABI array.
type Member struct {
	Name            string
	Kind            Kind
	Inputs          []Parameter
	Outputs         []Parameter
	StateMutability string
	// Key is the name go-ethereum's abi package files the member under.
	// Overloads get a numeric suffix: foo, foo0, foo1.
	Key string
}

// Signature returns the canonical Solidity signature, e.g. "transfer(address,uint256)".
func (m Member) Signature() string {
	types := make([]string, len(m.Inputs))
	for i, in := range m.Inputs {
		types[i] = in.Type
	}
	return m.Name + "(" + strings.Join(types, ",") + ")"
}

// ParseMembers decodes an ABI JSON array, keeping the declaration order.
// Unsupported member kinds (fallback, receive, error) are rejected with a
// *ClassificationError rather than skipped.
func ParseMembers(abiJSON string) ([]Member, error) {
	var raw []struct {
		Type            string      `json:"type"`
		Name            string      `json:"name"`
		Inputs          []Parameter `json:"inputs"`
		Outputs         []Parameter `json:"outputs"`
		StateMutability string      `json:"stateMutability"`
	}
	if err := json.Unmarshal([]byte(abiJSON), &raw); err != nil {
		return nil, &compiler.ManifestParseError{Err: fmt.Errorf("abi: %w", err)}
	}
	var (
		members   = make([]Member, 0, len(raw))
		functions = make(map[string]bool)
		events    = make(map[string]bool)
	)
	for _, r := range raw {
		m := Member{
			Name:            r.Name,
			Inputs:          r.Inputs,
			Outputs:         r.Outputs,
			StateMutability: r.StateMutability,
		}
		switch r.Type {
		case "function", "":
			m.Kind = KindFunction
			m.Key = abi.ResolveNameConflict(r.Name, func(s string) bool { return functions[s] })
			functions[m.Key] = true
		case "constructor":
			m.Kind = KindConstructor
		case "event":
			m.Kind = KindEvent
			m.Key = abi.ResolveNameConflict(r.Name, func(s string) bool { return events[s] })
			events[m.Key] = true
		default:
			return nil, &ClassificationError{Name: r.Name, Kind: r.Type}
		}
		members = append(members, m)
	}
	return members, nil
}

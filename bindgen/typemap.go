package bindgen

import (
	"strconv"
	"strings"
)

// HostType is the Go type a Solidity type is exposed as.
type HostType struct {
	// Name is the Go type expression, e.g. "uint64" or "[]*big.Int".
	Name string
	// ReadOnly marks dynamic arrays mapped for an output position. Go has no
	// read-only slice, so it does not change Name.
	ReadOnly bool
}

func (h HostType) String() string {
	return h.Name
}

var basicTypes = map[string]string{
	"bool":    "bool",
	"int8":    "int8",
	"int16":   "int16",
	"int32":   "int32",
	"int64":   "int64",
	"uint8":   "uint8",
	"uint16":  "uint16",
	"uint32":  "uint32",
	"uint64":  "uint64",
	"int128":  "*big.Int",
	"int256":  "*big.Int",
	"uint128": "*big.Int",
	"uint256": "*big.Int",
	"address": "string",
	"bytes":   "[]byte",
	"string":  "string",
}

// MapType returns the Go type for a Solidity type. Dynamic arrays map
// element-wise, so T[][] works. Types outside the table (int24, bytes33,
// fixed-size arrays, tuples) yield an *UnknownTypeError.
func MapType(solType string, forOutput bool) (HostType, error) {
	if elem, ok := strings.CutSuffix(solType, "[]"); ok {
		inner, err := MapType(elem, forOutput)
		if err != nil {
			return HostType{}, &UnknownTypeError{Type: solType}
		}
		return HostType{Name: "[]" + inner.Name, ReadOnly: forOutput}, nil
	}
	if name, ok := basicTypes[solType]; ok {
		return HostType{Name: name}, nil
	}
	if size, ok := strings.CutPrefix(solType, "bytes"); ok {
		if n, err := strconv.Atoi(size); err == nil && n >= 1 && n <= 32 && size[0] >= '1' && size[0] <= '9' {
			return HostType{Name: "[]byte"}, nil
		}
	}
	return HostType{}, &UnknownTypeError{Type: solType}
}

package bindgen

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// reserved are identifiers generated code uses itself, either as locals or
// as package names, and therefore cannot be parameter names.
var reserved = map[string]bool{
	"ctx":      true,
	"client":   true,
	"opts":     true,
	"c":        true,
	"out":      true,
	"err":      true,
	"contract": true,
	"receipt":  true,
	"address":  true,
	"solbind":  true,
	"big":      true,
	"types":    true,
	"context":  true,
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func decapitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// paramNames normalizes method parameter names: one leading underscore is
// dropped and the first letter lowered. Unnamed parameters become
// parameter1, parameter2, ...
func paramNames(params []Parameter) []string {
	names := make([]string, len(params))
	used := make(map[string]bool)
	for i, p := range params {
		name := decapitalize(strings.TrimPrefix(p.Name, "_"))
		if name == "" {
			name = "parameter" + strconv.Itoa(i+1)
		}
		if token.IsKeyword(name) || reserved[name] {
			name += "_"
		}
		name = abi.ResolveNameConflict(name, func(s string) bool { return used[s] })
		used[name] = true
		names[i] = name
	}
	return names
}

// fieldNames normalizes struct field names: all leading underscores are
// dropped and the first letter raised. Unnamed fields become
// <fallback>1, <fallback>2, ...
func fieldNames(params []Parameter, fallback string) []string {
	names := make([]string, len(params))
	used := make(map[string]bool)
	for i, p := range params {
		name := capitalize(strings.TrimLeft(p.Name, "_"))
		if name == "" {
			name = fallback + strconv.Itoa(i+1)
		}
		name = abi.ResolveNameConflict(name, func(s string) bool { return used[s] })
		used[name] = true
		names[i] = name
	}
	return names
}

// snakeCase converts a Go type name to a file name stem: SampleContract
// becomes sample_contract, ERC20Token becomes erc20_token.
func snakeCase(name string) string {
	r := []rune(name)
	var b strings.Builder
	for i, c := range r {
		if unicode.IsUpper(c) {
			prevLower := i > 0 && (unicode.IsLower(r[i-1]) || unicode.IsDigit(r[i-1]))
			nextLower := i > 0 && i+1 < len(r) && unicode.IsLower(r[i+1]) && unicode.IsUpper(r[i-1])
			if prevLower || nextLower {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(c))
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

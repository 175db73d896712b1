package bindgen

import (
	"reflect"
	"testing"
)

func TestParamNames(t *testing.T) {
	tests := []struct {
		name   string
		params []Parameter
		want   []string
	}{
		{"leading underscore", []Parameter{{Name: "_to"}, {Name: "__amount"}}, []string{"to", "_amount"}},
		{"decapitalized", []Parameter{{Name: "Owner"}}, []string{"owner"}},
		{"unnamed", []Parameter{{Name: ""}, {Name: "b"}, {Name: ""}}, []string{"parameter1", "b", "parameter3"}},
		{"keywords", []Parameter{{Name: "type"}, {Name: "range"}}, []string{"type_", "range_"}},
		{"generated locals", []Parameter{{Name: "ctx"}, {Name: "opts"}, {Name: "address"}, {Name: "_client"}}, []string{"ctx_", "opts_", "address_", "client_"}},
		{"duplicates", []Parameter{{Name: "a"}, {Name: "_a"}, {Name: "A"}}, []string{"a", "a0", "a1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := paramNames(tt.params); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFieldNames(t *testing.T) {
	tests := []struct {
		name     string
		params   []Parameter
		fallback string
		want     []string
	}{
		{"capitalized", []Parameter{{Name: "owner"}, {Name: "balance"}}, "Property", []string{"Owner", "Balance"}},
		{"all underscores stripped", []Parameter{{Name: "__x"}}, "Property", []string{"X"}},
		{"output fallback", []Parameter{{Name: ""}, {Name: ""}}, "Property", []string{"Property1", "Property2"}},
		{"event fallback", []Parameter{{Name: "a"}, {Name: ""}}, "Parameter", []string{"A", "Parameter2"}},
		{"duplicates", []Parameter{{Name: "x"}, {Name: "_x"}}, "Property", []string{"X", "X0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fieldNames(tt.params, tt.fallback); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Store":          "store",
		"SampleContract": "sample_contract",
		"ERC20Token":     "erc20_token",
		"HTTPServer":     "http_server",
		"A":              "a",
	}
	for in, want := range tests {
		if got := snakeCase(in); got != want {
			t.Errorf("snakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFileName(t *testing.T) {
	if got := fileName("Store"); got != "store.go" {
		t.Errorf("Expected store.go, got %s", got)
	}
	if got := fileName("MyTest"); got != "my_test_binding.go" {
		t.Errorf("Expected my_test_binding.go, got %s", got)
	}
}

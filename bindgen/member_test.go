package bindgen

import (
	"errors"
	"testing"

	"github.com/branched-services/go-solbind/compiler"
)

func TestParseMembers(t *testing.T) {
	members, err := ParseMembers(`[
		{"type": "constructor", "inputs": [{"name": "x_", "type": "uint64"}]},
		{"name": "get", "inputs": [], "outputs": [{"name": "", "type": "bool"}]},
		{"type": "function", "name": "set", "inputs": [{"name": "v", "type": "uint8"}], "outputs": []},
		{"type": "event", "name": "Changed", "inputs": [{"name": "who", "type": "address", "indexed": true}]}
	]`)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	want := []struct {
		name string
		kind Kind
	}{
		{"", KindConstructor},
		{"get", KindFunction},
		{"set", KindFunction},
		{"Changed", KindEvent},
	}
	if len(members) != len(want) {
		t.Fatalf("Expected %d members, got %d", len(want), len(members))
	}
	for i, w := range want {
		if members[i].Name != w.name || members[i].Kind != w.kind {
			t.Errorf("Member %d: expected %s %q, got %s %q", i, w.kind, w.name, members[i].Kind, members[i].Name)
		}
	}
	if !members[3].Inputs[0].Indexed {
		t.Error("Expected the indexed flag to be kept")
	}
	if members[2].Signature() != "set(uint8)" {
		t.Errorf("Expected set(uint8), got %s", members[2].Signature())
	}
}

func TestParseMembersOverloads(t *testing.T) {
	members, err := ParseMembers(`[
		{"type": "function", "name": "foo", "inputs": [], "outputs": []},
		{"type": "function", "name": "foo", "inputs": [{"name": "a", "type": "uint8"}], "outputs": []},
		{"type": "event", "name": "foo", "inputs": []},
		{"type": "function", "name": "foo", "inputs": [{"name": "a", "type": "bool"}], "outputs": []}
	]`)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	keys := []string{"foo", "foo0", "foo", "foo1"}
	for i, key := range keys {
		if members[i].Key != key {
			t.Errorf("Member %d: expected key %s, got %s", i, key, members[i].Key)
		}
	}
}

func TestParseMembersErrors(t *testing.T) {
	t.Run("malformed json", func(t *testing.T) {
		_, err := ParseMembers(`[{`)
		if !errors.Is(err, compiler.ErrManifestParse) {
			t.Errorf("Expected ErrManifestParse, got %v", err)
		}
	})

	for _, kind := range []string{"fallback", "receive", "error"} {
		t.Run(kind, func(t *testing.T) {
			_, err := ParseMembers(`[{"type": "` + kind + `", "name": "x", "inputs": []}]`)
			var classErr *ClassificationError
			if !errors.As(err, &classErr) || classErr.Kind != kind {
				t.Fatalf("Expected ClassificationError for %s, got %v", kind, err)
			}
			if !errors.Is(err, ErrUnsupportedMember) {
				t.Error("Expected ErrUnsupportedMember")
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if KindEvent.String() != "event" || Kind(9).String() != "Kind(9)" {
		t.Errorf("Unexpected kind strings %s, %s", KindEvent, Kind(9))
	}
}

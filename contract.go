package solbind

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// Contract is an address-bound handle through which calls, transactions and
// event queries are issued. It carries no mutable state: everything it
// refers to lives on chain, so a Contract may be shared between goroutines.
//
// Generated bindings embed *Contract (directly, or through the binding of
// the contract's Solidity parent).
type Contract struct {
	client  *Client
	address common.Address
	abi     abi.ABI
	bound   *bind.BoundContract
}

// ContractKey is a comparable identity of a Contract, usable as a map key.
type ContractKey struct {
	client  *Client
	address common.Address
}

// abiCache memoizes parsed ABIs by their JSON text; generated bindings
// construct handles from the same constant over and over.
var abiCache sync.Map

// NewContract binds the ABI to address through client. The address must be
// a non-zero 20-byte hex string.
func NewContract(client *Client, abiJSON string, address string) (*Contract, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if IsEmptyAddress(address) {
		return nil, fmt.Errorf("%w: %q", ErrEmptyAddress, address)
	}
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	parsed, err := parseCachedABI(abiJSON)
	if err != nil {
		return nil, err
	}
	addr := common.HexToAddress(address)
	if addr == (common.Address{}) {
		return nil, fmt.Errorf("%w: %q", ErrEmptyAddress, address)
	}
	return &Contract{
		client:  client,
		address: addr,
		abi:     parsed,
		bound:   bind.NewBoundContract(addr, parsed, client.backend, client.backend, client.backend),
	}, nil
}

// IsEmptyAddress reports whether address is empty or the all-zero address.
func IsEmptyAddress(address string) bool {
	if address == "" {
		return true
	}
	return common.IsHexAddress(address) && common.HexToAddress(address) == (common.Address{})
}

// Handle returns c itself. Generated bindings use it to reach the embedded
// handle however deeply it is nested.
func (c *Contract) Handle() *Contract {
	return c
}

// Client returns the client the contract is bound through.
func (c *Contract) Client() *Client {
	return c.client
}

// Address returns the checksummed contract address.
func (c *Contract) Address() string {
	return c.address.Hex()
}

// ABI returns the contract ABI.
func (c *Contract) ABI() abi.ABI {
	return c.abi
}

// Key returns the identity of the handle. Two handles are Equal exactly
// when their keys are ==.
func (c *Contract) Key() ContractKey {
	if c == nil {
		return ContractKey{}
	}
	return ContractKey{client: c.client, address: c.address}
}

// Equal reports whether both handles are bound through the same client to
// the same address. A nil handle is never equal to anything, itself included.
func (c *Contract) Equal(other *Contract) bool {
	if c == nil || other == nil {
		return false
	}
	return c.Key() == other.Key()
}

// String implements fmt.Stringer.
func (c *Contract) String() string {
	return c.address.Hex()
}

// HasMethod returns true if the ABI has a method under the given key.
func (c *Contract) HasMethod(methodName string) bool {
	_, ok := c.abi.Methods[methodName]
	return ok
}

// MethodNames returns all method keys of the ABI, sorted.
func (c *Contract) MethodNames() []string {
	names := make([]string, 0, len(c.abi.Methods))
	for name := range c.abi.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// method looks up an ABI method by key.
func (c *Contract) method(name string) (abi.Method, error) {
	m, ok := c.abi.Methods[name]
	if !ok {
		return abi.Method{}, fmt.Errorf("%w: %q on %s", ErrMethodNotFound, name, c.address.Hex())
	}
	return m, nil
}

// ParseABI parses a JSON ABI string into an abi.ABI. Members without a
// "type" are functions, as the Solidity ABI JSON format defaults them.
func ParseABI(abiJSON string) (abi.ABI, error) {
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err == nil {
		return parsed, nil
	}
	if normalized, ok := defaultMemberTypes(abiJSON); ok {
		return abi.JSON(bytes.NewReader(normalized))
	}
	return abi.ABI{}, err
}

// defaultMemberTypes fills in the missing "type" of ABI members. It reports
// false when there was nothing to fill in.
func defaultMemberTypes(abiJSON string) ([]byte, bool) {
	var members []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(abiJSON), &members); err != nil {
		return nil, false
	}
	changed := false
	for _, m := range members {
		if _, ok := m["type"]; !ok {
			m["type"] = json.RawMessage(`"function"`)
			changed = true
		}
	}
	if !changed {
		return nil, false
	}
	out, err := json.Marshal(members)
	return out, err == nil
}

// MustParseABI is like ParseABI but panics on error.
func MustParseABI(abiJSON string) abi.ABI {
	parsed, err := ParseABI(abiJSON)
	if err != nil {
		panic(err)
	}
	return parsed
}

func parseCachedABI(abiJSON string) (abi.ABI, error) {
	if cached, ok := abiCache.Load(abiJSON); ok {
		return cached.(abi.ABI), nil
	}
	parsed, err := ParseABI(abiJSON)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("solbind: parse ABI: %w", err)
	}
	abiCache.Store(abiJSON, parsed)
	return parsed, nil
}

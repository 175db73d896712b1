package solbind

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient/simulated"
	"github.com/ethereum/go-ethereum/log"
)

// storeABI describes a contract whose constructor stores x_ and whose every
// call returns it.
const storeABI = `[
	{"type": "constructor", "inputs": [{"name": "x_", "type": "uint64"}, {"name": "y_", "type": "uint64"}]},
	{"type": "function", "name": "x", "stateMutability": "view", "inputs": [], "outputs": [{"name": "", "type": "uint64"}]},
	{"type": "function", "name": "touch", "stateMutability": "nonpayable", "inputs": [], "outputs": []}
]`

// storeBin stores the first constructor word in slot 0; the runtime
// returns slot 0 for any calldata.
const storeBin = "60206024600039600051600055600b6019600039600b6000f3" + "60005460005260206000f3"

const revertABI = `[
	{"type": "function", "name": "fail", "stateMutability": "nonpayable", "inputs": [], "outputs": []}
]`

// revertBin deploys a runtime that reverts every call.
const revertBin = "6005600c60003960056000f3" + "60006000fd"

// emptyBin deploys successfully but leaves no code behind.
const emptyBin = "00"

// revertInitBin reverts inside the constructor.
const revertInitBin = "60006000fd"

const pingABI = `[
	{"type": "event", "name": "Pinged", "anonymous": false, "inputs": [
		{"name": "sender", "type": "address", "indexed": true},
		{"name": "value", "type": "uint64", "indexed": false}
	]},
	{"type": "function", "name": "ping", "stateMutability": "nonpayable", "inputs": [], "outputs": []}
]`

// pingBin returns bytecode whose runtime emits Pinged(msg.sender, 42) on
// every call.
func pingBin() string {
	id := MustParseABI(pingABI).Events["Pinged"].ID
	runtime := []byte{0x60, 0x2a, 0x60, 0x00, 0x52, 0x33, 0x7f}
	runtime = append(runtime, id.Bytes()...)
	runtime = append(runtime, 0x60, 0x20, 0x60, 0x00, 0xa2, 0x00)
	init := []byte{0x60, byte(len(runtime)), 0x60, 0x0c, 0x60, 0x00, 0x39, 0x60, byte(len(runtime)), 0x60, 0x00, 0xf3}
	return hex.EncodeToString(append(init, runtime...))
}

// autoMiner seals a block after every submitted transaction.
type autoMiner struct {
	simulated.Client
	sim *simulated.Backend
}

func (m *autoMiner) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	if err := m.Client.SendTransaction(ctx, tx); err != nil {
		return err
	}
	m.sim.Commit()
	return nil
}

type testEnv struct {
	sim    *simulated.Backend
	key    *ecdsa.PrivateKey
	auth   *bind.TransactOpts
	client *Client
}

func newTestEnv(t *testing.T, opts ...ClientOption) *testEnv {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("Failed to generate key: %v", err)
	}
	auth, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(1337))
	if err != nil {
		t.Fatalf("Failed to create transactor: %v", err)
	}
	balance := new(big.Int).Mul(big.NewInt(1000), big.NewInt(1e18))
	sim := simulated.NewBackend(types.GenesisAlloc{auth.From: {Balance: balance}})
	t.Cleanup(func() { sim.Close() })

	opts = append([]ClientOption{WithLogger(log.NewLogger(log.DiscardHandler()))}, opts...)
	return &testEnv{
		sim:    sim,
		key:    key,
		auth:   auth,
		client: NewClient(&autoMiner{Client: sim.Client(), sim: sim}, auth, opts...),
	}
}

func (env *testEnv) deployStore(t *testing.T, x, y uint64) *Contract {
	t.Helper()
	c, err := env.client.Deploy(context.Background(), storeABI, storeBin, 0, x, y)
	if err != nil {
		t.Fatalf("Failed to deploy store: %v", err)
	}
	return c
}

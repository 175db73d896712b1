package solbind

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
)

// Backend is the node connection a Client talks to. *ethclient.Client and
// the simulated backend's client both satisfy it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// Client bundles a node connection with the account that signs deployments
// and transactions. Contract handles compare equal only when they share the
// same *Client, so a Client is the identity of a connection.
//
// A Client is safe for concurrent use.
type Client struct {
	backend Backend
	auth    *bind.TransactOpts
	config  *clientConfig
	closer  func()
}

// NewClient creates a Client over an existing backend. auth may be nil for
// read-only use; deployments and transactions then fail with ErrNoTransactor.
func NewClient(backend Backend, auth *bind.TransactOpts, opts ...ClientOption) *Client {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Client{
		backend: backend,
		auth:    auth,
		config:  cfg,
	}
}

// Dial connects to the node at rawurl and signs with key using the chain ID
// reported by the node. The returned Client owns the connection; release it
// with Close.
func Dial(ctx context.Context, rawurl string, key *ecdsa.PrivateKey, opts ...ClientOption) (*Client, error) {
	conn, err := ethclient.DialContext(ctx, rawurl)
	if err != nil {
		return nil, fmt.Errorf("solbind: dial %s: %w", rawurl, err)
	}
	chainID, err := conn.ChainID(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("solbind: query chain id: %w", err)
	}
	var auth *bind.TransactOpts
	if key != nil {
		auth, err = bind.NewKeyedTransactorWithChainID(key, chainID)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("solbind: create transactor: %w", err)
		}
	}
	c := NewClient(conn, auth, opts...)
	c.closer = conn.Close
	c.config.logger.Debug("Connected to node", "url", rawurl, "chainid", chainID)
	return c, nil
}

// Close releases the connection if the Client created it.
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
	}
}

// Backend returns the underlying node connection.
func (c *Client) Backend() Backend {
	return c.backend
}

// From returns the signing account, or the zero address for read-only clients.
func (c *Client) From() common.Address {
	if c.auth == nil {
		return common.Address{}
	}
	return c.auth.From
}

// DeployGas returns the default deployment gas limit.
func (c *Client) DeployGas() uint64 {
	return c.config.deployGas
}

// TxGas returns the default transaction gas limit.
func (c *Client) TxGas() uint64 {
	return c.config.txGas
}

// Logger returns the client's logger.
func (c *Client) Logger() log.Logger {
	return c.config.logger
}

// transactOpts returns a per-call copy of the signer options.
func (c *Client) transactOpts(ctx context.Context, gas uint64) (*bind.TransactOpts, error) {
	if c.auth == nil {
		return nil, ErrNoTransactor
	}
	opts := *c.auth
	opts.Context = ctx
	opts.GasLimit = gas
	return &opts, nil
}

// waitContext derives the context used while polling for a receipt.
func (c *Client) waitContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.config.receiptTimeout > 0 {
		return context.WithTimeout(ctx, c.config.receiptTimeout)
	}
	return context.WithCancel(ctx)
}

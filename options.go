package solbind

import (
	"time"

	"github.com/ethereum/go-ethereum/log"
)

// DefaultGas is the gas limit used for deployments and transactions when
// neither the client nor the call overrides it.
const DefaultGas uint64 = 4_700_000

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

// TxOption configures a single deployment or transaction.
type TxOption func(*txConfig)

// clientConfig holds the module-wide defaults of a Client.
type clientConfig struct {
	deployGas      uint64
	txGas          uint64
	receiptTimeout time.Duration
	logger         log.Logger
}

// defaultClientConfig returns the default client configuration.
func defaultClientConfig() *clientConfig {
	return &clientConfig{
		deployGas:      DefaultGas,
		txGas:          DefaultGas,
		receiptTimeout: 0,
		logger:         log.Root(),
	}
}

// WithDeployGas sets the default gas limit for contract deployments.
// Zero keeps DefaultGas.
func WithDeployGas(gas uint64) ClientOption {
	return func(c *clientConfig) {
		if gas != 0 {
			c.deployGas = gas
		}
	}
}

// WithTxGas sets the default gas limit for state-changing transactions.
// Zero keeps DefaultGas.
func WithTxGas(gas uint64) ClientOption {
	return func(c *clientConfig) {
		if gas != 0 {
			c.txGas = gas
		}
	}
}

// WithReceiptTimeout bounds how long a deployment or transaction waits for
// its receipt. The default (0) waits until the caller's context is done.
func WithReceiptTimeout(d time.Duration) ClientOption {
	return func(c *clientConfig) {
		if d < 0 {
			d = 0
		}
		c.receiptTimeout = d
	}
}

// WithLogger sets the logger used by the client. Defaults to log.Root().
func WithLogger(logger log.Logger) ClientOption {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// txConfig holds per-transaction overrides.
type txConfig struct {
	gas uint64
}

// WithGas overrides the gas limit of a single deployment or transaction.
func WithGas(gas uint64) TxOption {
	return func(c *txConfig) {
		c.gas = gas
	}
}

// GasOf folds opts and returns the requested gas override, or 0 when the
// client default should be used. Generated bindings pass its result to
// DeployAndGetReceipt and SendAndWaitForReceipt.
func GasOf(opts ...TxOption) uint64 {
	var cfg txConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.gas
}

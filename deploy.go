package solbind

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Deployment is the outcome of a deployment: the bound value together with
// the receipt of the creation transaction.
type Deployment[T any] struct {
	Value   T
	Receipt *types.Receipt
}

// DeployAndGetReceipt deploys bin with the given constructor arguments and
// waits until the creation transaction is mined. It returns the address of
// the new contract and the receipt. A gas of 0 uses the client's default
// deployment gas.
//
// Some nodes report a failed creation check even though the receipt carries
// the success status. In that case the receipt wins and the deployment is
// treated as successful.
func (c *Client) DeployAndGetReceipt(ctx context.Context, abiJSON, bin string, gas uint64, args ...any) (string, *types.Receipt, error) {
	if c == nil {
		return "", nil, ErrNilClient
	}
	parsed, err := parseCachedABI(abiJSON)
	if err != nil {
		return "", nil, err
	}
	code := common.FromHex(strings.TrimSpace(bin))
	if len(code) == 0 {
		return "", nil, &DeploymentFailedError{Err: errors.New("empty bytecode")}
	}
	converted, err := packArgs("", parsed.Constructor.Inputs, args)
	if err != nil {
		return "", nil, err
	}
	if gas == 0 {
		gas = c.config.deployGas
	}
	opts, err := c.transactOpts(ctx, gas)
	if err != nil {
		return "", nil, err
	}
	_, tx, _, err := bind.DeployContract(opts, parsed, code, c.backend, converted...)
	if err != nil {
		return "", nil, &DeploymentFailedError{Err: err}
	}
	logger := c.config.logger
	logger.Debug("Submitted deployment", "hash", tx.Hash(), "gas", gas)

	receipt, err := c.awaitDeployment(ctx, tx)
	if err != nil {
		return "", receipt, err
	}
	logger.Debug("Contract deployed", "address", receipt.ContractAddress, "hash", tx.Hash(), "gasused", receipt.GasUsed)
	return receipt.ContractAddress.Hex(), receipt, nil
}

// Deploy is like DeployAndGetReceipt but returns a handle to the deployed
// contract.
func (c *Client) Deploy(ctx context.Context, abiJSON, bin string, gas uint64, args ...any) (*Contract, error) {
	address, _, err := c.DeployAndGetReceipt(ctx, abiJSON, bin, gas, args...)
	if err != nil {
		return nil, err
	}
	return NewContract(c, abiJSON, address)
}

// awaitDeployment waits for the creation transaction and reconciles the
// strict code-present check with the receipt status.
func (c *Client) awaitDeployment(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	waitCtx, cancel := c.waitContext(ctx)
	defer cancel()

	_, deployErr := bind.WaitDeployed(waitCtx, c.backend, tx)
	if deployErr != nil && waitCtx.Err() != nil {
		return nil, &DeploymentFailedError{Err: deployErr}
	}
	receipt, err := bind.WaitMined(waitCtx, c.backend, tx)
	if err != nil {
		if deployErr == nil {
			deployErr = err
		}
		return nil, &DeploymentFailedError{Err: deployErr}
	}
	status, known := receiptStatus(receipt)
	switch {
	case deployErr == nil && (!known || status == types.ReceiptStatusSuccessful):
		return receipt, nil
	case deployErr != nil && known && status == types.ReceiptStatusSuccessful:
		c.config.logger.Warn("Deployment check failed but receipt reports success", "hash", tx.Hash(), "address", receipt.ContractAddress, "err", deployErr)
		return receipt, nil
	case deployErr == nil:
		deployErr = fmt.Errorf("receipt status %d", status)
	}
	return receipt, &DeploymentFailedError{Receipt: receipt, Err: deployErr}
}

package solbind

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
)

// Call invokes a constant method and stores its result in out.
//
// A method with a single output assigns it to *out. A method with several
// outputs fills the fields of the struct *out in declaration order, which is
// the shape generated bindings use for their Output structs.
func (c *Contract) Call(ctx context.Context, method string, out any, args ...any) error {
	m, err := c.method(method)
	if err != nil {
		return err
	}
	converted, err := packArgs(method, m.Inputs, args)
	if err != nil {
		return err
	}
	var results []any
	opts := &bind.CallOpts{Context: ctx, From: c.client.From()}
	if err := c.bound.Call(opts, &results, method, converted...); err != nil {
		return fmt.Errorf("solbind: call %q on %s: %w", method, c.address.Hex(), err)
	}
	if len(results) == 0 {
		return nil
	}
	return assignOutputs(method, results, out)
}

// SendAndWaitForReceipt submits a transaction invoking method and blocks
// until it is mined. A gas of 0 uses the client's default transaction gas.
//
// A receipt that reports the failure status yields a *TransactionFailedError
// carrying the receipt. Receipts without a status (pre-Byzantium) are
// treated as successful.
func (c *Contract) SendAndWaitForReceipt(ctx context.Context, method string, gas uint64, args ...any) (*types.Receipt, error) {
	m, err := c.method(method)
	if err != nil {
		return nil, err
	}
	converted, err := packArgs(method, m.Inputs, args)
	if err != nil {
		return nil, err
	}
	if gas == 0 {
		gas = c.client.TxGas()
	}
	opts, err := c.client.transactOpts(ctx, gas)
	if err != nil {
		return nil, err
	}
	tx, err := c.bound.Transact(opts, method, converted...)
	if err != nil {
		return nil, fmt.Errorf("solbind: send %q to %s: %w", method, c.address.Hex(), err)
	}
	logger := c.client.Logger()
	logger.Debug("Submitted transaction", "method", method, "to", c.address, "hash", tx.Hash(), "gas", gas)

	waitCtx, cancel := c.client.waitContext(ctx)
	defer cancel()
	receipt, err := bind.WaitMined(waitCtx, c.client.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("solbind: wait for %q receipt: %w", method, err)
	}
	if status, known := receiptStatus(receipt); known && status == types.ReceiptStatusFailed {
		logger.Debug("Transaction failed", "method", method, "hash", tx.Hash(), "gasused", receipt.GasUsed)
		return receipt, &TransactionFailedError{Method: method, Receipt: receipt}
	}
	logger.Debug("Transaction mined", "method", method, "hash", tx.Hash(), "block", receipt.BlockNumber, "gasused", receipt.GasUsed)
	return receipt, nil
}

// receiptStatus returns the receipt status and whether the receipt carries
// one at all. Pre-Byzantium receipts hold an intermediate state root instead.
func receiptStatus(r *types.Receipt) (uint64, bool) {
	if r == nil || len(r.PostState) > 0 {
		return 0, false
	}
	return r.Status, true
}

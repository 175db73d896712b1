package solbind

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/core/types"
)

// Sentinel errors for common failure conditions.
var (
	// ErrEmptyAddress indicates a handle was requested for an empty or all-zero address.
	ErrEmptyAddress = errors.New("solbind: cannot bind contract to empty address")

	// ErrInvalidAddress indicates the address is not a 20-byte hex string.
	ErrInvalidAddress = errors.New("solbind: invalid contract address")

	// ErrNilClient indicates a handle or deployment was requested without a client.
	ErrNilClient = errors.New("solbind: nil client")

	// ErrNoTransactor indicates a state-changing operation on a read-only client.
	ErrNoTransactor = errors.New("solbind: client has no transactor")

	// ErrMethodNotFound indicates the ABI has no method under the requested key.
	ErrMethodNotFound = errors.New("solbind: method not found in ABI")

	// ErrEventNotFound indicates the ABI has no event under the requested key.
	ErrEventNotFound = errors.New("solbind: event not found in ABI")

	// ErrOutputMismatch indicates a call result doesn't fit the destination value.
	ErrOutputMismatch = errors.New("solbind: call output does not match destination")

	// ErrTooManyTopics indicates more topic queries than indexed event fields.
	ErrTooManyTopics = errors.New("solbind: more topic queries than indexed fields")
)

// DeploymentFailedError is returned when a contract creation transaction
// could not be submitted or was mined with a failure status. Receipt is nil
// if the transaction never produced one.
type DeploymentFailedError struct {
	Receipt *types.Receipt
	Err     error
}

func (e *DeploymentFailedError) Error() string {
	if e.Receipt == nil {
		return fmt.Sprintf("solbind: deployment failed: %v", e.Err)
	}
	if e.Err == nil {
		return fmt.Sprintf("solbind: deployment failed in tx %s (status %d)", e.Receipt.TxHash.Hex(), e.Receipt.Status)
	}
	return fmt.Sprintf("solbind: deployment failed in tx %s (status %d): %v", e.Receipt.TxHash.Hex(), e.Receipt.Status, e.Err)
}

func (e *DeploymentFailedError) Unwrap() error {
	return e.Err
}

// TransactionFailedError is returned when a transaction was mined but its
// receipt reports the failure status.
type TransactionFailedError struct {
	Method  string
	Receipt *types.Receipt
}

func (e *TransactionFailedError) Error() string {
	return fmt.Sprintf("solbind: transaction %q failed in tx %s (gas used %d)", e.Method, e.Receipt.TxHash.Hex(), e.Receipt.GasUsed)
}

// ArgumentError indicates an issue with a method or constructor argument.
type ArgumentError struct {
	Method string
	Index  int
	Err    error
}

func (e *ArgumentError) Error() string {
	method := e.Method
	if method == "" {
		method = "constructor"
	}
	return fmt.Sprintf("solbind: argument %d for %q: %v", e.Index, method, e.Err)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// ConversionError indicates a value could not be converted between its Go
// binding type and the type the ABI codec expects.
type ConversionError struct {
	From string
	To   string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("solbind: cannot convert %s to %s", e.From, e.To)
}

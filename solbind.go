// Package solbind is the runtime behind generated Solidity contract
// bindings.
//
// Bindings are produced by the solbind command (see cmd/solbind) from solc
// combined-JSON output. Each generated contract type embeds a *Contract and
// calls into this package to deploy, call, transact and read events.
//
// # Clients
//
// A Client pairs a node connection with a signing account:
//
//	client, err := solbind.Dial(ctx, "http://localhost:8545", key)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
// Deployments and transactions use a gas limit of DefaultGas unless
// overridden with WithDeployGas, WithTxGas or a per-call WithGas.
//
// # Handles
//
// A Contract is an immutable handle bound to one address through one
// Client. Two handles are Equal when they share the Client and the address;
// Key returns the same identity as a comparable value.
//
//	store, err := bindings.DeployStore(ctx, client, 10, 20)
//	x, err := store.XAsync(ctx)
//
// # Failures
//
// A deployment that cannot be submitted or whose receipt reports failure
// returns a *DeploymentFailedError. A transaction mined with the failure
// status returns a *TransactionFailedError carrying the receipt.
//
// # Values
//
// Bindings use plain Go types: addresses are hex strings, every bytesN is a
// []byte, integers up to 64 bits map to the sized Go integer and wider ones
// to *big.Int. Conversion to and from the ABI codec happens here.
package solbind

package contract

import (
	"context"
	"fmt"

	"github.com/salefront/salefront/internal/chain"
)

// Caller calls read-only (view/pure) functions on the sale contract.
// Decoding contract return values to strings is its only job — no sale
// logic lives here.
type Caller struct {
	client *chain.Client
	addr   string
	abi    []ABIEntry
}

// NewCaller creates a Caller bound to one contract address.
func NewCaller(client *chain.Client, contractAddr string, abi []ABIEntry) *Caller {
	return &Caller{
		client: client,
		addr:   contractAddr,
		abi:    abi,
	}
}

// Call calls a read function and returns the decoded results as strings.
func (c *Caller) Call(ctx context.Context, funcName string, args ...string) ([]string, error) {
	fn := findFunction(c.abi, funcName)
	if fn == nil {
		return nil, fmt.Errorf("function %q not found in ABI", funcName)
	}

	if !fn.IsReadFunction() {
		return nil, fmt.Errorf("function %q is not a read function (stateMutability: %s)", funcName, fn.StateMutability)
	}

	calldata, err := encodeCall(fn, args)
	if err != nil {
		return nil, fmt.Errorf("encoding call: %w", err)
	}

	result, err := c.client.CallContract(ctx, c.addr, calldata)
	if err != nil {
		return nil, fmt.Errorf("contract call failed: %w", err)
	}

	decoded, err := decodeResult(fn, result)
	if err != nil {
		return nil, fmt.Errorf("decoding result: %w", err)
	}

	return decoded, nil
}

// CallOne calls a read function expected to return exactly one value.
func (c *Caller) CallOne(ctx context.Context, funcName string, args ...string) (string, error) {
	results, err := c.Call(ctx, funcName, args...)
	if err != nil {
		return "", err
	}
	if len(results) != 1 {
		return "", fmt.Errorf("function %q returned %d values, expected 1", funcName, len(results))
	}
	return results[0], nil
}

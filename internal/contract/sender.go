package contract

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/salefront/salefront/internal/chain"
)

// TxSigner signs transactions for one address. Satisfied by wallet.Signer;
// tests substitute fakes.
type TxSigner interface {
	Address() string
	SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error)
}

// Sender sends write transactions to the sale contract.
type Sender struct {
	client  *chain.Client
	addr    string
	abi     []ABIEntry
	signer  TxSigner
	chainID *big.Int
}

// NewSender creates a Sender bound to one contract address.
func NewSender(client *chain.Client, contractAddr string, abi []ABIEntry, signer TxSigner, chainID *big.Int) *Sender {
	return &Sender{
		client:  client,
		addr:    contractAddr,
		abi:     abi,
		signer:  signer,
		chainID: chainID,
	}
}

// Send calls a write function and broadcasts the transaction, returning its
// hash. value is the native-currency amount attached to the call; it must be
// nil or zero for non-payable functions and is sent verbatim for payable
// ones; no display-layer fallback ever reaches this path.
func (s *Sender) Send(ctx context.Context, funcName string, value *big.Int, args ...string) (string, error) {
	fn := findFunction(s.abi, funcName)
	if fn == nil {
		return "", fmt.Errorf("function %q not found in ABI", funcName)
	}
	if !fn.IsWriteFunction() {
		return "", fmt.Errorf("function %q is not a write function", funcName)
	}
	if value != nil && value.Sign() > 0 && !fn.IsPayable() {
		return "", fmt.Errorf("function %q is not payable", funcName)
	}
	if value == nil {
		value = big.NewInt(0)
	}

	calldata, err := encodeCall(fn, args)
	if err != nil {
		return "", fmt.Errorf("encoding call: %w", err)
	}

	from := s.signer.Address()

	gas, err := s.client.EstimateGas(ctx, from, s.addr, calldata, value)
	if err != nil {
		gas = 150000 // fallback
	}

	gasPrice, err := s.client.GasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("getting gas price: %w", err)
	}

	nonce, err := s.client.GetNonce(ctx, from)
	if err != nil {
		return "", fmt.Errorf("getting nonce: %w", err)
	}

	calldataBytes, err := hex.DecodeString(calldata[2:])
	if err != nil {
		return "", fmt.Errorf("decoding calldata: %w", err)
	}
	toAddr := common.HexToAddress(s.addr)

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   s.chainID,
		Nonce:     nonce,
		GasTipCap: gasPrice,
		GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
		Gas:       gas,
		To:        &toAddr,
		Value:     value,
		Data:      calldataBytes,
	})

	raw, err := s.signer.SignTx(tx, s.chainID)
	if err != nil {
		return "", fmt.Errorf("signing transaction: %w", err)
	}

	hash, err := s.client.SendRawTransaction(ctx, "0x"+hex.EncodeToString(raw))
	if err != nil {
		return "", fmt.Errorf("broadcasting transaction: %w", err)
	}

	return hash, nil
}

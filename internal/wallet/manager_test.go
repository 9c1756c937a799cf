package wallet

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Well-known test key (hardhat account #0); address is deterministic.
const (
	testKey  = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func newTestManager() *Manager {
	return NewManager(WithKeystore(NewInMemoryKeystore()))
}

func TestImportDerivesAddress(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.Import("buyer", testKey))

	w, err := m.Get("buyer")
	require.NoError(t, err)
	assert.Equal(t, testAddr, w.Address)
	assert.Equal(t, TypeSigning, w.Type)
	assert.True(t, w.CanSign())
	assert.NotEmpty(t, w.KeyRef)
}

func TestImportWith0xPrefix(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.Import("buyer", "0x"+testKey))

	w, err := m.Get("buyer")
	require.NoError(t, err)
	assert.Equal(t, testAddr, w.Address)
}

func TestImportRejectsBadKey(t *testing.T) {
	m := newTestManager()
	err := m.Import("buyer", "not-a-key")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestImportDuplicateName(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.Import("buyer", testKey))
	assert.ErrorIs(t, m.Import("buyer", testKey), ErrWalletExists)
}

func TestWatchOnlyCannotSign(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.AddWatchOnly("viewer", testAddr))

	w, err := m.Get("viewer")
	require.NoError(t, err)
	assert.False(t, w.CanSign())

	s, err := m.Signer("viewer")
	require.NoError(t, err)
	_, err = s.SignTx(types.NewTx(&types.DynamicFeeTx{ChainID: big.NewInt(1)}), big.NewInt(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch-only")
}

func TestRemoveDeletesKey(t *testing.T) {
	ks := NewInMemoryKeystore()
	m := NewManager(WithKeystore(ks))
	require.NoError(t, m.Import("buyer", testKey))

	w, _ := m.Get("buyer")
	ref := w.KeyRef

	require.NoError(t, m.Remove("buyer"))
	_, err := m.Get("buyer")
	assert.ErrorIs(t, err, ErrWalletNotFound)
	_, err = ks.Retrieve(ref)
	assert.Error(t, err)
}

func TestDefaultSelection(t *testing.T) {
	m := newTestManager()
	assert.Nil(t, m.Default())

	require.NoError(t, m.Import("buyer", testKey))
	// Sole wallet acts as the default.
	require.NotNil(t, m.Default())
	assert.Equal(t, "buyer", m.Default().Name)

	require.NoError(t, m.AddWatchOnly("viewer", testAddr))
	assert.Nil(t, m.Default(), "two wallets, none marked")

	require.NoError(t, m.SetDefault("buyer"))
	require.NotNil(t, m.Default())
	assert.Equal(t, "buyer", m.Default().Name)
}

func TestSignerSignsDynamicFeeTx(t *testing.T) {
	m := newTestManager()
	require.NoError(t, m.Import("buyer", testKey))

	s, err := m.Signer("buyer")
	require.NoError(t, err)
	assert.Equal(t, testAddr, s.Address())

	to := common.HexToAddress(testAddr)
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   big.NewInt(1),
		Nonce:     0,
		GasTipCap: big.NewInt(1_000_000_000),
		GasFeeCap: big.NewInt(2_000_000_000),
		Gas:       100000,
		To:        &to,
		Value:     big.NewInt(1),
	})

	raw, err := s.SignTx(tx, big.NewInt(1))
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	// Raw bytes decode back to a valid signed transaction.
	var decoded types.Transaction
	require.NoError(t, decoded.UnmarshalBinary(raw))
	assert.Equal(t, big.NewInt(1), decoded.Value())
	assert.Equal(t, uint64(100000), decoded.Gas())

	sender, err := types.Sender(types.NewLondonSigner(big.NewInt(1)), &decoded)
	require.NoError(t, err)
	assert.Equal(t, testAddr, sender.Hex())
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	store := NewJSONStore(path)

	m := NewManager(WithStore(store), WithKeystore(NewInMemoryKeystore()))
	require.NoError(t, m.AddWatchOnly("viewer", testAddr))

	// Fresh manager over the same file sees the wallet.
	m2 := NewManager(WithStore(NewJSONStore(path)), WithKeystore(NewInMemoryKeystore()))
	w, err := m2.Get("viewer")
	require.NoError(t, err)
	assert.Equal(t, testAddr, w.Address)
}

func TestJSONStoreMissingFile(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	wallets, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, wallets)
}

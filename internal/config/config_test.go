package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, int64(1), cfg.ChainID)
	assert.NotEmpty(t, cfg.RPCURL)
	assert.NotEmpty(t, cfg.ContractAddress)
	assert.Zero(t, cfg.Decimals, "decimals default to contract-reported")
	assert.Equal(t, dir, cfg.Dir())
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)

	cfg.RPCURL = "http://localhost:8545"
	cfg.DefaultWallet = "buyer"
	cfg.ChainID = 31337
	require.NoError(t, cfg.Save())

	cfg2, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8545", cfg2.RPCURL)
	assert.Equal(t, "buyer", cfg2.DefaultWallet)
	assert.Equal(t, int64(31337), cfg2.ChainID)
}

func TestLoadRejectsBadJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte("{bad"), 0o600))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestFallbackPrice(t *testing.T) {
	cfg := defaults(t.TempDir())
	require.NotNil(t, cfg.FallbackPrice())
	assert.Equal(t, "200000000000000", cfg.FallbackPrice().String())

	cfg.FallbackPriceWei = ""
	assert.Nil(t, cfg.FallbackPrice())

	cfg.FallbackPriceWei = "garbage"
	assert.Nil(t, cfg.FallbackPrice())
}

func TestWalletsPath(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "wallets.json"), cfg.WalletsPath())
}

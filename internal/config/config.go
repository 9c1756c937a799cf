// Package config persists salefront settings as JSON under ~/.salefront.
package config

import (
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

const (
	configFile  = "config.json"
	walletsFile = "wallets.json"

	defaultRPCURL  = "https://eth.llamarpc.com"
	defaultChainID = 1

	// The sale contract this storefront sells from.
	defaultContract = "0x01087b03507d94153CfAb032737ed6a6Be990f0B"

	// Display-only fallback shown while the current-price read is pending
	// or failed. It is never used as the payable value of a purchase.
	defaultFallbackPriceWei = "200000000000000" // 0.0002 per token

	// Fundraising target for the progress display, in payment units.
	defaultFundraisingTarget = "48000000"
)

// Config holds all salefront configuration.
type Config struct {
	RPCURL            string `json:"rpc_url"`
	ChainID           int64  `json:"chain_id"`
	ContractAddress   string `json:"contract_address"`
	DefaultWallet     string `json:"default_wallet"`
	Decimals          int    `json:"decimals"`           // 0 = read from the contract
	FallbackPriceWei  string `json:"fallback_price_wei"` // display only
	FundraisingTarget string `json:"fundraising_target"`

	configDir string
}

// Load reads config from dir (or creates defaults). dir defaults to
// ~/.salefront.
func Load(dir string) (*Config, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("could not determine home dir: %w", err)
		}
		dir = filepath.Join(home, ".salefront")
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("could not create config dir: %w", err)
	}

	cfg := defaults(dir)

	path := filepath.Join(dir, configFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.configDir = dir

	return cfg, nil
}

// Save writes the config to disk.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.configDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.configDir, configFile), data, 0o600)
}

// Dir returns the config directory.
func (c *Config) Dir() string {
	return c.configDir
}

// WalletsPath returns the path of the wallet metadata file.
func (c *Config) WalletsPath() string {
	return filepath.Join(c.configDir, walletsFile)
}

// FallbackPrice parses the configured display-fallback price. Returns nil
// when unset or unparseable, so callers fall through to "no data".
func (c *Config) FallbackPrice() *big.Int {
	if c.FallbackPriceWei == "" {
		return nil
	}
	n, ok := new(big.Int).SetString(c.FallbackPriceWei, 10)
	if !ok {
		return nil
	}
	return n
}

func defaults(dir string) *Config {
	return &Config{
		RPCURL:            defaultRPCURL,
		ChainID:           defaultChainID,
		ContractAddress:   defaultContract,
		Decimals:          0,
		FallbackPriceWei:  defaultFallbackPriceWei,
		FundraisingTarget: defaultFundraisingTarget,
		configDir:         dir,
	}
}

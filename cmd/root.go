// Package cmd wires the salefront CLI together.
package cmd

import (
	"fmt"
	"math/big"
	"os"

	"github.com/spf13/cobra"

	"github.com/salefront/salefront/internal/chain"
	"github.com/salefront/salefront/internal/config"
	"github.com/salefront/salefront/internal/contract"
	"github.com/salefront/salefront/internal/sale"
	"github.com/salefront/salefront/internal/wallet"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/salefront/salefront/cmd.Version=1.2.3" .
var Version = "1.0.0"

var (
	cfgDir  string
	cfg     *config.Config
	rpcFlag string
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "salefront",
	Short: "Token sale storefront for the terminal",
	Long: `salefront — buy sale tokens straight from your terminal.

  Shows the live sale price, presale status, and fundraising progress,
  previews how many tokens a payment buys, and submits the purchase
  with a locally managed signing wallet.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if rpcFlag != "" {
			cfg.RPCURL = rpcFlag
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// SALEFRONT_CONFIG_DIR env var overrides --config flag.
	if envDir := os.Getenv("SALEFRONT_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.salefront)")
	rootCmd.PersistentFlags().StringVar(&rpcFlag, "rpc", "", "RPC endpoint override for a single invocation")

	rootCmd.AddCommand(
		initCmd,
		statusCmd,
		buyCmd,
		estimateCmd,
		approveCmd,
		walletCmd,
		configCmd,
	)
}

// --- shared constructors ---

func newWalletManager() *wallet.Manager {
	return wallet.NewManager(wallet.WithStore(wallet.NewJSONStore(cfg.WalletsPath())))
}

func newCaller() *contract.Caller {
	client := chain.NewClient(cfg.RPCURL)
	return contract.NewCaller(client, cfg.ContractAddress, contract.SaleABI)
}

func newReadings() *sale.Readings {
	return sale.NewReadings(newCaller())
}

// newSender builds a write-capable contract binding for the named wallet
// (empty name = the default wallet). Also returns the client for receipt
// polling and the buyer address for display.
func newSender(walletName string) (*contract.Sender, *chain.Client, string, error) {
	mgr := newWalletManager()

	var w *wallet.Wallet
	var err error
	if walletName != "" {
		w, err = mgr.Get(walletName)
		if err != nil {
			return nil, nil, "", err
		}
	} else if cfg.DefaultWallet != "" {
		w, err = mgr.Get(cfg.DefaultWallet)
		if err != nil {
			return nil, nil, "", err
		}
	} else {
		w = mgr.Default()
	}

	if w == nil {
		return nil, nil, "", fmt.Errorf("no wallet configured; run: salefront wallet import <name> <private-key>")
	}
	if !w.CanSign() {
		return nil, nil, "", fmt.Errorf("wallet %q is watch-only and cannot sign purchases", w.Name)
	}

	signer, err := mgr.Signer(w.Name)
	if err != nil {
		return nil, nil, "", err
	}

	client := chain.NewClient(cfg.RPCURL)
	sender := contract.NewSender(client, cfg.ContractAddress, contract.SaleABI, signer, big.NewInt(cfg.ChainID))
	return sender, client, w.Address, nil
}

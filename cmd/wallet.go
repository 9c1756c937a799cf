package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salefront/salefront/internal/ui"
	"github.com/salefront/salefront/internal/wallet"
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage buyer wallets",
}

var walletImportCmd = &cobra.Command{
	Use:   "import <name> <private-key>",
	Short: "Import a signing wallet from a hex private key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, key := args[0], args[1]
		mgr := newWalletManager()

		if err := mgr.Import(name, key); err != nil {
			return err
		}
		w, _ := mgr.Get(name)
		fmt.Println(ui.Success(fmt.Sprintf("Signing wallet %q imported: %s", name, ui.Addr(w.Address))))
		fmt.Println(ui.Meta(fmt.Sprintf("Set as default with: salefront wallet use %s", name)))
		return nil
	},
}

var walletWatchCmd = &cobra.Command{
	Use:   "watch <name> <address>",
	Short: "Add a watch-only wallet (cannot buy)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, address := args[0], args[1]
		mgr := newWalletManager()

		if err := mgr.AddWatchOnly(name, address); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Watch-only wallet %q added: %s", name, ui.Addr(address))))
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all wallets",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newWalletManager()
		wallets := mgr.List()

		if len(wallets) == 0 {
			fmt.Println(ui.Meta("No wallets configured yet."))
			fmt.Println(ui.Meta("Import one with: salefront wallet import myWallet <private-key>"))
			return nil
		}

		var pairs [][2]string
		for _, w := range wallets {
			label := w.Address
			if w.Type == wallet.TypeWatchOnly {
				label += "  (watch-only)"
			}
			if w.IsDefault {
				label += "  ✓ default"
			}
			pairs = append(pairs, [2]string{w.Name, label})
		}
		fmt.Println(ui.KeyValueBlock("Wallets", pairs))
		fmt.Println(ui.Meta(fmt.Sprintf("%d wallet(s) configured", len(wallets))))
		return nil
	},
}

var walletUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the default buyer wallet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		mgr := newWalletManager()
		if err := mgr.SetDefault(name); err != nil {
			return err
		}
		cfg.DefaultWallet = name
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Default wallet set to %q", name)))
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet and its stored key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !ui.Confirm(fmt.Sprintf("Remove wallet %q and delete its key?", name)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}
		mgr := newWalletManager()
		if err := mgr.Remove(name); err != nil {
			return err
		}
		if cfg.DefaultWallet == name {
			cfg.DefaultWallet = ""
			cfg.Save() //nolint:errcheck
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wallet %q removed.", name)))
		return nil
	},
}

func init() {
	walletCmd.AddCommand(walletImportCmd, walletWatchCmd, walletListCmd, walletUseCmd, walletRemoveCmd)
}

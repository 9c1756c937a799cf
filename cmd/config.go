package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/salefront/salefront/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("%s\n\n", ui.StyleTitle.Render("Current Configuration"))
		fmt.Println(string(data))
		fmt.Println(ui.Meta("Config directory: " + cfg.Dir()))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value. Keys:

  rpc-url             RPC endpoint
  chain-id            chain ID
  contract            sale contract address
  default-wallet      wallet used for purchases
  fallback-price-wei  display-only price shown before the first read resolves
  fundraising-target  target shown by the progress bar, in ETH`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		switch key {
		case "rpc-url":
			cfg.RPCURL = value
		case "chain-id":
			id, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return fmt.Errorf("chain-id must be an integer, got %q", value)
			}
			cfg.ChainID = id
		case "contract":
			cfg.ContractAddress = value
		case "default-wallet":
			cfg.DefaultWallet = value
		case "fallback-price-wei":
			cfg.FallbackPriceWei = value
		case "fundraising-target":
			cfg.FundraisingTarget = value
		default:
			return fmt.Errorf("unknown config key %q", key)
		}

		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("%s set to %q", key, value)))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salefront/salefront/internal/ui"
)

var (
	initRPC      string
	initContract string
	initChainID  int64
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the initial configuration",
	Long:  "Create ~/.salefront with the RPC endpoint and sale contract to use.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if initRPC != "" {
			cfg.RPCURL = initRPC
		}
		if initContract != "" {
			cfg.ContractAddress = initContract
		}
		if initChainID != 0 {
			cfg.ChainID = initChainID
		}

		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Println(ui.Success("salefront configured"))
		fmt.Println(ui.KeyValueBlock("", [][2]string{
			{"Config dir", cfg.Dir()},
			{"RPC", cfg.RPCURL},
			{"Chain ID", fmt.Sprintf("%d", cfg.ChainID)},
			{"Sale contract", cfg.ContractAddress},
		}))
		fmt.Println(ui.Meta("Next: salefront wallet import <name> <private-key>, then: salefront buy"))
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initRPC, "rpc-url", "", "RPC endpoint")
	initCmd.Flags().StringVar(&initContract, "contract", "", "sale contract address")
	initCmd.Flags().Int64Var(&initChainID, "chain-id", 0, "chain ID")
}

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/salefront/salefront/internal/amount"
	"github.com/salefront/salefront/internal/ui"
)

var approveWallet string

var approveCmd = &cobra.Command{
	Use:   "approve <spender> <amount>",
	Short: "Approve a spender for your sale tokens",
	Long: `Approve an address to spend your sale tokens (standard ERC-20 approve).

  salefront approve 0xSpender 100.5`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		spender, human := args[0], args[1]

		sender, client, _, err := newSender(approveWallet)
		if err != nil {
			return err
		}

		readings := newReadings()
		readings.Decimals.Refresh(context.Background()) //nolint:errcheck

		tokens, err := amount.ToBaseUnits(human, readings.DecimalsOrDefault())
		if err != nil {
			return fmt.Errorf("amount must be a decimal, got %q", human)
		}

		if !ui.Confirm(fmt.Sprintf("Approve %s for %s tokens?", ui.TruncateAddr(spender), human)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		sp := ui.NewSpinner("Submitting approval…")
		sp.Start()
		hash, err := sender.Send(context.Background(), "approve", nil, spender, tokens.String())
		if err != nil {
			sp.Stop()
			return err
		}
		_, waitErr := client.WaitForReceipt(context.Background(), hash, 2*time.Second)
		sp.Stop()

		if waitErr != nil {
			fmt.Println(ui.Meta("  tx " + hash))
			return waitErr
		}
		fmt.Println(ui.Success("Approval confirmed"))
		fmt.Println(ui.Meta("  tx " + hash))
		return nil
	},
}

func init() {
	approveCmd.Flags().StringVar(&approveWallet, "wallet", "", "wallet to approve from (default: configured default)")
}

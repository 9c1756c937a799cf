package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salefront/salefront/internal/amount"
	"github.com/salefront/salefront/internal/ui"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate <amount>",
	Short: "Preview how many tokens a payment buys",
	Long: `Preview how many tokens an ETH payment buys at the live sale price.

  salefront estimate 0.5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payment := args[0]

		readings := newReadings()

		sp := ui.NewSpinner("Reading sale contract…")
		sp.Start()
		readings.CurrentPrice.Refresh(context.Background())  //nolint:errcheck
		readings.PresalePrice.Refresh(context.Background())  //nolint:errcheck
		readings.PresaleActive.Refresh(context.Background()) //nolint:errcheck
		readings.Symbol.Refresh(context.Background())        //nolint:errcheck
		sp.Stop()

		price := readings.EffectivePrice()
		if price == nil {
			return fmt.Errorf("could not read the sale price; try again or check --rpc")
		}

		symbol, _ := readings.Symbol.Value()
		tokens := amount.EstimateTokensReceived(payment, price)

		fmt.Println(ui.KeyValueBlock("Estimate", [][2]string{
			{"Pay", payment + " ETH"},
			{"Price", amount.FormatPrice(price) + " ETH"},
			{"Receive", tokens + " " + orDash(symbol)},
		}))
		return nil
	},
}

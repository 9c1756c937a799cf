package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/salefront/salefront/internal/amount"
	"github.com/salefront/salefront/internal/sale"
	"github.com/salefront/salefront/internal/ui"
)

var (
	buyWallet string
	buyYes    bool
)

var buyCmd = &cobra.Command{
	Use:   "buy [amount]",
	Short: "Buy sale tokens",
	Long: `Buy sale tokens with ETH.

Without an amount this opens the interactive storefront. With an amount it
submits a purchase directly:

  salefront buy 0.5`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runStorefront()
		}
		return runDirectBuy(args[0])
	},
}

func init() {
	buyCmd.Flags().StringVar(&buyWallet, "wallet", "", "wallet to buy with (default: configured default)")
	buyCmd.Flags().BoolVarP(&buyYes, "yes", "y", false, "skip the confirmation prompt")
}

// runStorefront opens the interactive buy screen.
func runStorefront() error {
	readings := newReadings()

	sender, client, buyerAddr, err := newSender(buyWallet)
	if err != nil {
		// The storefront still renders read-only; buying stays disabled.
		sender, client, buyerAddr = nil, nil, ""
	}

	var purchase *sale.Purchase
	if sender != nil {
		purchase = sale.NewPurchase(sender, client, readings)
	}

	model := ui.NewStorefront(readings, purchase, buyerAddr, cfg.FallbackPrice(), cfg.FundraisingTarget)
	_, err = tea.NewProgram(model).Run()
	return err
}

// runDirectBuy submits a purchase without the TUI.
func runDirectBuy(payment string) error {
	valueWei, err := amount.ToBaseUnits(payment, amount.DefaultDecimals)
	if err != nil || valueWei.Sign() <= 0 {
		return fmt.Errorf("amount must be a positive decimal, got %q", payment)
	}

	sender, client, buyerAddr, err := newSender(buyWallet)
	if err != nil {
		return err
	}

	if id, err := client.ChainID(context.Background()); err == nil && id.Int64() != cfg.ChainID {
		return fmt.Errorf("RPC endpoint reports chain ID %s, config expects %d", id, cfg.ChainID)
	}
	if bal, err := client.GetBalance(context.Background(), buyerAddr); err == nil && bal.Cmp(valueWei) < 0 {
		return fmt.Errorf("insufficient balance: have %s ETH, need %s ETH",
			amount.ToHuman(bal, amount.DefaultDecimals), payment)
	}

	readings := newReadings()

	sp := ui.NewSpinner("Reading sale contract…")
	sp.Start()
	readings.RefreshAll(context.Background()) //nolint:errcheck
	sp.Stop()

	symbol, _ := readings.Symbol.Value()
	price := readings.EffectivePrice()
	if price == nil {
		return fmt.Errorf("could not read the sale price; try again or check --rpc")
	}

	fmt.Println(ui.KeyValueBlock("Purchase", [][2]string{
		{"Buyer", buyerAddr},
		{"Pay", payment + " ETH"},
		{"Price", amount.FormatPrice(price) + " ETH"},
		{"Receive (est)", amount.EstimateTokensReceived(payment, price) + " " + orDash(symbol)},
		{"Contract", cfg.ContractAddress},
	}))

	if !buyYes && !ui.Confirm("Submit this purchase?") {
		fmt.Println(ui.Meta("Cancelled."))
		return nil
	}

	purchase := sale.NewPurchase(sender, client, readings)

	sp = ui.NewSpinner("Submitting purchase…")
	sp.Start()
	status := purchase.Submit(context.Background(), payment)
	sp.Stop()

	switch status.State {
	case sale.Confirmed:
		fmt.Println(ui.Success("Purchase confirmed"))
		fmt.Println(ui.Meta("  tx " + status.TxHash))
	case sale.CancelledByUser:
		fmt.Println(ui.Meta("Cancelled."))
	default:
		if status.TxHash != "" {
			fmt.Println(ui.Meta("  tx " + status.TxHash))
		}
		return status.Err
	}
	return nil
}

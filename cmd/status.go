package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/salefront/salefront/internal/amount"
	"github.com/salefront/salefront/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the sale contract's current state",
	RunE: func(cmd *cobra.Command, args []string) error {
		readings := newReadings()

		sp := ui.NewSpinner("Reading sale contract…")
		sp.Start()
		refreshErr := readings.RefreshAll(context.Background())
		sp.Stop()

		name, _ := readings.Name.Value()
		symbol, _ := readings.Symbol.Value()
		decimals := readings.DecimalsOrDefault()

		pairs := [][2]string{
			{"Token", fmt.Sprintf("%s (%s)", orDash(name), orDash(symbol))},
			{"Decimals", fmt.Sprintf("%d", decimals)},
		}

		if active, ok := readings.PresaleActive.Value(); ok {
			label := "no"
			if active {
				label = "yes"
			}
			pairs = append(pairs, [2]string{"Presale active", label})
		}
		if p, ok := readings.CurrentPrice.Value(); ok {
			pairs = append(pairs, [2]string{"Current price", amount.FormatPrice(p) + " ETH"})
		}
		if p, ok := readings.PresalePrice.Value(); ok {
			pairs = append(pairs, [2]string{"Presale price", amount.FormatPrice(p) + " ETH"})
		}
		if p, ok := readings.NormalPrice.Value(); ok {
			pairs = append(pairs, [2]string{"Listing price", amount.FormatPrice(p) + " ETH"})
		}
		if s, ok := readings.TotalSupply.Value(); ok {
			pairs = append(pairs, [2]string{"Total supply", amount.ToHuman(s, decimals)})
		}

		if raised := ui.RaisedSoFar(mustValue(readings.TotalSupply.Value()), readings.EffectivePrice()); raised != nil {
			pct := ui.ProgressPct(raised, cfg.FundraisingTarget)
			pairs = append(pairs, [2]string{"Raised", fmt.Sprintf("%s / %s ETH (%d%%)",
				amount.ToHuman(raised, amount.DefaultDecimals), cfg.FundraisingTarget, pct)})
		}

		fmt.Println(ui.KeyValueBlock("Sale Status", pairs))

		if refreshErr != nil {
			fmt.Println(ui.Warn(fmt.Sprintf("Some reads failed: %v", refreshErr)))
		}
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}

func mustValue[T any](v T, _ bool) T { return v }

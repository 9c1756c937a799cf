package ui

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/salefront/salefront/internal/amount"
	"github.com/salefront/salefront/internal/sale"
)

// The one payment asset the sale contract accepts today.
var paymentAssets = []string{"ETH"}

// Storefront is the Bubble Tea model for the buy screen: price cards,
// fundraising progress, the payment input with a live receive preview, and
// the buy action.
type Storefront struct {
	readings *sale.Readings
	purchase *sale.Purchase

	buyerAddr     string // empty = no signing wallet configured
	fallbackPrice *big.Int
	target        string // fundraising target, human payment units

	input    textinput.Model
	spin     spinner.Model
	assetIdx int

	busy     bool
	loading  bool
	status   sale.Status
	flash    string
	quitting bool
}

// NewStorefront assembles the buy screen.
func NewStorefront(readings *sale.Readings, purchase *sale.Purchase, buyerAddr string, fallbackPrice *big.Int, target string) Storefront {
	ti := textinput.New()
	ti.Placeholder = "0.001"
	ti.CharLimit = 32
	ti.Width = 24
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = StyleAccent

	return Storefront{
		readings:      readings,
		purchase:      purchase,
		buyerAddr:     buyerAddr,
		fallbackPrice: fallbackPrice,
		target:        target,
		input:         ti,
		spin:          sp,
		loading:       true,
	}
}

type readingsDoneMsg struct{ err error }

type purchaseDoneMsg struct{ status sale.Status }

func (m Storefront) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return readingsDoneMsg{err: m.readings.RefreshAll(context.Background())}
	}
}

func (m Storefront) buyCmd(payment string) tea.Cmd {
	return func() tea.Msg {
		return purchaseDoneMsg{status: m.purchase.Submit(context.Background(), payment)}
	}
}

func (m Storefront) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, textinput.Blink, m.refreshCmd())
}

func (m Storefront) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		m.flash = ""
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "tab":
			m.assetIdx = (m.assetIdx + 1) % len(paymentAssets)
			return m, nil

		case "ctrl+r":
			m.loading = true
			return m, m.refreshCmd()

		case "enter":
			if m.busy {
				m.flash = Warn("A purchase is already in flight")
				return m, nil
			}
			if err := m.submitGuard(); err != nil {
				m.flash = Warn(err.Error())
				return m, nil
			}
			m.busy = true
			m.status = sale.Status{State: sale.Submitting}
			return m, m.buyCmd(m.input.Value())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case readingsDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.flash = Warn("Some contract reads failed; showing last known values")
		}
		return m, nil

	case purchaseDoneMsg:
		m.busy = false
		m.status = msg.status
		switch msg.status.State {
		case sale.Confirmed:
			// Purchase may have moved the price or ended the presale;
			// re-read everything the screen shows.
			m.loading = true
			return m, m.refreshCmd()
		case sale.CancelledByUser:
			// Normal abort: no alarming messaging.
			m.flash = Meta("Signing cancelled.")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitGuard applies the input-shape checks that must pass before a
// purchase is handed to the orchestrator.
func (m Storefront) submitGuard() error {
	if m.buyerAddr == "" {
		return errors.New("no signing wallet configured, run: salefront wallet import")
	}
	if paymentAssets[m.assetIdx] != "ETH" {
		return errors.New("only ETH purchases are supported")
	}
	v, err := amount.ToBaseUnits(m.input.Value(), amount.DefaultDecimals)
	if err != nil || v.Sign() <= 0 {
		return errors.New("enter a positive amount")
	}
	return nil
}

func (m Storefront) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	name, _ := m.readings.Name.Value()
	symbol, ok := m.readings.Symbol.Value()
	if !ok {
		symbol = "TOKEN"
	}
	title := "  Buy " + symbol
	if name != "" {
		title += Meta("  ·  " + name)
	}
	b.WriteString(StyleTitle.Render(title) + "\n")

	b.WriteString(m.priceCards() + "\n")
	b.WriteString(m.progressSection() + "\n")
	b.WriteString(m.assetRow() + "\n")
	b.WriteString(m.sendReceive(symbol) + "\n")
	b.WriteString(m.statusLine() + "\n")

	if m.flash != "" {
		b.WriteString("  " + m.flash + "\n")
	}
	b.WriteString(Meta("  enter buy · tab asset · ctrl+r refresh · esc quit") + "\n")

	return b.String()
}

// priceCards renders the current/presale price next to the listing price.
func (m Storefront) priceCards() string {
	presale, _ := m.readings.PresaleActive.Value()

	label := "Current price"
	price := m.readings.EffectivePrice()
	if presale {
		label = "Presale price"
	}

	display := ""
	switch {
	case price != nil:
		display = amount.FormatPrice(price)
	case m.loading:
		display = "loading…"
	case m.fallbackPrice != nil:
		// Display fallback only, never the payable value.
		display = amount.FormatPrice(m.fallbackPrice) + Meta(" (est)")
	default:
		display = "—"
	}

	listing := "—"
	if p, ok := m.readings.NormalPrice.Value(); ok {
		listing = amount.FormatPrice(p)
	}

	left := StyleBorder.Render(Meta(label) + "\n" + Val(display))
	right := StyleBorder.Render(Meta("Listing price") + "\n" + Val(listing))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// progressSection renders raised-so-far against the fundraising target.
func (m Storefront) progressSection() string {
	supply, okSupply := m.readings.TotalSupply.Value()
	price := m.readings.EffectivePrice()

	raised := RaisedSoFar(supply, price)
	if !okSupply || raised == nil {
		return "  " + Meta("Progress unavailable")
	}

	raisedHuman := amount.ToHuman(raised, amount.DefaultDecimals)
	pct := ProgressPct(raised, m.target)
	return fmt.Sprintf("  %s / %s\n  %s %s",
		Val(raisedHuman), Meta(m.target),
		ProgressBar(pct, 40), Meta(fmt.Sprintf("%d%%", pct)))
}

func (m Storefront) assetRow() string {
	var cells []string
	for i, asset := range paymentAssets {
		if i == m.assetIdx {
			cells = append(cells, StyleSelected.Render(" "+asset+" "))
		} else {
			cells = append(cells, Meta(" "+asset+" "))
		}
	}
	return "  " + strings.Join(cells, " ") + Meta("  (only ETH is supported)")
}

func (m Storefront) sendReceive(symbol string) string {
	receive := amount.EstimateTokensReceived(m.input.Value(), m.readings.EffectivePrice())
	return fmt.Sprintf("  %s %s %s\n  %s %s %s",
		Meta("You send   "), m.input.View(), Symbol(paymentAssets[m.assetIdx]),
		Meta("You receive"), Val(receive), Symbol(symbol))
}

func (m Storefront) statusLine() string {
	if m.busy {
		verb := "Submitting"
		if m.status.State == sale.AwaitingConfirmation {
			verb = "Waiting for confirmation"
		}
		return "  " + m.spin.View() + Warn(verb+"…")
	}

	switch m.status.State {
	case sale.Confirmed:
		return "  " + Success("Purchase confirmed") + Meta("  tx "+TruncateAddr(m.status.TxHash))
	case sale.Failed:
		reason := "unknown error"
		if m.status.Err != nil {
			reason = m.status.Err.Error()
		}
		return "  " + Err("Purchase failed: "+reason)
	default:
		if m.buyerAddr != "" {
			return "  " + Meta("Buying as ") + Addr(TruncateAddr(m.buyerAddr))
		}
		return "  " + Warn("No signing wallet configured")
	}
}

// RaisedSoFar estimates funds raised as totalSupply × price / 10^18, in
// payment base units. Integer-exact; nil when either input is missing.
func RaisedSoFar(totalSupply, priceWei *big.Int) *big.Int {
	if totalSupply == nil || priceWei == nil || priceWei.Sign() <= 0 {
		return nil
	}
	raised := new(big.Int).Mul(totalSupply, priceWei)
	one := new(big.Int).Exp(big.NewInt(10), big.NewInt(amount.DefaultDecimals), nil)
	return raised.Quo(raised, one)
}

// ProgressPct computes raised/target as a whole percentage, capped at 100.
// targetHuman is in whole payment units.
func ProgressPct(raised *big.Int, targetHuman string) int {
	if raised == nil || raised.Sign() < 0 {
		return 0
	}
	target, err := amount.ToBaseUnits(targetHuman, amount.DefaultDecimals)
	if err != nil || target.Sign() <= 0 {
		return 0
	}
	pct := new(big.Int).Mul(raised, big.NewInt(100))
	pct.Quo(pct, target)
	if pct.Cmp(big.NewInt(100)) > 0 {
		return 100
	}
	return int(pct.Int64())
}

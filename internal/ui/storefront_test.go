package ui

import (
	"context"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salefront/salefront/internal/sale"
)

// stubReader answers CallOne from a fixed map.
type stubReader struct {
	responses map[string]string
}

func (r *stubReader) CallOne(_ context.Context, funcName string, _ ...string) (string, error) {
	if v, ok := r.responses[funcName]; ok {
		return v, nil
	}
	return "", fmt.Errorf("no response for %s", funcName)
}

func loadedReadings(t *testing.T) *sale.Readings {
	t.Helper()
	readings := sale.NewReadings(&stubReader{responses: map[string]string{
		"getCurrentPrice": "600000000000000",
		"normalPrice":     "1000000000000000",
		"presalePrice":    "200000000000000",
		"presaleActive":   "false",
		"totalSupply":     "48000000000000000000000000",
		"decimals":        "18",
		"name":            "Hain Token",
		"symbol":          "HAIN",
	}})
	require.NoError(t, readings.RefreshAll(context.Background()))
	return readings
}

func TestRaisedSoFar(t *testing.T) {
	supply, _ := new(big.Int).SetString("48000000000000000000000000", 10) // 48M tokens
	price := big.NewInt(600000000000000)                                 // 0.0006 ETH

	raised := RaisedSoFar(supply, price)
	require.NotNil(t, raised)

	// 48M * 0.0006 = 28800 ETH
	want, _ := new(big.Int).SetString("28800000000000000000000", 10)
	assert.Equal(t, want, raised)
}

func TestRaisedSoFarMissingInputs(t *testing.T) {
	assert.Nil(t, RaisedSoFar(nil, big.NewInt(1)))
	assert.Nil(t, RaisedSoFar(big.NewInt(1), nil))
	assert.Nil(t, RaisedSoFar(big.NewInt(1), big.NewInt(0)))
}

func TestProgressPct(t *testing.T) {
	eth := func(whole int64) *big.Int {
		one := new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)
		return new(big.Int).Mul(big.NewInt(whole), one)
	}

	tests := []struct {
		name   string
		raised *big.Int
		target string
		want   int
	}{
		{"half way", eth(500), "1000", 50},
		{"zero raised", eth(0), "1000", 0},
		{"overshoot caps at 100", eth(2000), "1000", 100},
		{"truncates downward", eth(999), "1000", 99},
		{"nil raised", nil, "1000", 0},
		{"bad target", eth(10), "lots", 0},
		{"zero target", eth(10), "0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressPct(tt.raised, tt.target))
		})
	}
}

func TestSubmitGuard(t *testing.T) {
	readings := loadedReadings(t)

	tests := []struct {
		name    string
		buyer   string
		amount  string
		wantErr bool
	}{
		{"valid", "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", "0.5", false},
		{"no wallet", "", "0.5", true},
		{"empty amount", "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", "", true},
		{"zero amount", "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", "0", true},
		{"malformed amount", "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", "1.2.3", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewStorefront(readings, nil, tt.buyer, nil, "48000000")
			m.input.SetValue(tt.amount)
			err := m.submitGuard()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPurchaseDoneCancelledClearsBusyWithoutError(t *testing.T) {
	m := NewStorefront(loadedReadings(t), nil, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", nil, "48000000")
	m.busy = true

	next, cmd := m.Update(purchaseDoneMsg{status: sale.Status{State: sale.CancelledByUser}})
	got := next.(Storefront)

	assert.False(t, got.busy)
	assert.Equal(t, sale.CancelledByUser, got.status.State)
	assert.Nil(t, got.status.Err)
	assert.Nil(t, cmd)
	assert.NotContains(t, got.View(), "failed")
}

func TestPurchaseDoneConfirmedTriggersRefresh(t *testing.T) {
	m := NewStorefront(loadedReadings(t), nil, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", nil, "48000000")
	m.busy = true

	next, cmd := m.Update(purchaseDoneMsg{status: sale.Status{State: sale.Confirmed, TxHash: "0xabc"}})
	got := next.(Storefront)

	assert.False(t, got.busy)
	assert.Equal(t, sale.Confirmed, got.status.State)
	assert.NotNil(t, cmd, "confirmed purchases re-read the contract")
}

func TestProgressBarClamps(t *testing.T) {
	assert.NotEmpty(t, ProgressBar(-5, 10))
	assert.NotEmpty(t, ProgressBar(150, 10))
	assert.Equal(t, ProgressBar(100, 10), ProgressBar(150, 10))
	assert.Equal(t, ProgressBar(0, 10), ProgressBar(-5, 10))
}

func TestTruncateAddr(t *testing.T) {
	assert.Equal(t, "0xf39F…2266", TruncateAddr("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"))
	assert.Equal(t, "0xabc", TruncateAddr("0xabc"))
}

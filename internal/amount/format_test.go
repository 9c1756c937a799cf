package amount

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPriceZero(t *testing.T) {
	assert.Equal(t, "0.000000", FormatPrice(big.NewInt(0)))
	assert.Equal(t, "0.000000", FormatPrice(nil))
}

func TestFormatPriceFixed(t *testing.T) {
	tests := []struct {
		name     string
		priceWei string
		expected string
	}{
		{"one whole unit", "1000000000000000000", "1.000000000"},
		{"two ten-thousandths", "200000000000000", "0.000200000"},
		{"exactly one millionth", "1000000000000", "0.000001000"},
		{"above one", "1230000000000000000", "1.230000000"},
		{"sub-nine-digit precision truncated", "1234567891234567890", "1.234567891"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, _ := new(big.Int).SetString(tt.priceWei, 10)
			assert.Equal(t, tt.expected, FormatPrice(n))
		})
	}
}

// Prices under one millionth of a unit must stay visible instead of
// rounding to zeros under fixed formatting.
func TestFormatPriceScientific(t *testing.T) {
	tests := []struct {
		name     string
		priceWei string
		expected string
	}{
		{"500 wei", "500", "5.000000e-16"},
		{"one wei", "1", "1.000000e-18"},
		{"200 wei", "200", "2.000000e-16"},
		{"just under threshold", "999999999999", "9.999999e-7"},
		{"long mantissa truncated", "123456789", "1.234567e-10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, _ := new(big.Int).SetString(tt.priceWei, 10)
			assert.Equal(t, tt.expected, FormatPrice(n))
		})
	}
}

package amount

import (
	"fmt"
	"math/big"
	"strings"
)

// Formatting thresholds for FormatPrice. A price below one millionth of a
// whole unit (10^12 base units at 18 decimals) would render as all zeros
// under fixed formatting, so it switches to scientific notation instead.
var sciThreshold = pow10(12)

const (
	priceFixedDigits    = 9
	priceMantissaDigits = 6
)

// FormatPrice renders an 18-decimal base-unit price as a display string.
// Zero formats as "0.000000". Values below 1e-6 whole units use normalized
// scientific notation with a 6-digit mantissa fraction; everything else is
// fixed-point with exactly 9 fractional digits, untrimmed.
func FormatPrice(priceWei *big.Int) string {
	if priceWei == nil || priceWei.Sign() == 0 {
		return "0.000000"
	}

	if priceWei.Cmp(sciThreshold) < 0 {
		return formatScientific(priceWei)
	}

	divisor := pow10(DefaultDecimals)
	whole, frac := new(big.Int).DivMod(priceWei, divisor, new(big.Int))

	fracStr := frac.String()
	if pad := DefaultDecimals - len(fracStr); pad > 0 {
		fracStr = strings.Repeat("0", pad) + fracStr
	}
	return whole.String() + "." + fracStr[:priceFixedDigits]
}

// formatScientific renders priceWei as d.dddddde-XX where the exponent is
// relative to one whole unit (18 decimals). 500 wei → "5.000000e-16".
func formatScientific(priceWei *big.Int) string {
	digits := priceWei.String()

	mantissa := digits[:1]
	rest := digits[1:]
	if len(rest) > priceMantissaDigits {
		rest = rest[:priceMantissaDigits]
	} else {
		rest += strings.Repeat("0", priceMantissaDigits-len(rest))
	}

	exponent := len(digits) - 1 - DefaultDecimals
	return fmt.Sprintf("%s.%se%d", mantissa, rest, exponent)
}

// Package amount converts between base-unit integers (wei-like fixed-point
// values) and human-readable decimal strings. All arithmetic is exact
// big.Int — token amounts at 18 decimals exceed float64's safe range.
package amount

import (
	"errors"
	"math/big"
	"strings"
)

// ErrMalformedAmount is returned when a decimal string contains anything
// other than digits and a single decimal point.
var ErrMalformedAmount = errors.New("malformed amount")

// DefaultDecimals is the conventional ERC-20 scaling exponent.
const DefaultDecimals = 18

// pow10 returns 10^n as a big.Int.
func pow10(n int) *big.Int {
	if n < 0 {
		n = 0
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// ToHuman formats a base-unit amount as a decimal string: the whole part,
// then the remainder zero-padded to decimals digits with trailing zeros
// stripped. A zero or fully-stripped fraction yields no decimal point.
func ToHuman(amount *big.Int, decimals int) string {
	if amount == nil || amount.Sign() == 0 {
		return "0"
	}
	if decimals <= 0 {
		return amount.String()
	}

	divisor := pow10(decimals)
	whole, frac := new(big.Int).DivMod(amount, divisor, new(big.Int))

	if frac.Sign() == 0 {
		return whole.String()
	}

	fracStr := frac.String()
	if pad := decimals - len(fracStr); pad > 0 {
		fracStr = strings.Repeat("0", pad) + fracStr
	}
	fracStr = strings.TrimRight(fracStr, "0")
	if fracStr == "" {
		return whole.String()
	}
	return whole.String() + "." + fracStr
}

// ToBaseUnits parses a decimal string into a base-unit integer. The
// fractional part is right-padded with zeros to exactly decimals digits;
// excess precision is truncated, not rounded. Non-digit content in either
// part fails with ErrMalformedAmount.
func ToBaseUnits(human string, decimals int) (*big.Int, error) {
	human = strings.TrimSpace(human)
	if human == "" {
		return nil, ErrMalformedAmount
	}

	whole := human
	frac := ""
	if i := strings.IndexByte(human, '.'); i >= 0 {
		whole, frac = human[:i], human[i+1:]
		if strings.IndexByte(frac, '.') >= 0 {
			return nil, ErrMalformedAmount
		}
	}
	if whole == "" {
		whole = "0"
	}
	if whole == "0" && frac == "" && human == "." {
		return nil, ErrMalformedAmount
	}
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return nil, ErrMalformedAmount
	}

	if decimals < 0 {
		decimals = 0
	}
	if len(frac) > decimals {
		frac = frac[:decimals]
	} else {
		frac += strings.Repeat("0", decimals-len(frac))
	}

	// Leading zeros are harmless: big.Int parses "0500..." correctly.
	result, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, ErrMalformedAmount
	}
	return result, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

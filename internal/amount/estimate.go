package amount

import "math/big"

// EstimateTokensReceived computes how many tokens a payment buys at the
// given price, as a display string. priceWei is the cost of one whole token
// in payment base units. Empty, malformed, or non-positive payments return
// "0", as does a zero or missing price — a zero price means "no data", never
// free tokens, and must not reach the division.
//
// tokens = payment_base_units * 10^18 / priceWei, integer-exact throughout.
// The 10^18 factor compensates for the price being denominated per whole
// token. Division truncates toward zero.
func EstimateTokensReceived(paymentHuman string, priceWei *big.Int) string {
	if priceWei == nil || priceWei.Sign() <= 0 {
		return "0"
	}

	payment, err := ToBaseUnits(paymentHuman, DefaultDecimals)
	if err != nil || payment.Sign() <= 0 {
		return "0"
	}

	tokens := new(big.Int).Mul(payment, pow10(DefaultDecimals))
	tokens.Quo(tokens, priceWei)
	return ToHuman(tokens, DefaultDecimals)
}

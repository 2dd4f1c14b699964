// README: Common money value object used across modules.
package types

import "math"

// Money is an amount in the configured currency's minor units (e.g. TZS).
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Add returns m + o. The currency of m wins; callers price everything in one currency.
func (m Money) Add(o Money) Money {
	return Money{Amount: Round2(m.Amount + o.Amount), Currency: m.Currency}
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package pricing

import "stayride/internal/types"

// MaxEligibleDiscount returns the largest percent among enabled rules the stay
// qualifies for, or 0. The most generous rule wins, not the longest tier.
func MaxEligibleDiscount(nights int, rules []DiscountRule) float64 {
	best := 0.0
	for _, r := range rules {
		if !r.Enabled || nights < r.MinDays {
			continue
		}
		if pct := ClampPercent(r.DiscountPercent); pct > best {
			best = pct
		}
	}
	return best
}

// ApplyDiscount takes the best eligible discount off price.
func ApplyDiscount(price float64, nights int, rules []DiscountRule) float64 {
	pct := MaxEligibleDiscount(nights, rules)
	if pct <= 0 {
		return price
	}
	return types.Round2(price - price*pct/100)
}

package pricing

import (
	"math"

	"stayride/internal/types"
)

// ClampPercent bounds p to [0,100]. Non-finite input yields 0.
func ClampPercent(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return math.Min(100, math.Max(0, p))
}

// ApplyCommission marks nightlyPrice up by commissionPercent.
// A non-positive or non-finite price yields 0; a non-positive commission leaves the price as is.
func ApplyCommission(nightlyPrice, commissionPercent float64) float64 {
	if !isPositive(nightlyPrice) {
		return 0
	}
	if math.IsNaN(commissionPercent) || math.IsInf(commissionPercent, 0) {
		return nightlyPrice
	}
	pct := ClampPercent(commissionPercent)
	if pct <= 0 {
		return nightlyPrice
	}
	return types.Round2(nightlyPrice + nightlyPrice*pct/100)
}

// ResolveCommission prefers the property's own percent when it is set and in range.
func ResolveCommission(services Services, systemCommission float64) float64 {
	if p := services.CommissionPercent; p != nil && !math.IsNaN(*p) && *p >= 0 && *p <= 100 {
		return *p
	}
	return ClampPercent(systemCommission)
}

func isPositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

package pricing

import "stayride/internal/types"

// ComposeBookingPrice derives the guest-facing total for a stay.
func ComposeBookingPrice(nightlyPrice float64, nights int, services Services, systemCommission float64) (Breakdown, error) {
	if nights < 0 {
		return Breakdown{}, ErrInvalidNights
	}

	commission := ResolveCommission(services, systemCommission)
	discount := MaxEligibleDiscount(nights, services.DiscountRules)
	if !isPositive(nightlyPrice) {
		return Breakdown{CommissionPercent: commission, DiscountPercent: discount}, nil
	}

	n := float64(nights)
	original := types.Round2(nightlyPrice * n)
	withCommission := types.Round2(ApplyCommission(nightlyPrice, commission) * n)
	discountAmount := types.Round2(withCommission * discount / 100)

	return Breakdown{
		OriginalPrice:       original,
		PriceWithCommission: withCommission,
		DiscountAmount:      discountAmount,
		FinalPrice:          types.Round2(withCommission - withCommission*discount/100),
		CommissionPercent:   commission,
		CommissionAmount:    types.Round2(withCommission - original),
		DiscountPercent:     discount,
	}, nil
}

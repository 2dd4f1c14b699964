// README: Stay pricing models: properties, discount rules and the booking breakdown.
package pricing

import (
	"errors"

	"stayride/internal/types"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrInvalidNights    = errors.New("nights must not be negative")
)

// DiscountRule grants DiscountPercent off stays of at least MinDays nights.
type DiscountRule struct {
	MinDays         int     `json:"min_days"`
	DiscountPercent float64 `json:"discount_percent"`
	Enabled         bool    `json:"enabled"`
}

// Services are the owner-configurable pricing knobs of a property.
// A nil CommissionPercent means the system default applies.
type Services struct {
	CommissionPercent *float64       `json:"commission_percent,omitempty"`
	DiscountRules     []DiscountRule `json:"discount_rules"`
}

type Property struct {
	ID        types.ID `json:"id"`
	Name      string   `json:"name"`
	BasePrice float64  `json:"base_price"`
	Currency  string   `json:"currency"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Services  Services `json:"services"`
}

// Location is the property's position, used as a fare destination.
func (p *Property) Location() types.Location {
	return types.Location{Latitude: p.Latitude, Longitude: p.Longitude, Address: p.Name}
}

// Breakdown is the audit trail of a guest-facing stay total.
type Breakdown struct {
	OriginalPrice       float64 `json:"original_price"`
	PriceWithCommission float64 `json:"price_with_commission"`
	DiscountAmount      float64 `json:"discount_amount"`
	FinalPrice          float64 `json:"final_price"`
	CommissionPercent   float64 `json:"commission_percent"`
	CommissionAmount    float64 `json:"commission_amount"`
	DiscountPercent     float64 `json:"discount_percent"`
}

// StayQuote is a breakdown for a stored property.
type StayQuote struct {
	Property  *Property `json:"property"`
	Nights    int       `json:"nights"`
	Currency  string    `json:"currency"`
	Breakdown Breakdown `json:"breakdown"`
}

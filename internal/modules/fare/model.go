// README: Fare breakdown, quote request and locked-fare records.
package fare

import (
	"errors"
	"time"

	"stayride/internal/types"
)

var (
	ErrNotFound            = errors.New("fare quote not found")
	ErrInvalidPricingTable = errors.New("invalid pricing table")
)

// FareCalculation is the itemised upfront fare. Money fields are whole minor units.
type FareCalculation struct {
	BaseFare        float64     `json:"base_fare"`
	DistanceFare    float64     `json:"distance_fare"`
	TimeFare        float64     `json:"time_fare"`
	Subtotal        float64     `json:"subtotal"`
	SurgeMultiplier float64     `json:"surge_multiplier"`
	Total           float64     `json:"total"`
	Distance        float64     `json:"distance_km"`
	EstimatedTime   int         `json:"estimated_minutes"`
	Currency        string      `json:"currency"`
	VehicleType     VehicleType `json:"vehicle_type"`
}

// QuoteRequest is the validated entry point used by the HTTP and checkout layers.
type QuoteRequest struct {
	Origin      types.Location
	Destination types.Location
	Currency    string
	At          *time.Time
	VehicleType string
}

// LockedFare is a fare persisted at booking time so it is never recomputed.
type LockedFare struct {
	ID          types.ID        `json:"id"`
	Origin      types.Location  `json:"origin"`
	Destination types.Location  `json:"destination"`
	PricedAt    time.Time       `json:"priced_at"`
	CreatedAt   time.Time       `json:"created_at"`
	Fare        FareCalculation `json:"fare"`
}

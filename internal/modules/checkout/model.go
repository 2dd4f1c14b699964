// README: Checkout quote request and the combined stay plus transport result.
package checkout

import (
	"errors"
	"time"

	"stayride/internal/modules/fare"
	"stayride/internal/modules/pricing"
	"stayride/internal/types"
)

// ErrLockWithoutTransport is returned when a fare lock is requested without a ride.
var ErrLockWithoutTransport = errors.New("lock_fare requires include_transport")

type Request struct {
	PropertyID       types.ID
	Nights           int
	Origin           types.Location
	VehicleType      string
	At               *time.Time
	IncludeTransport bool
	LockFare         bool
}

// Transport is the upfront fare to the property, locked when LockedFareID is set.
type Transport struct {
	Origin       types.Location       `json:"origin"`
	Destination  types.Location       `json:"destination"`
	Fare         fare.FareCalculation `json:"fare"`
	LockedFareID types.ID             `json:"locked_fare_id,omitempty"`
}

// Quote is what the guest confirms: one payment covering stay and ride.
type Quote struct {
	PropertyID types.ID          `json:"property_id"`
	Nights     int               `json:"nights"`
	Stay       pricing.Breakdown `json:"stay"`
	Transport  *Transport        `json:"transport,omitempty"`
	Total      types.Money       `json:"total"`
	PricedAt   time.Time         `json:"priced_at"`
}

// README: Vehicle classes and their pricing table.
package fare

import (
	"fmt"
	"sort"
	"strings"
)

type VehicleType string

const (
	VehicleBoda    VehicleType = "BODA"
	VehicleBajaji  VehicleType = "BAJAJI"
	VehicleCar     VehicleType = "CAR"
	VehicleXL      VehicleType = "XL"
	VehiclePremium VehicleType = "PREMIUM"
)

// DefaultVehicle is used whenever a vehicle type is missing or unknown.
const DefaultVehicle = VehicleCar

// ParseVehicleType maps a case-insensitive name to a VehicleType.
// ok is false for empty or unknown names, in which case DefaultVehicle is returned.
func ParseVehicleType(s string) (VehicleType, bool) {
	vt := VehicleType(strings.ToUpper(strings.TrimSpace(s)))
	switch vt {
	case VehicleBoda, VehicleBajaji, VehicleCar, VehicleXL, VehiclePremium:
		return vt, true
	}
	return DefaultVehicle, false
}

// VehiclePricingConfig is one row of the pricing table. Money values are in
// minor units of the pricing currency.
type VehiclePricingConfig struct {
	BaseFare        float64 `json:"base_fare"`
	PerKmRate       float64 `json:"per_km_rate"`
	PerMinuteRate   float64 `json:"per_minute_rate"`
	AverageSpeedKmh float64 `json:"average_speed_kmh"`
}

// PricingTable maps vehicle classes to their rates. Treat it as read-only once built.
type PricingTable map[VehicleType]VehiclePricingConfig

// DefaultPricingTable returns a fresh copy of the shipped rates.
func DefaultPricingTable() PricingTable {
	return PricingTable{
		VehicleBoda:    {BaseFare: 1500, PerKmRate: 350, PerMinuteRate: 35, AverageSpeedKmh: 35},
		VehicleBajaji:  {BaseFare: 1800, PerKmRate: 420, PerMinuteRate: 40, AverageSpeedKmh: 28},
		VehicleCar:     {BaseFare: 2000, PerKmRate: 500, PerMinuteRate: 50, AverageSpeedKmh: 30},
		VehicleXL:      {BaseFare: 2500, PerKmRate: 650, PerMinuteRate: 60, AverageSpeedKmh: 30},
		VehiclePremium: {BaseFare: 5000, PerKmRate: 1200, PerMinuteRate: 80, AverageSpeedKmh: 30},
	}
}

// Lookup returns the config for vt. Unknown types fall back to CAR; a table
// without a CAR row falls back to the shipped CAR rates. It never fails.
func (t PricingTable) Lookup(vt VehicleType) VehiclePricingConfig {
	if cfg, ok := t[vt]; ok {
		return cfg
	}
	if cfg, ok := t[DefaultVehicle]; ok {
		return cfg
	}
	return DefaultPricingTable()[DefaultVehicle]
}

// Clone returns an independent copy of t.
func (t PricingTable) Clone() PricingTable {
	out := make(PricingTable, len(t))
	for vt, cfg := range t {
		out[vt] = cfg
	}
	return out
}

// Validate enforces that every configured rate is strictly positive.
func (t PricingTable) Validate() error {
	for vt, cfg := range t {
		if cfg.BaseFare <= 0 || cfg.PerKmRate <= 0 || cfg.PerMinuteRate <= 0 || cfg.AverageSpeedKmh <= 0 {
			return fmt.Errorf("%w: %s has a non-positive rate", ErrInvalidPricingTable, vt)
		}
	}
	return nil
}

// VehicleRate is a table row paired with its vehicle type, for listing.
type VehicleRate struct {
	VehicleType VehicleType `json:"vehicle_type"`
	VehiclePricingConfig
}

// Rates lists the table ordered by base fare.
func (t PricingTable) Rates() []VehicleRate {
	out := make([]VehicleRate, 0, len(t))
	for vt, cfg := range t {
		out = append(out, VehicleRate{VehicleType: vt, VehiclePricingConfig: cfg})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BaseFare != out[j].BaseFare {
			return out[i].BaseFare < out[j].BaseFare
		}
		return out[i].VehicleType < out[j].VehicleType
	})
	return out
}

// README: Location value types, geocoding results and validation errors.
package location

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAddressNotFound is returned when the geocoder has no match for an address.
var ErrAddressNotFound = errors.New("address not found")

// GeocodeResult is a resolved free-text address.
type GeocodeResult struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	PlaceName string  `json:"place_name"`
}

// InvalidLocationError reports a coordinate that cannot be priced.
type InvalidLocationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidLocationError) Error() string {
	switch {
	case e.Field == "":
		return "invalid location: " + e.Reason
	case strings.HasSuffix(e.Field, "latitude"), strings.HasSuffix(e.Field, "longitude"):
		return fmt.Sprintf("invalid location: %s %s (got %v)", e.Field, e.Reason, e.Value)
	default:
		return fmt.Sprintf("invalid location: %s %s", e.Field, e.Reason)
	}
}

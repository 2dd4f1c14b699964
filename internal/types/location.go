// README: Geographic value types shared by the fare, location and checkout modules.
package types

// ID is an opaque identifier (UUID string) for persisted records.
type ID string

// Location is a pickup origin or property destination. Address is optional.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// HasCoordinates reports whether the location carries a non-zero coordinate pair.
// (0,0) is treated as "unset" since it sits in the Gulf of Guinea.
func (l Location) HasCoordinates() bool {
	return l.Latitude != 0 || l.Longitude != 0
}

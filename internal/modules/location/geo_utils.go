// README: Pure geographic helpers: great-circle distance and coordinate validation.
package location

import (
	"math"

	"stayride/internal/types"
)

const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between origin and destination in
// kilometres, rounded to two decimals. Inputs are not validated; see Validate.
func DistanceKm(origin, destination types.Location) float64 {
	d := haversineKm(origin.Latitude, origin.Longitude, destination.Latitude, destination.Longitude)
	return math.Round(d*100) / 100
}

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Validate checks that loc has finite coordinates within [-90,90] x [-180,180].
// field names the location in the returned error ("origin", "destination").
func Validate(field string, loc types.Location) error {
	switch {
	case math.IsNaN(loc.Latitude) || math.IsInf(loc.Latitude, 0):
		return &InvalidLocationError{Field: field + ".latitude", Value: loc.Latitude, Reason: "must be a finite number"}
	case math.IsNaN(loc.Longitude) || math.IsInf(loc.Longitude, 0):
		return &InvalidLocationError{Field: field + ".longitude", Value: loc.Longitude, Reason: "must be a finite number"}
	case loc.Latitude < -90 || loc.Latitude > 90:
		return &InvalidLocationError{Field: field + ".latitude", Value: loc.Latitude, Reason: "must be between -90 and 90"}
	case loc.Longitude < -180 || loc.Longitude > 180:
		return &InvalidLocationError{Field: field + ".longitude", Value: loc.Longitude, Reason: "must be between -180 and 180"}
	}
	return nil
}

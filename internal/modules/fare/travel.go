package fare

import "math"

const (
	// MinTravelMinutes covers loading time on very short trips.
	MinTravelMinutes = 5
	// GenericAverageSpeedKmh is used when no vehicle class is known.
	GenericAverageSpeedKmh = 30.0
)

// TravelTimeMinutes converts a distance to whole minutes at the given average speed.
func TravelTimeMinutes(distanceKm, averageSpeedKmh float64) int {
	minutes := int(math.Ceil(distanceKm / averageSpeedKmh * 60))
	if minutes < MinTravelMinutes {
		return MinTravelMinutes
	}
	return minutes
}

// EstimateTravelMinutes is TravelTimeMinutes at GenericAverageSpeedKmh.
func EstimateTravelMinutes(distanceKm float64) int {
	return TravelTimeMinutes(distanceKm, GenericAverageSpeedKmh)
}

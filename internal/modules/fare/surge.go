// README: Time-of-day / day-of-week surge policy.
package fare

import "time"

const (
	NoSurge           = 1.00
	WeekdayPeakSurge  = 1.20
	WeekendNightSurge = 1.15
)

// SurgeMultiplier returns the demand multiplier for an hour (0-23) and weekday.
// Weekday peaks are [07:00,09:00) and [17:00,19:00); weekend evenings are [18:00,22:00).
func SurgeMultiplier(hour int, weekday time.Weekday) float64 {
	weekend := weekday == time.Saturday || weekday == time.Sunday
	switch {
	case !weekend && hour >= 7 && hour < 9:
		return WeekdayPeakSurge
	case !weekend && hour >= 17 && hour < 19:
		return WeekdayPeakSurge
	case weekend && hour >= 18 && hour < 22:
		return WeekendNightSurge
	default:
		return NoSurge
	}
}

// SurgeAt evaluates SurgeMultiplier in t's own location.
func SurgeAt(t time.Time) float64 {
	return SurgeMultiplier(t.Hour(), t.Weekday())
}

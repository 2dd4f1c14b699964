package fare

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayride/internal/modules/location"
	"stayride/internal/types"
)

var (
	airport  = types.Location{Latitude: -6.8781, Longitude: 39.2026}
	property = types.Location{Latitude: -6.7924, Longitude: 39.2083}

	wednesdayAfternoon = time.Date(2026, 10, 14, 14, 0, 0, 0, time.UTC)
	wednesdayMorning   = time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
)

func TestCompose_OffPeak(t *testing.T) {
	calc := Compose(DefaultPricingTable(), airport, property, "TZS", wednesdayAfternoon, VehicleCar)

	assert.Equal(t, 9.55, calc.Distance)
	assert.Equal(t, 20, calc.EstimatedTime)
	assert.Equal(t, NoSurge, calc.SurgeMultiplier)
	assert.Equal(t, 2000.0, calc.BaseFare)
	assert.Equal(t, math.Round(calc.Distance*500), calc.DistanceFare)
	assert.Equal(t, 1000.0, calc.TimeFare)
	assert.Equal(t, calc.BaseFare+calc.DistanceFare+calc.TimeFare, calc.Total)
	assert.Equal(t, 7775.0, calc.Total)
	assert.Equal(t, "TZS", calc.Currency)
	assert.Equal(t, VehicleCar, calc.VehicleType)
}

func TestCompose_WeekdayPeak(t *testing.T) {
	offPeak := Compose(DefaultPricingTable(), airport, property, "TZS", wednesdayAfternoon, VehicleCar)
	peak := Compose(DefaultPricingTable(), airport, property, "TZS", wednesdayMorning, VehicleCar)

	assert.Equal(t, WeekdayPeakSurge, peak.SurgeMultiplier)
	assert.Equal(t, offPeak.Subtotal, peak.Subtotal)
	assert.Equal(t, math.Ceil(peak.Subtotal*1.2), peak.Total)
	assert.Equal(t, 9330.0, peak.Total)
	assert.Greater(t, peak.Total, offPeak.Total)
}

func TestCompose_MinimumFareFloor(t *testing.T) {
	for vt, cfg := range DefaultPricingTable() {
		calc := Compose(DefaultPricingTable(), airport, airport, "TZS", wednesdayAfternoon, vt)
		assert.Equal(t, 0.0, calc.Distance, vt)
		assert.Equal(t, MinTravelMinutes, calc.EstimatedTime, vt)
		assert.GreaterOrEqual(t, calc.Total, cfg.BaseFare, vt)
	}
}

func TestCompose_UnknownVehicleFallsBackToCar(t *testing.T) {
	calc := Compose(DefaultPricingTable(), airport, property, "TZS", wednesdayAfternoon, "HELICOPTER")
	car := Compose(DefaultPricingTable(), airport, property, "TZS", wednesdayAfternoon, VehicleCar)
	assert.Equal(t, car, calc)
}

func TestCompose_CustomTable(t *testing.T) {
	table := PricingTable{VehicleCar: {BaseFare: 100, PerKmRate: 10, PerMinuteRate: 1, AverageSpeedKmh: 60}}
	calc := Compose(table, airport, property, "KES", wednesdayAfternoon, VehicleCar)

	assert.Equal(t, 10, calc.EstimatedTime)
	assert.Equal(t, 96.0, calc.DistanceFare)
	assert.Equal(t, 10.0, calc.TimeFare)
	assert.Equal(t, 206.0, calc.Total)
}

func TestCompose_Idempotent(t *testing.T) {
	a := Compose(DefaultPricingTable(), airport, property, "TZS", wednesdayMorning, VehicleBajaji)
	b := Compose(DefaultPricingTable(), airport, property, "TZS", wednesdayMorning, VehicleBajaji)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("Compose not idempotent: %+v vs %+v", a, b)
	}
}

func TestNewService_RejectsInvalidTable(t *testing.T) {
	_, err := NewService(nil, PricingTable{VehicleCar: {}})
	assert.ErrorIs(t, err, ErrInvalidPricingTable)
}

func TestService_CalculateUsesClock(t *testing.T) {
	svc, err := NewService(nil, nil, WithClock(func() time.Time { return wednesdayMorning }))
	require.NoError(t, err)

	calc := svc.Calculate(airport, property, "TZS", nil, VehicleCar)
	assert.Equal(t, WeekdayPeakSurge, calc.SurgeMultiplier)

	at := wednesdayAfternoon
	calc = svc.Calculate(airport, property, "TZS", &at, VehicleCar)
	assert.Equal(t, NoSurge, calc.SurgeMultiplier)
}

func TestService_CalculateConvertsToPricingZone(t *testing.T) {
	eat := time.FixedZone("EAT", 3*60*60)
	svc, err := NewService(nil, nil, WithLocation(eat))
	require.NoError(t, err)

	// 05:00 UTC is 08:00 EAT, inside the weekday morning peak.
	at := time.Date(2026, 10, 14, 5, 0, 0, 0, time.UTC)
	calc := svc.Calculate(airport, property, "TZS", &at, VehicleCar)
	assert.Equal(t, WeekdayPeakSurge, calc.SurgeMultiplier)
	assert.Equal(t, eat, svc.PricingTime(&at).Location())
}

func TestService_Quote(t *testing.T) {
	svc, err := NewService(nil, nil, WithCurrency("TZS"))
	require.NoError(t, err)

	at := wednesdayAfternoon
	calc, err := svc.Quote(context.Background(), QuoteRequest{
		Origin:      airport,
		Destination: property,
		At:          &at,
		VehicleType: "boda",
	})
	require.NoError(t, err)
	assert.Equal(t, "TZS", calc.Currency)
	assert.Equal(t, VehicleBoda, calc.VehicleType)

	calc, err = svc.Quote(context.Background(), QuoteRequest{
		Origin:      airport,
		Destination: property,
		Currency:    "usd",
		At:          &at,
		VehicleType: "spaceship",
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", calc.Currency)
	assert.Equal(t, VehicleCar, calc.VehicleType)
}

func TestService_QuoteRejectsInvalidGeometry(t *testing.T) {
	svc, err := NewService(nil, nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		req   QuoteRequest
		field string
	}{
		{"nan origin", QuoteRequest{Origin: types.Location{Latitude: math.NaN(), Longitude: 39.2}, Destination: property}, "origin.latitude"},
		{"latitude out of range", QuoteRequest{Origin: airport, Destination: types.Location{Latitude: 91, Longitude: 39.2}}, "destination.latitude"},
		{"longitude out of range", QuoteRequest{Origin: types.Location{Latitude: -6.8, Longitude: -181}, Destination: property}, "origin.longitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Quote(context.Background(), tt.req)
			var invalid *location.InvalidLocationError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestService_VehicleTypes(t *testing.T) {
	svc, err := NewService(nil, nil)
	require.NoError(t, err)
	assert.Len(t, svc.VehicleTypes(), 5)
}

func TestNewService_CopiesPricingTable(t *testing.T) {
	table := DefaultPricingTable()
	svc, err := NewService(nil, table)
	require.NoError(t, err)

	at := wednesdayAfternoon
	before := svc.Calculate(airport, property, "TZS", &at, VehicleCar)

	table[VehicleCar] = VehiclePricingConfig{BaseFare: 1}
	delete(table, VehicleXL)

	after := svc.Calculate(airport, property, "TZS", &at, VehicleCar)
	assert.Equal(t, before, after)
	assert.Equal(t, 7775.0, after.Total)
	assert.Len(t, svc.VehicleTypes(), 5)
}

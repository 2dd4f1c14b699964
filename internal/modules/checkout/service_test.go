package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayride/internal/modules/fare"
	"stayride/internal/modules/location"
	"stayride/internal/modules/pricing"
	"stayride/internal/types"
)

type fakeStays struct{ quote *pricing.StayQuote }

func (f fakeStays) QuoteStay(_ context.Context, id types.ID, nights int) (*pricing.StayQuote, error) {
	if id != f.quote.Property.ID {
		return nil, pricing.ErrPropertyNotFound
	}
	b, err := pricing.ComposeBookingPrice(f.quote.Property.BasePrice, nights, f.quote.Property.Services, 0)
	if err != nil {
		return nil, err
	}
	return &pricing.StayQuote{Property: f.quote.Property, Nights: nights, Currency: f.quote.Currency, Breakdown: b}, nil
}

// lockingFares wraps the real fare service and records locks in memory.
type lockingFares struct {
	*fare.Service
	locked []*fare.LockedFare
}

func (f *lockingFares) Lock(_ context.Context, calc fare.FareCalculation, origin, destination types.Location, pricedAt time.Time) (*fare.LockedFare, error) {
	lf := &fare.LockedFare{ID: "fare-1", Origin: origin, Destination: destination, PricedAt: pricedAt, Fare: calc}
	f.locked = append(f.locked, lf)
	return lf, nil
}

type fakeResolver struct{}

func (fakeResolver) Resolve(_ context.Context, loc types.Location) (types.Location, error) {
	if loc.HasCoordinates() {
		return loc, nil
	}
	if loc.Address == "JNIA" {
		return types.Location{Latitude: -6.8781, Longitude: 39.2026, Address: "Julius Nyerere International Airport"}, nil
	}
	return loc, location.ErrAddressNotFound
}

func newService(t *testing.T) (*Service, *lockingFares) {
	t.Helper()
	commission := 10.0
	stays := fakeStays{quote: &pricing.StayQuote{
		Currency: "TZS",
		Property: &pricing.Property{
			ID:        "prop-1",
			Name:      "Sea View Apartment",
			BasePrice: 100000,
			Latitude:  -6.7924,
			Longitude: 39.2083,
			Services: pricing.Services{
				CommissionPercent: &commission,
				DiscountRules:     []pricing.DiscountRule{{MinDays: 7, DiscountPercent: 15, Enabled: true}},
			},
		},
	}}
	fs, err := fare.NewService(nil, nil)
	require.NoError(t, err)
	fares := &lockingFares{Service: fs}
	return NewService(stays, fares, fakeResolver{}), fares
}

var wednesdayMorning = time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

func TestQuote_StayOnly(t *testing.T) {
	svc, _ := newService(t)

	q, err := svc.Quote(context.Background(), Request{PropertyID: "prop-1", Nights: 10, At: &wednesdayMorning})
	require.NoError(t, err)
	assert.Nil(t, q.Transport)
	assert.Equal(t, types.Money{Amount: 935000, Currency: "TZS"}, q.Total)
}

func TestQuote_WithTransport(t *testing.T) {
	svc, fares := newService(t)

	q, err := svc.Quote(context.Background(), Request{
		PropertyID:       "prop-1",
		Nights:           10,
		Origin:           types.Location{Address: "JNIA"},
		VehicleType:      "CAR",
		At:               &wednesdayMorning,
		IncludeTransport: true,
	})
	require.NoError(t, err)
	require.NotNil(t, q.Transport)
	assert.Equal(t, 9330.0, q.Transport.Fare.Total)
	assert.Equal(t, "TZS", q.Transport.Fare.Currency)
	assert.Equal(t, "Sea View Apartment", q.Transport.Destination.Address)
	assert.Equal(t, types.Money{Amount: 944330, Currency: "TZS"}, q.Total)
	assert.Empty(t, q.Transport.LockedFareID)
	assert.Empty(t, fares.locked)
}

func TestQuote_LocksFare(t *testing.T) {
	svc, fares := newService(t)

	q, err := svc.Quote(context.Background(), Request{
		PropertyID:       "prop-1",
		Nights:           1,
		Origin:           types.Location{Latitude: -6.8781, Longitude: 39.2026},
		At:               &wednesdayMorning,
		IncludeTransport: true,
		LockFare:         true,
	})
	require.NoError(t, err)
	assert.Equal(t, types.ID("fare-1"), q.Transport.LockedFareID)
	require.Len(t, fares.locked, 1)
	assert.Equal(t, q.Transport.Fare, fares.locked[0].Fare)
	assert.True(t, fares.locked[0].PricedAt.Equal(wednesdayMorning))
}

func TestQuote_Errors(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Quote(context.Background(), Request{PropertyID: "nope", Nights: 1})
	assert.ErrorIs(t, err, pricing.ErrPropertyNotFound)

	_, err = svc.Quote(context.Background(), Request{
		PropertyID:       "prop-1",
		Nights:           1,
		Origin:           types.Location{Address: "Atlantis"},
		IncludeTransport: true,
	})
	assert.ErrorIs(t, err, location.ErrAddressNotFound)

	_, err = svc.Quote(context.Background(), Request{
		PropertyID:       "prop-1",
		Nights:           1,
		Origin:           types.Location{Latitude: 95, Longitude: 39.2},
		IncludeTransport: true,
	})
	var invalid *location.InvalidLocationError
	assert.True(t, errors.As(err, &invalid))
}

func TestQuote_RejectsPropertyWithoutCoordinates(t *testing.T) {
	fs, err := fare.NewService(nil, nil)
	require.NoError(t, err)
	fares := &lockingFares{Service: fs}
	unpinned := fakeStays{quote: &pricing.StayQuote{
		Currency: "TZS",
		Property: &pricing.Property{ID: "prop-2", Name: "Unmapped Cottage", BasePrice: 50000},
	}}
	svc := NewService(unpinned, fares, fakeResolver{})

	q, err := svc.Quote(context.Background(), Request{
		PropertyID:       "prop-2",
		Nights:           2,
		Origin:           types.Location{Latitude: -6.8781, Longitude: 39.2026},
		At:               &wednesdayMorning,
		IncludeTransport: true,
		LockFare:         true,
	})
	assert.Nil(t, q)
	var invalid *location.InvalidLocationError
	require.True(t, errors.As(err, &invalid), "got %v", err)
	assert.Equal(t, "destination", invalid.Field)
	assert.Empty(t, fares.locked)

	q, err = svc.Quote(context.Background(), Request{PropertyID: "prop-2", Nights: 2, At: &wednesdayMorning})
	require.NoError(t, err)
	assert.Equal(t, types.Money{Amount: 100000, Currency: "TZS"}, q.Total)
}

func TestQuote_LockRequiresTransport(t *testing.T) {
	svc, fares := newService(t)

	_, err := svc.Quote(context.Background(), Request{
		PropertyID: "prop-1",
		Nights:     2,
		Origin:     types.Location{Latitude: -6.8781, Longitude: 39.2026},
		At:         &wednesdayMorning,
		LockFare:   true,
	})
	assert.ErrorIs(t, err, ErrLockWithoutTransport)
	assert.Empty(t, fares.locked)
}

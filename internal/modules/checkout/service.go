// README: Checkout service composes the stay price and the upfront ride into one total.
package checkout

import (
	"context"
	"time"

	"stayride/internal/modules/fare"
	"stayride/internal/modules/location"
	"stayride/internal/modules/pricing"
	"stayride/internal/types"
)

type StayQuoter interface {
	QuoteStay(ctx context.Context, propertyID types.ID, nights int) (*pricing.StayQuote, error)
}

type FareQuoter interface {
	Quote(ctx context.Context, req fare.QuoteRequest) (fare.FareCalculation, error)
	Lock(ctx context.Context, calc fare.FareCalculation, origin, destination types.Location, pricedAt time.Time) (*fare.LockedFare, error)
	PricingTime(at *time.Time) time.Time
}

type LocationResolver interface {
	Resolve(ctx context.Context, loc types.Location) (types.Location, error)
}

type Service struct {
	stays     StayQuoter
	fares     FareQuoter
	locations LocationResolver
}

// NewService wires the collaborators. locations may be nil when callers always send coordinates.
func NewService(stays StayQuoter, fares FareQuoter, locations LocationResolver) *Service {
	return &Service{stays: stays, fares: fares, locations: locations}
}

func (s *Service) Quote(ctx context.Context, req Request) (*Quote, error) {
	if req.LockFare && !req.IncludeTransport {
		return nil, ErrLockWithoutTransport
	}
	stay, err := s.stays.QuoteStay(ctx, req.PropertyID, req.Nights)
	if err != nil {
		return nil, err
	}

	// Pin the pricing instant once so the returned quote and any locked fare agree.
	pricedAt := s.fares.PricingTime(req.At)
	q := &Quote{
		PropertyID: req.PropertyID,
		Nights:     req.Nights,
		Stay:       stay.Breakdown,
		Total:      types.Money{Amount: stay.Breakdown.FinalPrice, Currency: stay.Currency},
		PricedAt:   pricedAt,
	}
	if !req.IncludeTransport {
		return q, nil
	}

	origin := req.Origin
	if s.locations != nil {
		if origin, err = s.locations.Resolve(ctx, req.Origin); err != nil {
			return nil, err
		}
	}
	destination := stay.Property.Location()
	if !destination.HasCoordinates() {
		return nil, &location.InvalidLocationError{Field: "destination", Reason: "has no coordinates for the property"}
	}

	calc, err := s.fares.Quote(ctx, fare.QuoteRequest{
		Origin:      origin,
		Destination: destination,
		Currency:    stay.Currency,
		At:          &pricedAt,
		VehicleType: req.VehicleType,
	})
	if err != nil {
		return nil, err
	}

	t := &Transport{Origin: origin, Destination: destination, Fare: calc}
	if req.LockFare {
		locked, err := s.fares.Lock(ctx, calc, origin, destination, pricedAt)
		if err != nil {
			return nil, err
		}
		t.LockedFareID = locked.ID
	}
	q.Transport = t
	q.Total = q.Total.Add(types.Money{Amount: calc.Total, Currency: calc.Currency})
	return q, nil
}

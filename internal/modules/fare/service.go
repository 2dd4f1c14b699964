// README: Fare service computes deterministic upfront transport fares.
package fare

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"stayride/internal/modules/location"
	"stayride/internal/types"
)

// DefaultCurrency is used when neither the request nor the service names one.
const DefaultCurrency = "TZS"

// Compose is the pure fare formula. It performs no validation: malformed
// coordinates yield NaN amounts. Identical arguments give identical results.
func Compose(table PricingTable, origin, destination types.Location, currency string, at time.Time, vt VehicleType) FareCalculation {
	cfg := table.Lookup(vt)
	if _, ok := table[vt]; !ok {
		vt = DefaultVehicle
	}

	distance := location.DistanceKm(origin, destination)
	estimated := TravelTimeMinutes(distance, cfg.AverageSpeedKmh)
	surge := SurgeAt(at)

	distanceFare := math.Round(distance * cfg.PerKmRate)
	timeFare := math.Round(float64(estimated) * cfg.PerMinuteRate)
	subtotal := cfg.BaseFare + distanceFare + timeFare

	total := math.Ceil(subtotal * surge)
	if total < cfg.BaseFare {
		total = cfg.BaseFare
	}

	return FareCalculation{
		BaseFare:        cfg.BaseFare,
		DistanceFare:    distanceFare,
		TimeFare:        timeFare,
		Subtotal:        subtotal,
		SurgeMultiplier: surge,
		Total:           total,
		Distance:        distance,
		EstimatedTime:   estimated,
		Currency:        currency,
		VehicleType:     vt,
	}
}

type Service struct {
	store    *Store
	table    PricingTable
	currency string
	loc      *time.Location
	now      func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used when no pricing time is given.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation evaluates surge windows in loc instead of each timestamp's own zone.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithCurrency sets the currency applied to quotes that do not name one.
func WithCurrency(currency string) Option {
	return func(s *Service) {
		if currency != "" {
			s.currency = currency
		}
	}
}

// NewService builds a fare service over a private copy of table, so later
// writes to the caller's map do not reach live pricing. A nil table means DefaultPricingTable.
func NewService(store *Store, table PricingTable, opts ...Option) (*Service, error) {
	if table == nil {
		table = DefaultPricingTable()
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	s := &Service{
		store:    store,
		table:    table.Clone(),
		currency: DefaultCurrency,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Calculate prices a trip at `at`, or now when at is nil.
func (s *Service) Calculate(origin, destination types.Location, currency string, at *time.Time, vt VehicleType) FareCalculation {
	return Compose(s.table, origin, destination, currency, s.pricingTime(at), vt)
}

// Quote validates the request and prices it. Invalid geometry returns a
// *location.InvalidLocationError instead of a NaN fare.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (FareCalculation, error) {
	if err := location.Validate("origin", req.Origin); err != nil {
		return FareCalculation{}, err
	}
	if err := location.Validate("destination", req.Destination); err != nil {
		return FareCalculation{}, err
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.currency
	}
	vt, _ := ParseVehicleType(req.VehicleType)
	return s.Calculate(req.Origin, req.Destination, currency, req.At, vt), nil
}

// Lock persists a computed fare so the booking keeps that exact price.
func (s *Service) Lock(ctx context.Context, calc FareCalculation, origin, destination types.Location, pricedAt time.Time) (*LockedFare, error) {
	lf := &LockedFare{
		ID:          types.ID(uuid.NewString()),
		Origin:      origin,
		Destination: destination,
		PricedAt:    pricedAt,
		CreatedAt:   s.now(),
		Fare:        calc,
	}
	if err := s.store.Save(ctx, lf); err != nil {
		return nil, err
	}
	return lf, nil
}

func (s *Service) GetLocked(ctx context.Context, id types.ID) (*LockedFare, error) {
	return s.store.Get(ctx, id)
}

// VehicleTypes lists the configured pricing table.
func (s *Service) VehicleTypes() []VehicleRate {
	return s.table.Rates()
}

// PricingTime resolves the instant a quote is priced at, in the service's zone.
func (s *Service) PricingTime(at *time.Time) time.Time {
	return s.pricingTime(at)
}

func (s *Service) pricingTime(at *time.Time) time.Time {
	t := s.now()
	if at != nil {
		t = *at
	}
	if s.loc != nil {
		t = t.In(s.loc)
	}
	return t
}

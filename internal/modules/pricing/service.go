// README: Pricing service quotes stays for stored properties.
package pricing

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"stayride/internal/types"
)

// PropertySource supplies property pricing data.
type PropertySource interface {
	GetProperty(ctx context.Context, id types.ID) (*Property, error)
}

// CommissionSource supplies the system-wide commission default.
type CommissionSource interface {
	SystemCommissionPercent(ctx context.Context) (float64, error)
}

type Service struct {
	properties        PropertySource
	settings          CommissionSource
	defaultCommission float64
	defaultCurrency   string
	log               *zap.Logger
}

// NewService builds a stay pricing service. defaultCommission is used when the
// settings source is missing or fails.
func NewService(properties PropertySource, settings CommissionSource, defaultCommission float64, defaultCurrency string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		properties:        properties,
		settings:          settings,
		defaultCommission: defaultCommission,
		defaultCurrency:   defaultCurrency,
		log:               log,
	}
}

// SystemCommission returns the configured platform commission, falling back to
// the static default when the settings source is unavailable.
func (s *Service) SystemCommission(ctx context.Context) float64 {
	if s.settings == nil {
		return s.defaultCommission
	}
	pct, err := s.settings.SystemCommissionPercent(ctx)
	if err != nil {
		if !errors.Is(err, ErrSettingNotFound) {
			s.log.Warn("system commission unavailable, using default",
				zap.Float64("default", s.defaultCommission), zap.Error(err))
		}
		return s.defaultCommission
	}
	return pct
}

// QuoteStay prices nights at the property's base rate.
func (s *Service) QuoteStay(ctx context.Context, propertyID types.ID, nights int) (*StayQuote, error) {
	if nights < 0 {
		return nil, ErrInvalidNights
	}
	p, err := s.properties.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	b, err := ComposeBookingPrice(p.BasePrice, nights, p.Services, s.SystemCommission(ctx))
	if err != nil {
		return nil, err
	}
	currency := p.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}
	return &StayQuote{Property: p, Nights: nights, Currency: currency, Breakdown: b}, nil
}

// Compose previews a breakdown for ad-hoc inputs. A nil systemCommission uses
// the configured system commission.
func (s *Service) Compose(ctx context.Context, nightlyPrice float64, nights int, services Services, systemCommission *float64) (Breakdown, error) {
	var commission float64
	if systemCommission != nil {
		commission = *systemCommission
	} else {
		commission = s.SystemCommission(ctx)
	}
	return ComposeBookingPrice(nightlyPrice, nights, services, commission)
}

// README: Location service resolves addresses into coordinates through a cached geocoder.
package location

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"stayride/internal/types"
)

// ErrGeocodingDisabled is returned when no geocoder is configured.
var ErrGeocodingDisabled = errors.New("geocoding is not configured")

// Geocoder turns a free-text address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (GeocodeResult, error)
}

type Service struct {
	geocoder Geocoder
	store    *Store
	log      *zap.Logger
}

// NewService wires a geocoder and an optional cache store. Either may be nil.
func NewService(geocoder Geocoder, store *Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{geocoder: geocoder, store: store, log: log}
}

// Geocode resolves address, serving repeated lookups from the cache.
func (s *Service) Geocode(ctx context.Context, address string) (GeocodeResult, error) {
	key := normalizeAddress(address)
	if key == "" {
		return GeocodeResult{}, &InvalidLocationError{Field: "address", Reason: "must not be empty"}
	}
	if s.geocoder == nil {
		return GeocodeResult{}, ErrGeocodingDisabled
	}

	if s.store != nil {
		res, ok, err := s.store.GetGeocode(ctx, key)
		if err != nil {
			s.log.Warn("geocode cache read failed", zap.String("address", key), zap.Error(err))
		} else if ok {
			return res, nil
		}
	}

	res, err := s.geocoder.Geocode(ctx, address)
	if err != nil {
		return GeocodeResult{}, err
	}

	if s.store != nil {
		if err := s.store.SetGeocode(ctx, key, res); err != nil {
			s.log.Warn("geocode cache write failed", zap.String("address", key), zap.Error(err))
		}
	}
	return res, nil
}

// Resolve returns loc unchanged when it has coordinates, otherwise geocodes its address.
func (s *Service) Resolve(ctx context.Context, loc types.Location) (types.Location, error) {
	if loc.HasCoordinates() {
		return loc, nil
	}
	if strings.TrimSpace(loc.Address) == "" {
		return loc, &InvalidLocationError{Field: "address", Reason: "coordinates or address required"}
	}
	res, err := s.Geocode(ctx, loc.Address)
	if err != nil {
		return loc, err
	}
	out := types.Location{Latitude: res.Latitude, Longitude: res.Longitude, Address: res.PlaceName}
	if out.Address == "" {
		out.Address = loc.Address
	}
	return out, nil
}

func normalizeAddress(address string) string {
	return strings.Join(strings.Fields(strings.ToLower(address)), " ")
}

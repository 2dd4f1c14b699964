package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"stayride/internal/modules/location"
)

// GeocodeService resolves free-text addresses with the Google Geocoding API.
type GeocodeService struct {
	client   *maps.Client
	region   string
	language string
}

// NewGeocodeService creates a GeocodeService. region biases results (e.g. "tz").
func NewGeocodeService(apiKey, region, language string) (*GeocodeService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GeocodeService{client: client, region: region, language: language}, nil
}

// Geocode returns the best match for address.
func (s *GeocodeService) Geocode(ctx context.Context, address string) (location.GeocodeResult, error) {
	r := &maps.GeocodingRequest{
		Address:  address,
		Region:   s.region,
		Language: s.language,
	}

	results, err := s.client.Geocode(ctx, r)
	if err != nil {
		return location.GeocodeResult{}, fmt.Errorf("maps api error: %w", err)
	}
	return firstResult(results)
}

func firstResult(results []maps.GeocodingResult) (location.GeocodeResult, error) {
	if len(results) == 0 {
		return location.GeocodeResult{}, location.ErrAddressNotFound
	}
	best := results[0]
	return location.GeocodeResult{
		Latitude:  best.Geometry.Location.Lat,
		Longitude: best.Geometry.Location.Lng,
		PlaceName: best.FormattedAddress,
	}, nil
}

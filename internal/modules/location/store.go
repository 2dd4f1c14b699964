// README: Location store backed by Redis; caches geocoding results.
package location

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const geocodeKeyPrefix = "geocode:"

type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redis *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: redis, ttl: ttl}
}

// GetGeocode returns a cached result. ok is false on a cache miss.
func (s *Store) GetGeocode(ctx context.Context, key string) (GeocodeResult, bool, error) {
	val, err := s.redis.Get(ctx, geocodeKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return GeocodeResult{}, false, nil
	}
	if err != nil {
		return GeocodeResult{}, false, err
	}
	var res GeocodeResult
	if err := json.Unmarshal([]byte(val), &res); err != nil {
		return GeocodeResult{}, false, err
	}
	return res, true, nil
}

func (s *Store) SetGeocode(ctx context.Context, key string, res GeocodeResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, geocodeKeyPrefix+key, data, s.ttl).Err()
}

// README: Property and system settings stores backed by PostgreSQL, settings cached in Redis.
package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"stayride/internal/types"
)

type PropertyStore struct {
	db *pgxpool.Pool
}

func NewPropertyStore(db *pgxpool.Pool) *PropertyStore {
	return &PropertyStore{db: db}
}

func (s *PropertyStore) GetProperty(ctx context.Context, id types.ID) (*Property, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, base_price, currency, latitude, longitude,
		       commission_percent, discount_rules
		FROM properties
		WHERE id = $1`, string(id),
	)

	var p Property
	var rules []byte
	err := row.Scan(
		&p.ID, &p.Name, &p.BasePrice, &p.Currency, &p.Latitude, &p.Longitude,
		&p.Services.CommissionPercent, &rules,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(rules) > 0 {
		if err := json.Unmarshal(rules, &p.Services.DiscountRules); err != nil {
			return nil, fmt.Errorf("decode discount rules for %s: %w", id, err)
		}
	}
	return &p, nil
}

const (
	commissionSettingKey = "commission_percent"
	settingsKeyPrefix    = "settings:"
)

// ErrSettingNotFound is returned when system_settings has no row for a key.
var ErrSettingNotFound = errors.New("system setting not found")

type SettingsStore struct {
	db    *pgxpool.Pool
	redis *redis.Client
	ttl   time.Duration
}

// NewSettingsStore reads settings from db, caching them in redis for ttl.
// redis may be nil to disable caching.
func NewSettingsStore(db *pgxpool.Pool, redis *redis.Client, ttl time.Duration) *SettingsStore {
	return &SettingsStore{db: db, redis: redis, ttl: ttl}
}

// SystemCommissionPercent returns the platform-wide commission percent.
func (s *SettingsStore) SystemCommissionPercent(ctx context.Context) (float64, error) {
	cacheKey := settingsKeyPrefix + commissionSettingKey
	if s.redis != nil {
		val, err := s.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			if pct, perr := strconv.ParseFloat(val, 64); perr == nil {
				return pct, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			return s.loadCommission(ctx)
		}
	}

	pct, err := s.loadCommission(ctx)
	if err != nil {
		return 0, err
	}
	if s.redis != nil {
		// Cache write failures only cost an extra query next time.
		_ = s.redis.Set(ctx, cacheKey, strconv.FormatFloat(pct, 'f', -1, 64), s.ttl).Err()
	}
	return pct, nil
}

func (s *SettingsStore) loadCommission(ctx context.Context) (float64, error) {
	if s.db == nil {
		return 0, ErrSettingNotFound
	}
	var pct float64
	err := s.db.QueryRow(ctx,
		`SELECT value::float8 FROM system_settings WHERE key = $1`, commissionSettingKey,
	).Scan(&pct)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrSettingNotFound
	}
	if err != nil {
		return 0, err
	}
	return pct, nil
}

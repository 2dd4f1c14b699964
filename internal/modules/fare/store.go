// README: Locked fare store backed by PostgreSQL.
package fare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stayride/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Save(ctx context.Context, lf *LockedFare) error {
	breakdown, err := json.Marshal(lf.Fare)
	if err != nil {
		return fmt.Errorf("encode fare: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO fare_quotes (
			id, origin_lat, origin_lng, origin_address,
			dest_lat, dest_lng, dest_address,
			vehicle_type, currency, total, breakdown,
			priced_at, created_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, $9, $10, $11,
			$12, $13
		)`,
		string(lf.ID),
		lf.Origin.Latitude, lf.Origin.Longitude, lf.Origin.Address,
		lf.Destination.Latitude, lf.Destination.Longitude, lf.Destination.Address,
		string(lf.Fare.VehicleType), lf.Fare.Currency, lf.Fare.Total, breakdown,
		lf.PricedAt, lf.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*LockedFare, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, origin_lat, origin_lng, origin_address,
		       dest_lat, dest_lng, dest_address,
		       breakdown, priced_at, created_at
		FROM fare_quotes
		WHERE id = $1`, string(id),
	)

	var lf LockedFare
	var breakdown []byte
	err := row.Scan(
		&lf.ID, &lf.Origin.Latitude, &lf.Origin.Longitude, &lf.Origin.Address,
		&lf.Destination.Latitude, &lf.Destination.Longitude, &lf.Destination.Address,
		&breakdown, &lf.PricedAt, &lf.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(breakdown, &lf.Fare); err != nil {
		return nil, fmt.Errorf("decode fare %s: %w", id, err)
	}
	return &lf, nil
}

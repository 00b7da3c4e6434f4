package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// LocationRepository provides read access to restaurant locations.
type LocationRepository struct {
	DB *sql.DB
}

// NewLocationRepository creates a new LocationRepository instance.
func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{DB: db}
}

// List returns every location ordered by code.
func (r *LocationRepository) List(ctx context.Context) ([]model.Location, error) {
	const q = `SELECT id, code, name, timezone, max_guests_per_slot, max_reservations_per_slot, created_at
	           FROM locations ORDER BY code`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Location
	for rows.Next() {
		var loc model.Location
		if err := rows.Scan(&loc.ID, &loc.Code, &loc.Name, &loc.Timezone,
			&loc.MaxGuestsPerSlot, &loc.MaxReservationsPerSlot, &loc.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	return out, rows.Err()
}

// GetByID fetches a single location or ErrNotFound.
func (r *LocationRepository) GetByID(ctx context.Context, id uint64) (*model.Location, error) {
	const q = `SELECT id, code, name, timezone, max_guests_per_slot, max_reservations_per_slot, created_at
	           FROM locations WHERE id = ?`
	var loc model.Location
	err := r.DB.QueryRowContext(ctx, q, id).Scan(&loc.ID, &loc.Code, &loc.Name, &loc.Timezone,
		&loc.MaxGuestsPerSlot, &loc.MaxReservationsPerSlot, &loc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

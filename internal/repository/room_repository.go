package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// RoomRepository provides access to dining rooms.
type RoomRepository struct {
	DB *sql.DB
}

// NewRoomRepository creates a new RoomRepository instance.
func NewRoomRepository(db *sql.DB) *RoomRepository {
	return &RoomRepository{DB: db}
}

// ListByLocation returns the location's rooms ordered by code.
func (r *RoomRepository) ListByLocation(ctx context.Context, locationID uint64) ([]model.Room, error) {
	const q = `SELECT id, location_id, code, name, max_capacity, is_active, created_at
	           FROM rooms WHERE location_id = ? ORDER BY code`
	rows, err := r.DB.QueryContext(ctx, q, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Room
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.LocationID, &rm.Code, &rm.Name,
			&rm.MaxCapacity, &rm.IsActive, &rm.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

// GetByID fetches a single room or ErrNotFound.
func (r *RoomRepository) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, location_id, code, name, max_capacity, is_active, created_at
	           FROM rooms WHERE id = ?`
	var rm model.Room
	err := r.DB.QueryRowContext(ctx, q, id).Scan(&rm.ID, &rm.LocationID, &rm.Code, &rm.Name,
		&rm.MaxCapacity, &rm.IsActive, &rm.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

// SetActive toggles whether a room participates in auto-assignment.
func (r *RoomRepository) SetActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE rooms SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

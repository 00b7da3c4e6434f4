package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// BlockDetail joins a block with its location and room names for the
// admin listing.
type BlockDetail struct {
	model.ReservationBlock
	LocationCode string
	RoomCode     string
	RoomName     string
}

// BlockRepository manages reservation blocks.
type BlockRepository struct {
	DB *sql.DB
}

// NewBlockRepository creates a new BlockRepository instance.
func NewBlockRepository(db *sql.DB) *BlockRepository {
	return &BlockRepository{DB: db}
}

// ListDetailed returns blocks, newest first, optionally scoped to a
// location.
func (r *BlockRepository) ListDetailed(ctx context.Context, locationID uint64) ([]BlockDetail, error) {
	q := `SELECT b.id, b.location_id, b.room_id, b.start_date, b.end_date,
	             b.start_time, b.end_time, b.block_type, b.reason, b.created_by, b.created_at,
	             l.code, rm.code, rm.name
	      FROM reservation_blocks b
	      JOIN locations l ON l.id = b.location_id
	      LEFT JOIN rooms rm ON rm.id = b.room_id`
	var args []interface{}
	if locationID != 0 {
		q += ` WHERE b.location_id = ?`
		args = append(args, locationID)
	}
	q += ` ORDER BY b.created_at DESC`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BlockDetail
	for rows.Next() {
		var d BlockDetail
		var roomID, createdBy sql.NullInt64
		var startStr, endStr string
		var reason, roomCode, roomName sql.NullString
		if err := rows.Scan(
			&d.ID, &d.LocationID, &roomID, &d.StartDate, &d.EndDate,
			&startStr, &endStr, &d.BlockType, &reason, &createdBy, &d.CreatedAt,
			&d.LocationCode, &roomCode, &roomName,
		); err != nil {
			return nil, err
		}
		if roomID.Valid {
			id := uint64(roomID.Int64)
			d.RoomID = &id
		}
		if createdBy.Valid {
			id := uint64(createdBy.Int64)
			d.CreatedBy = &id
		}
		if reason.Valid {
			d.Reason = reason.String
		}
		if roomCode.Valid {
			d.RoomCode = roomCode.String
		}
		if roomName.Valid {
			d.RoomName = roomName.String
		}
		if d.StartTime, err = parseSQLTime(startStr); err != nil {
			return nil, err
		}
		if d.EndTime, err = parseSQLTime(endStr); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Create inserts a block and fills in its ID.
func (r *BlockRepository) Create(ctx context.Context, b *model.ReservationBlock) error {
	const q = `INSERT INTO reservation_blocks
	           (location_id, room_id, start_date, end_date, start_time, end_time, block_type, reason, created_by)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.DB.ExecContext(ctx, q,
		b.LocationID, nullableID(b.RoomID),
		b.StartDate.Format("2006-01-02"), b.EndDate.Format("2006-01-02"),
		sqlTime(b.StartTime), sqlTime(b.EndTime),
		b.BlockType, b.Reason, nullableID(b.CreatedBy))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// GetByID fetches a block or ErrNotFound.
func (r *BlockRepository) GetByID(ctx context.Context, id uint64) (*model.ReservationBlock, error) {
	q := `SELECT ` + blockColumns + ` FROM reservation_blocks WHERE id = ?`
	b, err := scanBlock(r.DB.QueryRowContext(ctx, q, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes a block.
func (r *BlockRepository) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM reservation_blocks WHERE id = ?`, id)
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

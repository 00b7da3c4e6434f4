package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/restaurant-reservation/internal/booking"
	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/timeslot"
)

// dbtx is the subset of *sql.DB and *sql.Tx the store queries through,
// so the same methods serve both transactional and plain reads.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// BookingStore implements booking.TxStore over MySQL.  Reads inside
// InTx observe the transaction's snapshot (REPEATABLE READ); the unique
// reservation-number index plus the engine's retry loop covers the
// remaining write races.
type BookingStore struct {
	db *sql.DB // nil when the store is already bound to a transaction
	q  dbtx
}

// NewBookingStore returns a store bound to the connection pool.
func NewBookingStore(db *sql.DB) *BookingStore {
	return &BookingStore{db: db, q: db}
}

// InTx runs fn inside a single transaction.  Any error from fn rolls
// back every write, so a failed admission leaves no partial state.
// Nested calls reuse the surrounding transaction.
func (s *BookingStore) InTx(ctx context.Context, fn func(booking.Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&BookingStore{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Location loads a location by ID.
func (s *BookingStore) Location(ctx context.Context, id uint64) (*model.Location, error) {
	const q = `SELECT id, code, name, timezone, max_guests_per_slot, max_reservations_per_slot, created_at
	           FROM locations WHERE id = ?`
	var loc model.Location
	err := s.q.QueryRowContext(ctx, q, id).Scan(
		&loc.ID, &loc.Code, &loc.Name, &loc.Timezone,
		&loc.MaxGuestsPerSlot, &loc.MaxReservationsPerSlot, &loc.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &booking.NotFoundError{Entity: "location", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// Room loads a room by ID.
func (s *BookingStore) Room(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, location_id, code, name, max_capacity, is_active, created_at
	           FROM rooms WHERE id = ?`
	var r model.Room
	err := s.q.QueryRowContext(ctx, q, id).Scan(
		&r.ID, &r.LocationID, &r.Code, &r.Name, &r.MaxCapacity, &r.IsActive, &r.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &booking.NotFoundError{Entity: "room", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// RoomsByLocation returns every room of the location, active or not,
// ordered by code for deterministic selection input.
func (s *BookingStore) RoomsByLocation(ctx context.Context, locationID uint64) ([]model.Room, error) {
	const q = `SELECT id, location_id, code, name, max_capacity, is_active, created_at
	           FROM rooms WHERE location_id = ? ORDER BY code`
	rows, err := s.q.QueryContext(ctx, q, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Room
	for rows.Next() {
		var r model.Room
		if err := rows.Scan(&r.ID, &r.LocationID, &r.Code, &r.Name, &r.MaxCapacity, &r.IsActive, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

const reservationColumns = `id, reservation_number, customer_id, location_id, room_id,
	date, time, duration_minutes, party_size, status, special_requests, created_at, updated_at`

func scanReservation(scan func(dest ...interface{}) error) (*model.Reservation, error) {
	var r model.Reservation
	var roomID sql.NullInt64
	var timeStr string
	var special sql.NullString
	if err := scan(
		&r.ID, &r.Number, &r.CustomerID, &r.LocationID, &roomID,
		&r.Date, &timeStr, &r.DurationMinutes, &r.PartySize, &r.Status,
		&special, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if roomID.Valid {
		id := uint64(roomID.Int64)
		r.RoomID = &id
	}
	if special.Valid {
		r.SpecialRequests = special.String
	}
	start, err := parseSQLTime(timeStr)
	if err != nil {
		return nil, err
	}
	r.Start = start
	return &r, nil
}

func (s *BookingStore) confirmedReservations(ctx context.Context, column string, scopeID uint64, date time.Time, excludeID uint64) ([]model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations
	      WHERE ` + column + ` = ? AND date = ? AND status = 'confirmed'`
	args := []interface{}{scopeID, date.Format("2006-01-02")}
	if excludeID != 0 {
		q += " AND id <> ?"
		args = append(args, excludeID)
	}
	rows, err := s.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Reservation
	for rows.Next() {
		r, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

// ConfirmedByRoom returns the room's confirmed reservations on a date.
func (s *BookingStore) ConfirmedByRoom(ctx context.Context, roomID uint64, date time.Time, excludeID uint64) ([]model.Reservation, error) {
	return s.confirmedReservations(ctx, "room_id", roomID, date, excludeID)
}

// ConfirmedByLocation returns the location's confirmed reservations on
// a date regardless of room.
func (s *BookingStore) ConfirmedByLocation(ctx context.Context, locationID uint64, date time.Time, excludeID uint64) ([]model.Reservation, error) {
	return s.confirmedReservations(ctx, "location_id", locationID, date, excludeID)
}

const blockColumns = `id, location_id, room_id, start_date, end_date, start_time, end_time,
	block_type, reason, created_by, created_at`

func scanBlock(scan func(dest ...interface{}) error) (*model.ReservationBlock, error) {
	var b model.ReservationBlock
	var roomID, createdBy sql.NullInt64
	var startStr, endStr string
	var reason sql.NullString
	if err := scan(
		&b.ID, &b.LocationID, &roomID, &b.StartDate, &b.EndDate, &startStr, &endStr,
		&b.BlockType, &reason, &createdBy, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	if roomID.Valid {
		id := uint64(roomID.Int64)
		b.RoomID = &id
	}
	if createdBy.Valid {
		id := uint64(createdBy.Int64)
		b.CreatedBy = &id
	}
	if reason.Valid {
		b.Reason = reason.String
	}
	var err error
	if b.StartTime, err = parseSQLTime(startStr); err != nil {
		return nil, err
	}
	if b.EndTime, err = parseSQLTime(endStr); err != nil {
		return nil, err
	}
	return &b, nil
}

// RoomBlocks returns blocks of one type scoped to the room whose date
// range covers the given day.
func (s *BookingStore) RoomBlocks(ctx context.Context, roomID uint64, date time.Time, blockType string) ([]model.ReservationBlock, error) {
	q := `SELECT ` + blockColumns + ` FROM reservation_blocks
	      WHERE room_id = ? AND block_type = ? AND ? BETWEEN start_date AND end_date`
	return s.queryBlocks(ctx, q, roomID, blockType, date.Format("2006-01-02"))
}

// LocationBlocks returns location-wide hard blocks (room unset) whose
// date range covers the given day.
func (s *BookingStore) LocationBlocks(ctx context.Context, locationID uint64, date time.Time) ([]model.ReservationBlock, error) {
	q := `SELECT ` + blockColumns + ` FROM reservation_blocks
	      WHERE location_id = ? AND room_id IS NULL AND block_type = 'hard'
	      AND ? BETWEEN start_date AND end_date`
	return s.queryBlocks(ctx, q, locationID, date.Format("2006-01-02"))
}

func (s *BookingStore) queryBlocks(ctx context.Context, q string, args ...interface{}) ([]model.ReservationBlock, error) {
	rows, err := s.q.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.ReservationBlock
	for rows.Next() {
		b, err := scanBlock(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// UpsertCustomer matches a customer by email and refreshes the stored
// name and phone, creating the row when the email is new.
func (s *BookingStore) UpsertCustomer(ctx context.Context, name, email, phone string) (uint64, error) {
	var id uint64
	err := s.q.QueryRowContext(ctx, `SELECT id FROM customers WHERE email = ?`, email).Scan(&id)
	switch {
	case err == nil:
		_, err = s.q.ExecContext(ctx,
			`UPDATE customers SET name = ?, phone = ?, updated_at = NOW() WHERE id = ?`,
			name, phone, id)
		return id, err
	case errors.Is(err, sql.ErrNoRows):
		res, err := s.q.ExecContext(ctx,
			`INSERT INTO customers (name, email, phone, newsletter_signup) VALUES (?, ?, ?, FALSE)`,
			name, email, phone)
		if err != nil {
			return 0, err
		}
		newID, err := res.LastInsertId()
		return uint64(newID), err
	default:
		return 0, err
	}
}

// Reservation loads a reservation by ID.
func (s *BookingStore) Reservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	q := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	r, err := scanReservation(s.q.QueryRowContext(ctx, q, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &booking.NotFoundError{Entity: "reservation", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// InsertReservation persists a new reservation and fills in its ID.
// A duplicate reservation number surfaces as booking.ErrDuplicateNumber
// so the engine can regenerate and retry.
func (s *BookingStore) InsertReservation(ctx context.Context, r *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (reservation_number, customer_id, location_id, room_id, date, time,
	            duration_minutes, party_size, status, special_requests)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := s.q.ExecContext(ctx, q,
		r.Number, r.CustomerID, r.LocationID, nullableID(r.RoomID),
		r.Date.Format("2006-01-02"), sqlTime(r.Start),
		r.DurationMinutes, r.PartySize, r.Status, r.SpecialRequests)
	if isDuplicateKey(err) {
		return booking.ErrDuplicateNumber
	}
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	r.ID = uint64(id)
	return nil
}

// UpdateReservation rewrites all mutable fields of a reservation.
func (s *BookingStore) UpdateReservation(ctx context.Context, r *model.Reservation) error {
	const q = `UPDATE reservations
	           SET customer_id = ?, location_id = ?, room_id = ?, date = ?, time = ?,
	               duration_minutes = ?, party_size = ?, status = ?, special_requests = ?,
	               updated_at = NOW()
	           WHERE id = ?`
	_, err := s.q.ExecContext(ctx, q,
		r.CustomerID, r.LocationID, nullableID(r.RoomID),
		r.Date.Format("2006-01-02"), sqlTime(r.Start),
		r.DurationMinutes, r.PartySize, r.Status, r.SpecialRequests, r.ID)
	return err
}

// DeleteReservation hard-deletes a reservation.
func (s *BookingStore) DeleteReservation(ctx context.Context, id uint64) error {
	_, err := s.q.ExecContext(ctx, `DELETE FROM reservations WHERE id = ?`, id)
	return err
}

// RecordAudit appends an audit entry.
func (s *BookingStore) RecordAudit(ctx context.Context, entry *model.AuditLog) error {
	const q = `INSERT INTO audit_log (admin_id, action, entity_type, entity_id, details)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := s.q.ExecContext(ctx, q,
		nullableID(entry.AdminID), entry.Action, entry.EntityType, entry.EntityID, entry.Details)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = uint64(id)
	return nil
}

// parseSQLTime converts a MySQL TIME value ("17:00:00") to a
// TimeOfDay; seconds are discarded.
func parseSQLTime(s string) (timeslot.TimeOfDay, error) {
	if len(s) >= 5 {
		s = s[:5]
	}
	return timeslot.Parse(s)
}

// sqlTime renders a TimeOfDay for a MySQL TIME column.
func sqlTime(t timeslot.TimeOfDay) string {
	return t.String() + ":00"
}

func nullableID(id *uint64) interface{} {
	if id == nil {
		return nil
	}
	return *id
}

// isDuplicateKey reports a MySQL 1062 duplicate-entry error.
func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

// isForeignKeyViolation reports a MySQL 1451 error, raised when a
// delete would orphan referencing rows.
func isForeignKeyViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1451
}

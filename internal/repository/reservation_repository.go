package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/timeslot"
)

// ReservationDetail joins a reservation with its customer, location and
// room for the admin list views.
type ReservationDetail struct {
	model.Reservation
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	LocationCode  string
	LocationName  string
	RoomCode      string
	RoomName      string
}

// ReservationFilter narrows the admin reservation listing.  Zero
// values mean "no filter"; Search matches the reservation number or
// the customer's name or email.
type ReservationFilter struct {
	LocationID uint64
	Date       time.Time
	Status     string
	Search     string
}

// ReservationRepository provides list/read access to reservations with
// their related rows.  Writes go through BookingStore so they stay
// inside the admission engine's transaction.
type ReservationRepository struct {
	DB *sql.DB
}

// NewReservationRepository creates a new ReservationRepository instance.
func NewReservationRepository(db *sql.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

const detailQuery = `SELECT r.id, r.reservation_number, r.customer_id, r.location_id, r.room_id,
	r.date, r.time, r.duration_minutes, r.party_size, r.status, r.special_requests,
	r.created_at, r.updated_at,
	c.name, c.email, c.phone,
	l.code, l.name,
	rm.code, rm.name
	FROM reservations r
	JOIN customers c ON c.id = r.customer_id
	JOIN locations l ON l.id = r.location_id
	LEFT JOIN rooms rm ON rm.id = r.room_id`

func scanDetail(scan func(dest ...interface{}) error) (*ReservationDetail, error) {
	var d ReservationDetail
	var roomID sql.NullInt64
	var timeStr string
	var special, phone, roomCode, roomName sql.NullString
	if err := scan(
		&d.ID, &d.Number, &d.CustomerID, &d.LocationID, &roomID,
		&d.Date, &timeStr, &d.DurationMinutes, &d.PartySize, &d.Status,
		&special, &d.CreatedAt, &d.UpdatedAt,
		&d.CustomerName, &d.CustomerEmail, &phone,
		&d.LocationCode, &d.LocationName,
		&roomCode, &roomName,
	); err != nil {
		return nil, err
	}
	if roomID.Valid {
		id := uint64(roomID.Int64)
		d.RoomID = &id
	}
	if special.Valid {
		d.SpecialRequests = special.String
	}
	if phone.Valid {
		d.CustomerPhone = phone.String
	}
	if roomCode.Valid {
		d.RoomCode = roomCode.String
	}
	if roomName.Valid {
		d.RoomName = roomName.String
	}
	start, err := parseSQLTime(timeStr)
	if err != nil {
		return nil, err
	}
	d.Start = start
	return &d, nil
}

// ListDetailed returns reservations matching the filter, most recent
// dining time first.
func (r *ReservationRepository) ListDetailed(ctx context.Context, f ReservationFilter) ([]ReservationDetail, error) {
	q := detailQuery + ` WHERE 1=1`
	var args []interface{}
	if f.LocationID != 0 {
		q += ` AND r.location_id = ?`
		args = append(args, f.LocationID)
	}
	if !f.Date.IsZero() {
		q += ` AND r.date = ?`
		args = append(args, f.Date.Format("2006-01-02"))
	}
	if f.Status != "" {
		q += ` AND r.status = ?`
		args = append(args, f.Status)
	}
	if f.Search != "" {
		q += ` AND (r.reservation_number LIKE ? OR c.name LIKE ? OR c.email LIKE ?)`
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	q += ` ORDER BY r.date DESC, r.time DESC`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReservationDetail
	for rows.Next() {
		d, err := scanDetail(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// GetDetailed fetches one reservation with its related rows.
func (r *ReservationRepository) GetDetailed(ctx context.Context, id uint64) (*ReservationDetail, error) {
	q := detailQuery + ` WHERE r.id = ?`
	d, err := scanDetail(r.DB.QueryRowContext(ctx, q, id).Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// CountByStatus returns how many reservations a location has per
// status on a date, used by the dashboard.
func (r *ReservationRepository) CountByStatus(ctx context.Context, locationID uint64, date time.Time) (map[string]int, error) {
	const q = `SELECT status, COUNT(*) FROM reservations
	           WHERE location_id = ? AND date = ? GROUP BY status`
	rows, err := r.DB.QueryContext(ctx, q, locationID, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// GuestsAt sums the confirmed party sizes overlapping a window, used
// by the dashboard occupancy heatmap.
func (r *ReservationRepository) GuestsAt(ctx context.Context, locationID uint64, date time.Time, win timeslot.Window) (int, error) {
	rows, err := r.confirmedWindows(ctx, locationID, date)
	if err != nil {
		return 0, err
	}
	guests := 0
	for _, res := range rows {
		if res.Window().Overlaps(win) {
			guests += res.PartySize
		}
	}
	return guests, nil
}

func (r *ReservationRepository) confirmedWindows(ctx context.Context, locationID uint64, date time.Time) ([]model.Reservation, error) {
	const q = `SELECT id, time, duration_minutes, party_size FROM reservations
	           WHERE location_id = ? AND date = ? AND status = 'confirmed'`
	rows, err := r.DB.QueryContext(ctx, q, locationID, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Reservation
	for rows.Next() {
		var res model.Reservation
		var timeStr string
		if err := rows.Scan(&res.ID, &timeStr, &res.DurationMinutes, &res.PartySize); err != nil {
			return nil, err
		}
		start, err := parseSQLTime(timeStr)
		if err != nil {
			return nil, err
		}
		res.Start = start
		out = append(out, res)
	}
	return out, rows.Err()
}

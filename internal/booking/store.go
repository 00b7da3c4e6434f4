package booking

import (
	"context"
	"time"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// Store is the persistence contract the engine requires.  Read methods
// must reflect a snapshot consistent with the transaction the engine
// runs in; occupancy queries return confirmed reservations only.  An
// excludeID of zero means "exclude nothing" (row IDs start at one).
type Store interface {
	// Location returns the location or a NotFoundError.
	Location(ctx context.Context, id uint64) (*model.Location, error)
	// Room returns the room or a NotFoundError.
	Room(ctx context.Context, id uint64) (*model.Room, error)
	// RoomsByLocation returns all rooms of a location, active and inactive.
	RoomsByLocation(ctx context.Context, locationID uint64) ([]model.Room, error)

	// ConfirmedByRoom returns confirmed reservations in the room on the
	// date, optionally excluding one reservation being re-validated.
	ConfirmedByRoom(ctx context.Context, roomID uint64, date time.Time, excludeID uint64) ([]model.Reservation, error)
	// ConfirmedByLocation is the location-wide variant, regardless of room.
	ConfirmedByLocation(ctx context.Context, locationID uint64, date time.Time, excludeID uint64) ([]model.Reservation, error)

	// RoomBlocks returns blocks of the given type scoped to the room whose
	// date range covers the date.
	RoomBlocks(ctx context.Context, roomID uint64, date time.Time, blockType string) ([]model.ReservationBlock, error)
	// LocationBlocks returns location-wide hard blocks (room unset) whose
	// date range covers the date.
	LocationBlocks(ctx context.Context, locationID uint64, date time.Time) ([]model.ReservationBlock, error)

	// UpsertCustomer matches by email; updates name/phone when found,
	// creates the customer otherwise.  Returns the customer ID.
	UpsertCustomer(ctx context.Context, name, email, phone string) (uint64, error)

	// Reservation returns the reservation or a NotFoundError.
	Reservation(ctx context.Context, id uint64) (*model.Reservation, error)
	// InsertReservation persists a new reservation and fills in its ID.
	// Returns ErrDuplicateNumber when the reservation number is taken.
	InsertReservation(ctx context.Context, r *model.Reservation) error
	// UpdateReservation persists all mutable fields of the reservation.
	UpdateReservation(ctx context.Context, r *model.Reservation) error
	// DeleteReservation hard-deletes the reservation.
	DeleteReservation(ctx context.Context, id uint64) error

	// RecordAudit appends an audit entry.
	RecordAudit(ctx context.Context, entry *model.AuditLog) error
}

// TxStore is a Store that can run a function atomically.  InTx must
// roll back every write performed through the passed Store when fn
// returns an error, so a failed admission leaves no partial state.
type TxStore interface {
	Store
	InTx(ctx context.Context, fn func(Store) error) error
}

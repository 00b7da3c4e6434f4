// Package booking implements the reservation admission engine: constraint
// validation, block checking, weighted-random room selection and the
// orchestration that turns a booking request into a persisted reservation.
package booking

import (
	"errors"
	"fmt"
)

// ValidationError reports caller-correctable input problems: party size
// out of bounds, malformed date or time, missing required fields.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// CapacityError reports that admitting the request would exceed a room
// or location cap.  Current and Max are embedded so the caller can
// display how full the slot is.
type CapacityError struct {
	Scope   string // "room" or "location"
	Kind    string // "guests" or "reservations"
	Current int
	Max     int
	Message string
}

func (e *CapacityError) Error() string { return e.Message }

// BlockedError reports that a block covers the requested window.  Soft
// distinguishes a manager-overridable soft block from an absolute hard
// block.
type BlockedError struct {
	Soft    bool
	Message string
}

func (e *BlockedError) Error() string { return e.Message }

// NotFoundError reports an unknown location, room or reservation.
type NotFoundError struct {
	Entity string // "location", "room", "reservation", "customer"
	ID     uint64
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %d not found", e.Entity, e.ID) }

// ErrNoAvailability means the selector found zero eligible rooms: no
// single room fits the party, even though the location-wide caps were
// not hit.
var ErrNoAvailability = errors.New("no rooms available for this time slot")

// ErrDuplicateNumber is returned by Store.InsertReservation when the
// generated reservation number collides with an existing one.  The
// engine regenerates and retries.
var ErrDuplicateNumber = errors.New("duplicate reservation number")

// ErrConflict is returned when a write keeps conflicting after
// retries, e.g. a concurrent double-book race.  The operation may be
// retried by the caller.
var ErrConflict = errors.New("conflicting concurrent reservation, please retry")

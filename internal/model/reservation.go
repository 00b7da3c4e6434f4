package model

import (
	"time"

	"github.com/iliyamo/restaurant-reservation/internal/timeslot"
)

// Reservation statuses.  Only confirmed reservations count toward
// occupancy; the other states exist for the admin workflow.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no-show"
	StatusCompleted = "completed"
)

// ValidStatus reports whether s is one of the recognised reservation
// statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusConfirmed, StatusCancelled, StatusNoShow, StatusCompleted:
		return true
	}
	return false
}

// Reservation is a booked table slot.  RoomID is a pointer because a
// reservation may temporarily lose its room (room deactivated or
// deleted).  Corresponds to a row in the `reservations` table.
//
// Fields:
//  ID              – primary key identifier.
//  Number          – unique reservation number ("<LOCATION_CODE>-XXXXX").
//  CustomerID      – customer who holds the reservation.
//  LocationID      – location the reservation is at.
//  RoomID          – assigned room (nil when unassigned).
//  Date            – calendar day of the reservation (no time component).
//  Start           – start time of day.
//  DurationMinutes – length of the dining window.
//  PartySize       – number of guests.
//  Status          – one of the Status* constants.
//  SpecialRequests – free-form note from the customer.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Reservation struct {
	ID              uint64             // reservations.id
	Number          string             // reservations.reservation_number
	CustomerID      uint64             // reservations.customer_id
	LocationID      uint64             // reservations.location_id
	RoomID          *uint64            // reservations.room_id (nullable)
	Date            time.Time          // reservations.date
	Start           timeslot.TimeOfDay // reservations.time
	DurationMinutes int                // reservations.duration_minutes
	PartySize       int                // reservations.party_size
	Status          string             // reservations.status
	SpecialRequests string             // reservations.special_requests
	CreatedAt       time.Time          // reservations.created_at
	UpdatedAt       time.Time          // reservations.updated_at
}

// Window returns the reservation's half-open dining window.
func (r *Reservation) Window() timeslot.Window {
	return timeslot.NewWindow(r.Start, r.DurationMinutes)
}

package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/restaurant-reservation/internal/timeslot"
)

// Party-size bounds.  Larger public parties are asked to call the
// restaurant; admins can book up to the largest room capacity.
const (
	MaxPublicPartySize = 12
	MaxAdminPartySize  = 30
)

// slotRequest carries the parameters every admission check operates
// on: where, when, for how long and for how many guests.
type slotRequest struct {
	LocationID      uint64
	Date            time.Time
	Start           timeslot.TimeOfDay
	DurationMinutes int
	PartySize       int
}

func (p slotRequest) window() timeslot.Window {
	return timeslot.NewWindow(p.Start, p.DurationMinutes)
}

// validateConstraints applies the location-level admission rules in
// order: party-size bounds, location-wide hard block, then the guest
// and reservation-count caps.  A request that lands exactly on a cap is
// admitted; only exceeding it is rejected.  excludeID removes an
// existing reservation from the occupancy sums so editing a
// reservation never conflicts with itself.
func validateConstraints(ctx context.Context, st Store, p slotRequest, excludeID uint64, isAdmin bool) error {
	if !isAdmin && (p.PartySize < 1 || p.PartySize > MaxPublicPartySize) {
		return validationf("party size must be between 1 and %d for online bookings", MaxPublicPartySize)
	}
	if isAdmin && (p.PartySize < 1 || p.PartySize > MaxAdminPartySize) {
		return validationf("party size must be between 1 and %d for admin bookings", MaxAdminPartySize)
	}

	blocked, err := isLocationBlocked(ctx, st, p.LocationID, p.Date, p.window())
	if err != nil {
		return err
	}
	if blocked {
		return &BlockedError{Message: "this time slot is not available for reservations due to a location block"}
	}

	loc, err := st.Location(ctx, p.LocationID)
	if err != nil {
		return err
	}

	existing, err := st.ConfirmedByLocation(ctx, p.LocationID, p.Date, excludeID)
	if err != nil {
		return err
	}
	guests, count := Occupancy(existing, p.window())

	if guests+p.PartySize > loc.MaxGuestsPerSlot {
		return &CapacityError{
			Scope:   "location",
			Kind:    "guests",
			Current: guests,
			Max:     loc.MaxGuestsPerSlot,
			Message: fmt.Sprintf("this time slot would exceed the maximum location capacity of %d guests (currently %d)", loc.MaxGuestsPerSlot, guests),
		}
	}
	if count+1 > loc.MaxReservationsPerSlot {
		return &CapacityError{
			Scope:   "location",
			Kind:    "reservations",
			Current: count,
			Max:     loc.MaxReservationsPerSlot,
			Message: fmt.Sprintf("this time slot has reached the maximum of %d reservations (currently %d)", loc.MaxReservationsPerSlot, count),
		}
	}
	return nil
}

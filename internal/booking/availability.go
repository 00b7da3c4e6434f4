package booking

import (
	"context"
	"time"

	"github.com/iliyamo/restaurant-reservation/internal/timeslot"
)

// SlotAvailability describes one bookable slot on the availability
// endpoint.  Available means a single guest could still be admitted at
// this time; SlotsLeft and GuestsAvailable give the remaining headroom
// under the location caps.
type SlotAvailability struct {
	Time            string `json:"time"`
	Available       bool   `json:"available"`
	SlotsLeft       int    `json:"slotsLeft"`
	GuestsAvailable int    `json:"guestsAvailable"`
}

// DayAvailability lists every slot of a date for a location.
type DayAvailability struct {
	Date  string             `json:"date"`
	Slots []SlotAvailability `json:"slots"`
}

// Availability enumerates the date's dining slots and, for each,
// whether a booking is still feasible and how much capacity remains.
// The day's confirmed reservations and location blocks are read once
// and each slot window is evaluated in memory.
func (e *Engine) Availability(ctx context.Context, locationID uint64, date time.Time) (*DayAvailability, error) {
	loc, err := e.store.Location(ctx, locationID)
	if err != nil {
		return nil, err
	}
	day := dateOnly(date)

	reservations, err := e.store.ConfirmedByLocation(ctx, locationID, day, 0)
	if err != nil {
		return nil, err
	}
	blocks, err := e.store.LocationBlocks(ctx, locationID, day)
	if err != nil {
		return nil, err
	}

	slots := e.hours(locationID).GenerateSlots(day, SlotIntervalMinutes)
	out := &DayAvailability{
		Date:  day.Format("2006-01-02"),
		Slots: make([]SlotAvailability, 0, len(slots)),
	}
	for _, slot := range slots {
		win := timeslot.NewWindow(slot, DefaultDurationMinutes)
		guests, count := Occupancy(reservations, win)

		available := !BlockCovers(blocks, day, win) &&
			guests+1 <= loc.MaxGuestsPerSlot &&
			count+1 <= loc.MaxReservationsPerSlot

		out.Slots = append(out.Slots, SlotAvailability{
			Time:            slot.String(),
			Available:       available,
			SlotsLeft:       maxInt(0, loc.MaxReservationsPerSlot-count),
			GuestsAvailable: maxInt(0, loc.MaxGuestsPerSlot-guests),
		})
	}
	return out, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package booking

import (
	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/timeslot"
)

// Occupancy aggregates the confirmed reservations whose dining window
// overlaps win: total guests and number of reservations.  Reservations
// in other statuses are ignored.
func Occupancy(reservations []model.Reservation, win timeslot.Window) (guests, count int) {
	for i := range reservations {
		r := &reservations[i]
		if r.Status != model.StatusConfirmed {
			continue
		}
		if r.Window().Overlaps(win) {
			guests += r.PartySize
			count++
		}
	}
	return guests, count
}

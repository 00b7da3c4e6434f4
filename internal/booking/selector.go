package booking

import (
	"context"
	"math/rand"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// Candidate is a room eligible for the requested window, together with
// the numbers the weight was derived from.
type Candidate struct {
	Room              model.Room
	Occupancy         int // guests already seated during the window
	AvailableCapacity int // MaxCapacity - Occupancy
	ReservationCount  int // confirmed reservations overlapping the window
	Weight            int
}

// candidateWeight favours spare capacity a thousand to one over the
// reservation-count tie-breaker, so capacity dominates and less-booked
// rooms win among equals.  The point is to spread parties across rooms
// instead of always filling the biggest room first.
func candidateWeight(availableCapacity, reservationCount int) int {
	return availableCapacity*1000 + (100 - reservationCount)
}

// candidateRooms enumerates the active rooms of the location that can
// seat the party during the window: hard-blocked rooms are skipped, as
// are rooms whose spare capacity is below the party size.
func candidateRooms(ctx context.Context, st Store, p slotRequest, excludeID uint64) ([]Candidate, error) {
	rooms, err := st.RoomsByLocation(ctx, p.LocationID)
	if err != nil {
		return nil, err
	}
	win := p.window()

	var candidates []Candidate
	for _, room := range rooms {
		if !room.IsActive {
			continue
		}
		blocked, err := isRoomBlocked(ctx, st, room.ID, p.Date, win, model.BlockHard)
		if err != nil {
			return nil, err
		}
		if blocked {
			continue
		}
		existing, err := st.ConfirmedByRoom(ctx, room.ID, p.Date, excludeID)
		if err != nil {
			return nil, err
		}
		guests, count := Occupancy(existing, win)
		available := room.MaxCapacity - guests
		if available < p.PartySize {
			continue
		}
		candidates = append(candidates, Candidate{
			Room:              room,
			Occupancy:         guests,
			AvailableCapacity: available,
			ReservationCount:  count,
			Weight:            candidateWeight(available, count),
		})
	}
	return candidates, nil
}

// pickWeighted draws one candidate with probability proportional to its
// weight.  The random source is injected so selection is reproducible
// under test.  Returns nil for an empty candidate list.
func pickWeighted(rng *rand.Rand, candidates []Candidate) *Candidate {
	if len(candidates) == 0 {
		return nil
	}
	total := 0
	for i := range candidates {
		total += candidates[i].Weight
	}
	if total <= 0 {
		return &candidates[rng.Intn(len(candidates))]
	}
	n := rng.Intn(total)
	for i := range candidates {
		n -= candidates[i].Weight
		if n < 0 {
			return &candidates[i]
		}
	}
	return &candidates[len(candidates)-1]
}

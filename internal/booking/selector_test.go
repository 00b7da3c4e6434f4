package booking

import (
	"context"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

func TestCandidateWeight(t *testing.T) {
	// Spare capacity dominates a thousand to one.
	assert.Equal(t, 10*1000+100, candidateWeight(10, 0))
	assert.Greater(t, candidateWeight(5, 99), candidateWeight(4, 0))
	// Equal capacity: fewer reservations wins.
	assert.Greater(t, candidateWeight(6, 1), candidateWeight(6, 3))
}

func TestCandidateRoomsFiltering(t *testing.T) {
	st := newMemStore()
	loc := st.addLocation(model.Location{Code: "MAIN", MaxGuestsPerSlot: 100, MaxReservationsPerSlot: 50})
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	fits := st.addRoom(model.Room{LocationID: loc.ID, Code: "A", Name: "Garden", MaxCapacity: 20, IsActive: true})
	inactive := st.addRoom(model.Room{LocationID: loc.ID, Code: "B", Name: "Cellar", MaxCapacity: 20, IsActive: false})
	small := st.addRoom(model.Room{LocationID: loc.ID, Code: "C", Name: "Nook", MaxCapacity: 4, IsActive: true})
	blocked := st.addRoom(model.Room{LocationID: loc.ID, Code: "D", Name: "Terrace", MaxCapacity: 20, IsActive: true})

	blockedID := blocked.ID
	st.blocks = append(st.blocks, model.ReservationBlock{
		LocationID: loc.ID,
		RoomID:     &blockedID,
		StartDate:  day,
		EndDate:    day,
		StartTime:  mustTime(t, "17:00"),
		EndTime:    mustTime(t, "23:00"),
		BlockType:  model.BlockHard,
	})

	// A party already seated in the fitting room reduces its capacity.
	fitsID := fits.ID
	st.addReservation(model.Reservation{
		LocationID: loc.ID, RoomID: &fitsID,
		Date: day, Start: mustTime(t, "18:00"), DurationMinutes: 60,
		PartySize: 5,
	})

	p := slotRequest{
		LocationID:      loc.ID,
		Date:            day,
		Start:           mustTime(t, "18:00"),
		DurationMinutes: 60,
		PartySize:       6,
	}
	candidates, err := candidateRooms(context.Background(), st, p, 0)
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	c := candidates[0]
	assert.Equal(t, fits.ID, c.Room.ID)
	assert.Equal(t, 5, c.Occupancy)
	assert.Equal(t, 15, c.AvailableCapacity)
	assert.Equal(t, 1, c.ReservationCount)
	assert.Equal(t, candidateWeight(15, 1), c.Weight)

	for _, excluded := range []model.Room{inactive, small, blocked} {
		assert.NotEqual(t, excluded.ID, c.Room.ID)
	}
}

func TestPickWeighted(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Nil(t, pickWeighted(rng, nil))

	// Zero total weight falls back to a uniform draw.
	zero := []Candidate{{Weight: 0}, {Weight: 0}}
	assert.NotNil(t, pickWeighted(rng, zero))

	// A heavily weighted room should win most draws but not all.
	candidates := []Candidate{
		{Room: model.Room{ID: 1}, Weight: 9000},
		{Room: model.Room{ID: 2}, Weight: 1000},
	}
	wins := map[uint64]int{}
	for i := 0; i < 10000; i++ {
		wins[pickWeighted(rng, candidates).Room.ID]++
	}
	assert.Greater(t, wins[1], 8000)
	assert.Greater(t, wins[2], 500)
}

func TestReservationNumberFormat(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pattern := regexp.MustCompile(`^MAIN-[A-Z0-9]{5}$`)
	for i := 0; i < 100; i++ {
		n := reservationNumber(rng, "MAIN")
		assert.Regexp(t, pattern, n)
	}
}

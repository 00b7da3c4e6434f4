package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/timeslot"
)

func mustTime(t *testing.T, s string) timeslot.TimeOfDay {
	t.Helper()
	tod, err := timeslot.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return tod
}

func reservationAt(t *testing.T, start string, durationMinutes, party int, status string) model.Reservation {
	t.Helper()
	return model.Reservation{
		Start:           mustTime(t, start),
		DurationMinutes: durationMinutes,
		PartySize:       party,
		Status:          status,
	}
}

func TestOccupancyCountsOverlappingConfirmedOnly(t *testing.T) {
	existing := []model.Reservation{
		reservationAt(t, "18:00", 60, 4, model.StatusConfirmed),
		reservationAt(t, "18:30", 60, 2, model.StatusConfirmed),
		reservationAt(t, "18:00", 60, 6, model.StatusCancelled), // ignored
		reservationAt(t, "19:00", 60, 8, model.StatusConfirmed), // touches, no overlap
	}

	win := timeslot.NewWindow(mustTime(t, "18:00"), 60)
	guests, count := Occupancy(existing, win)
	assert.Equal(t, 6, guests)
	assert.Equal(t, 2, count)

	// A later window only sees the 19:00 party.
	win = timeslot.NewWindow(mustTime(t, "19:30"), 60)
	guests, count = Occupancy(existing, win)
	assert.Equal(t, 8, guests)
	assert.Equal(t, 1, count)
}

func blockFor(t *testing.T, startDate, endDate time.Time, startTime, endTime, blockType string) model.ReservationBlock {
	t.Helper()
	return model.ReservationBlock{
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: mustTime(t, startTime),
		EndTime:   mustTime(t, endTime),
		BlockType: blockType,
	}
}

func TestBlockCovers(t *testing.T) {
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	blocks := []model.ReservationBlock{
		blockFor(t, day, day.AddDate(0, 0, 2), "18:00", "20:00", model.BlockHard),
	}

	win := func(s string) timeslot.Window {
		return timeslot.NewWindow(mustTime(t, s), 60)
	}

	assert.True(t, BlockCovers(blocks, day, win("18:30")))
	assert.True(t, BlockCovers(blocks, day, win("19:30"))) // overlaps tail
	assert.True(t, BlockCovers(blocks, day.AddDate(0, 0, 2), win("18:00"))) // end date inclusive
	assert.False(t, BlockCovers(blocks, day, win("20:00")))                 // touching only
	assert.False(t, BlockCovers(blocks, day, win("17:00")))
	assert.False(t, BlockCovers(blocks, day.AddDate(0, 0, 3), win("18:30"))) // outside date range
}

package timeslot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	got, err := Parse("17:30")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(17*60+30), got)
	assert.Equal(t, "17:30", got.String())

	for _, bad := range []string{"", "1730", "25:00", "17:60", "17:3a", "5pm"} {
		_, err := Parse(bad)
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestWindowOverlaps(t *testing.T) {
	base := NewWindow(18*60, 60) // 18:00-19:00

	cases := []struct {
		name string
		win  Window
		want bool
	}{
		{"identical", NewWindow(18*60, 60), true},
		{"partial overlap", NewWindow(18*60+30, 60), true},
		{"containing", NewWindow(17*60, 180), true},
		{"touching end", NewWindow(19*60, 60), false},
		{"touching start", NewWindow(17*60, 60), false},
		{"disjoint", NewWindow(20*60, 60), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.win))
			assert.Equal(t, tc.want, tc.win.Overlaps(base))
		})
	}
}

func TestDefaultHoursSchedule(t *testing.T) {
	h := DefaultHours()

	wednesday := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	open, close := h.DiningHours(wednesday)
	assert.Equal(t, "17:00", open.String())
	assert.Equal(t, "23:00", close.String())

	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	open, close = h.DiningHours(sunday)
	assert.Equal(t, "17:00", open.String())
	assert.Equal(t, "21:00", close.String())
}

func TestGenerateSlots(t *testing.T) {
	h := DefaultHours()

	wednesday := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	slots := h.GenerateSlots(wednesday, 30)
	require.Len(t, slots, 12) // 17:00 through 22:30
	assert.Equal(t, "17:00", slots[0].String())
	assert.Equal(t, "22:30", slots[len(slots)-1].String())

	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	slots = h.GenerateSlots(sunday, 30)
	require.Len(t, slots, 8) // closes at 21:00
	assert.Equal(t, "20:30", slots[len(slots)-1].String())

	assert.Nil(t, h.GenerateSlots(wednesday, 0))
}

func TestIsValidBookingTime(t *testing.T) {
	h := DefaultHours()
	wednesday := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)

	assert.True(t, h.IsValidBookingTime(wednesday, "17:00"))
	assert.True(t, h.IsValidBookingTime(wednesday, "22:30"))
	assert.False(t, h.IsValidBookingTime(wednesday, "23:00")) // closing is exclusive
	assert.False(t, h.IsValidBookingTime(wednesday, "16:59"))

	assert.True(t, h.IsValidBookingTime(sunday, "20:30"))
	assert.False(t, h.IsValidBookingTime(sunday, "21:00")) // early close

	assert.False(t, h.IsValidBookingTime(wednesday, "not-a-time"))
}

package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

func validateFixture(t *testing.T) (*memStore, model.Location, model.Room, time.Time) {
	t.Helper()
	st := newMemStore()
	loc := st.addLocation(model.Location{Code: "MAIN", MaxGuestsPerSlot: 40, MaxReservationsPerSlot: 3})
	room := st.addRoom(model.Room{LocationID: loc.ID, Code: "A", Name: "Main Hall", MaxCapacity: 40, IsActive: true})
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	return st, loc, room, day
}

func slotAt(t *testing.T, locationID uint64, day time.Time, start string, party int) slotRequest {
	t.Helper()
	return slotRequest{
		LocationID:      locationID,
		Date:            day,
		Start:           mustTime(t, start),
		DurationMinutes: 60,
		PartySize:       party,
	}
}

func TestValidatePartySizeBounds(t *testing.T) {
	st, loc, _, day := validateFixture(t)
	ctx := context.Background()

	var ve *ValidationError

	err := validateConstraints(ctx, st, slotAt(t, loc.ID, day, "18:00", 13), 0, false)
	require.ErrorAs(t, err, &ve)

	err = validateConstraints(ctx, st, slotAt(t, loc.ID, day, "18:00", 0), 0, false)
	require.ErrorAs(t, err, &ve)

	// 13 is fine for admins, 31 is not.
	assert.NoError(t, validateConstraints(ctx, st, slotAt(t, loc.ID, day, "18:00", 13), 0, true))
	err = validateConstraints(ctx, st, slotAt(t, loc.ID, day, "18:00", 31), 0, true)
	require.ErrorAs(t, err, &ve)
}

func TestValidatePartySizeCheckedBeforeBlocks(t *testing.T) {
	st, loc, _, day := validateFixture(t)
	st.blocks = append(st.blocks, model.ReservationBlock{
		LocationID: loc.ID,
		StartDate:  day, EndDate: day,
		StartTime: mustTime(t, "17:00"), EndTime: mustTime(t, "23:00"),
		BlockType: model.BlockHard,
	})

	// Both violations present: the party-size error wins.
	err := validateConstraints(context.Background(), st, slotAt(t, loc.ID, day, "18:00", 13), 0, false)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestValidateLocationBlock(t *testing.T) {
	st, loc, _, day := validateFixture(t)
	st.blocks = append(st.blocks, model.ReservationBlock{
		LocationID: loc.ID,
		StartDate:  day, EndDate: day,
		StartTime: mustTime(t, "18:00"), EndTime: mustTime(t, "20:00"),
		BlockType: model.BlockHard,
	})
	ctx := context.Background()

	err := validateConstraints(ctx, st, slotAt(t, loc.ID, day, "19:00", 4), 0, false)
	var be *BlockedError
	require.ErrorAs(t, err, &be)
	assert.False(t, be.Soft)

	// The same time the next day is unaffected.
	assert.NoError(t, validateConstraints(ctx, st, slotAt(t, loc.ID, day.AddDate(0, 0, 1), "19:00", 4), 0, false))
}

func TestValidateGuestCap(t *testing.T) {
	st, loc, room, day := validateFixture(t)
	roomID := room.ID
	st.addReservation(model.Reservation{
		LocationID: loc.ID, RoomID: &roomID,
		Date: day, Start: mustTime(t, "18:00"), DurationMinutes: 60, PartySize: 35,
	})
	ctx := context.Background()

	// 35 + 5 reaches the cap of 40 exactly: admitted.
	assert.NoError(t, validateConstraints(ctx, st, slotAt(t, loc.ID, day, "18:00", 5), 0, false))

	// 35 + 6 exceeds it.
	err := validateConstraints(ctx, st, slotAt(t, loc.ID, day, "18:00", 6), 0, false)
	var ce *CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "location", ce.Scope)
	assert.Equal(t, "guests", ce.Kind)
	assert.Equal(t, 35, ce.Current)
	assert.Equal(t, 40, ce.Max)
}

func TestValidateReservationCountCap(t *testing.T) {
	st, loc, room, day := validateFixture(t)
	roomID := room.ID
	for i := 0; i < 3; i++ {
		st.addReservation(model.Reservation{
			LocationID: loc.ID, RoomID: &roomID,
			Date: day, Start: mustTime(t, "18:00"), DurationMinutes: 60, PartySize: 2,
		})
	}
	err := validateConstraints(context.Background(), st, slotAt(t, loc.ID, day, "18:00", 2), 0, false)
	var ce *CapacityError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "reservations", ce.Kind)
	assert.Equal(t, 3, ce.Current)
}

func TestValidateExcludesOwnReservation(t *testing.T) {
	st, loc, room, day := validateFixture(t)
	roomID := room.ID
	mine := st.addReservation(model.Reservation{
		LocationID: loc.ID, RoomID: &roomID,
		Date: day, Start: mustTime(t, "18:00"), DurationMinutes: 60, PartySize: 25,
	})

	// Re-validating the same reservation must not double-count it:
	// 25 + 25 would blow the 40-guest cap.
	assert.NoError(t, validateConstraints(context.Background(), st,
		slotAt(t, loc.ID, day, "18:00", 25), mine.ID, true))
}

package booking

import (
	"context"
	"errors"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// Wednesday, within Tue-Sat dining hours 17:00-23:00.
var testDay = time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

func fixedNow() time.Time {
	return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
}

func newTestEngine(st *memStore) *Engine {
	return NewEngine(st, WithRand(rand.NewSource(7)), WithNow(fixedNow))
}

func engineFixture(t *testing.T) (*memStore, *Engine, model.Location, model.Room) {
	t.Helper()
	st := newMemStore()
	loc := st.addLocation(model.Location{Code: "MAIN", Name: "Main Street", MaxGuestsPerSlot: 60, MaxReservationsPerSlot: 20})
	room := st.addRoom(model.Room{LocationID: loc.ID, Code: "R", Name: "Dining Room", MaxCapacity: 30, IsActive: true})
	return st, newTestEngine(st), loc, room
}

func publicReq(locationID uint64, date time.Time, timeStr string, party int) PublicRequest {
	return PublicRequest{
		LocationID: locationID,
		Date:       date,
		Time:       timeStr,
		PartySize:  party,
		Name:       "Ada Guest",
		Email:      "ada@example.com",
		Phone:      "+1555000111",
	}
}

func TestBookPublicHappyPath(t *testing.T) {
	st, e, loc, room := engineFixture(t)

	conf, err := e.BookPublic(context.Background(), publicReq(loc.ID, testDay, "18:00", 4))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^MAIN-[A-Z0-9]{5}$`), conf.Number)
	assert.Equal(t, room.ID, conf.Room.ID)

	res, err := st.Reservation(context.Background(), conf.ReservationID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, res.Status)
	assert.Equal(t, 4, res.PartySize)
	assert.Equal(t, 60, res.DurationMinutes)
	require.NotNil(t, res.RoomID)
	assert.Equal(t, room.ID, *res.RoomID)

	// Customer was upserted and linked.
	cust, ok := st.customers[res.CustomerID]
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", cust.Email)

	// An audit entry recorded the public auto-assignment.
	require.Len(t, st.audits, 1)
	assert.Equal(t, ActionCreateReservation, st.audits[0].Action)
	assert.Nil(t, st.audits[0].AdminID)
	assert.Contains(t, string(st.audits[0].Details), `"source":"public"`)
}

func TestBookPublicInputValidation(t *testing.T) {
	_, e, loc, _ := engineFixture(t)
	ctx := context.Background()
	var ve *ValidationError

	// Party too large for online booking.
	_, err := e.BookPublic(ctx, publicReq(loc.ID, testDay, "18:00", 13))
	require.ErrorAs(t, err, &ve)

	// Past date.
	_, err = e.BookPublic(ctx, publicReq(loc.ID, testDay.AddDate(-1, 0, 0), "18:00", 4))
	require.ErrorAs(t, err, &ve)

	// Outside dining hours (23:00 close is exclusive).
	_, err = e.BookPublic(ctx, publicReq(loc.ID, testDay, "23:00", 4))
	require.ErrorAs(t, err, &ve)

	// Sunday closes at 21:00.
	sunday := time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
	_, err = e.BookPublic(ctx, publicReq(loc.ID, sunday, "21:30", 4))
	require.ErrorAs(t, err, &ve)

	// Missing contact details.
	req := publicReq(loc.ID, testDay, "18:00", 4)
	req.Email = ""
	_, err = e.BookPublic(ctx, req)
	require.ErrorAs(t, err, &ve)
}

func TestBookPublicRoomCapacityStrict(t *testing.T) {
	st := newMemStore()
	loc := st.addLocation(model.Location{Code: "MAIN", MaxGuestsPerSlot: 60, MaxReservationsPerSlot: 20})
	room := st.addRoom(model.Room{LocationID: loc.ID, Code: "R", Name: "Dining Room", MaxCapacity: 20, IsActive: true})
	e := newTestEngine(st)
	ctx := context.Background()
	roomID := room.ID

	// 10 guests already seated 18:00-19:00 in the only room (cap 20).
	st.addReservation(model.Reservation{
		LocationID: loc.ID, RoomID: &roomID,
		Date: testDay, Start: mustTime(t, "18:00"), DurationMinutes: 60, PartySize: 10,
	})

	// 10 + 12 > 20: no room fits, even though the location cap would allow it.
	_, err := e.BookPublic(ctx, publicReq(loc.ID, testDay, "18:30", 12))
	require.ErrorIs(t, err, ErrNoAvailability)

	// 10 + 10 == 20 reaches the cap exactly and is admitted.
	conf, err := e.BookPublic(ctx, publicReq(loc.ID, testDay, "18:30", 10))
	require.NoError(t, err)
	assert.Equal(t, room.ID, conf.Room.ID)
}

func TestBookPublicLocationHardBlock(t *testing.T) {
	st, e, loc, _ := engineFixture(t)
	st.blocks = append(st.blocks, model.ReservationBlock{
		LocationID: loc.ID,
		StartDate:  testDay, EndDate: testDay,
		StartTime: mustTime(t, "18:00"), EndTime: mustTime(t, "20:00"),
		BlockType: model.BlockHard,
	})

	_, err := e.BookPublic(context.Background(), publicReq(loc.ID, testDay, "19:00", 4))
	var be *BlockedError
	require.ErrorAs(t, err, &be)
	assert.False(t, be.Soft)

	// Outside the blocked window the slot books fine.
	_, err = e.BookPublic(context.Background(), publicReq(loc.ID, testDay, "20:00", 4))
	assert.NoError(t, err)
}

func TestBookPublicSoftBlockedRoomRejected(t *testing.T) {
	st, e, loc, room := engineFixture(t)
	roomID := room.ID
	st.blocks = append(st.blocks, model.ReservationBlock{
		LocationID: loc.ID, RoomID: &roomID,
		StartDate: testDay, EndDate: testDay,
		StartTime: mustTime(t, "17:00"), EndTime: mustTime(t, "23:00"),
		BlockType: model.BlockSoft,
	})

	// The only room is soft-blocked; public callers cannot override.
	_, err := e.BookPublic(context.Background(), publicReq(loc.ID, testDay, "18:00", 4))
	var be *BlockedError
	require.ErrorAs(t, err, &be)
	assert.True(t, be.Soft)
}

func adminReq(actor Actor, locationID uint64, timeStr string, party int) AdminRequest {
	return AdminRequest{
		Actor:         actor,
		LocationID:    locationID,
		Date:          testDay,
		Time:          timeStr,
		PartySize:     party,
		CustomerName:  "Walk In",
		CustomerEmail: "walkin@example.com",
	}
}

func TestBookAdminPinnedRoom(t *testing.T) {
	st, e, loc, room := engineFixture(t)
	actor := Actor{AdminID: 99, Role: model.RoleAdmin}

	req := adminReq(actor, loc.ID, "18:00", 20)
	roomID := room.ID
	req.RoomID = &roomID

	conf, err := e.BookAdmin(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, room.ID, conf.Room.ID)

	require.Len(t, st.audits, 1)
	require.NotNil(t, st.audits[0].AdminID)
	assert.Equal(t, uint64(99), *st.audits[0].AdminID)
	assert.Contains(t, string(st.audits[0].Details), `"manual_room_assignment":true`)
}

func TestHardBlockAbsoluteEvenForManagers(t *testing.T) {
	st, e, loc, room := engineFixture(t)
	roomID := room.ID
	st.blocks = append(st.blocks, model.ReservationBlock{
		LocationID: loc.ID, RoomID: &roomID,
		StartDate: testDay, EndDate: testDay,
		StartTime: mustTime(t, "17:00"), EndTime: mustTime(t, "23:00"),
		BlockType: model.BlockHard,
	})

	manager := Actor{AdminID: 1, Role: model.RoleManager}
	req := adminReq(manager, loc.ID, "18:00", 4)
	req.RoomID = &roomID

	_, err := e.BookAdmin(context.Background(), req)
	var be *BlockedError
	require.ErrorAs(t, err, &be)
	assert.False(t, be.Soft)
}

func TestSoftBlockManagerOverride(t *testing.T) {
	st, e, loc, room := engineFixture(t)
	roomID := room.ID
	st.blocks = append(st.blocks, model.ReservationBlock{
		LocationID: loc.ID, RoomID: &roomID,
		StartDate: testDay, EndDate: testDay,
		StartTime: mustTime(t, "17:00"), EndTime: mustTime(t, "23:00"),
		BlockType: model.BlockSoft,
	})
	ctx := context.Background()

	// Plain admins are refused.
	admin := Actor{AdminID: 2, Role: model.RoleAdmin}
	req := adminReq(admin, loc.ID, "18:00", 4)
	req.RoomID = &roomID
	_, err := e.BookAdmin(ctx, req)
	var be *BlockedError
	require.ErrorAs(t, err, &be)
	assert.True(t, be.Soft)

	// Managers override, and the override is audited.
	manager := Actor{AdminID: 3, Role: model.RoleManager}
	req = adminReq(manager, loc.ID, "18:00", 4)
	req.RoomID = &roomID
	_, err = e.BookAdmin(ctx, req)
	require.NoError(t, err)
	require.Len(t, st.audits, 1)
	assert.Contains(t, string(st.audits[0].Details), `"soft_block_override":true`)
}

func TestBookAdminRejectsWindowPastMidnight(t *testing.T) {
	_, e, loc, _ := engineFixture(t)
	req := adminReq(Actor{AdminID: 1, Role: model.RoleAdmin}, loc.ID, "23:30", 4)
	req.DurationMinutes = 45

	_, err := e.BookAdmin(context.Background(), req)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestNumberCollisionRetries(t *testing.T) {
	st, e, loc, _ := engineFixture(t)
	ctx := context.Background()

	// Two forced collisions: the engine regenerates and succeeds.
	st.forcedDups = 2
	conf, err := e.BookPublic(ctx, publicReq(loc.ID, testDay, "18:00", 2))
	require.NoError(t, err)
	assert.NotEmpty(t, conf.Number)

	// Exhausted retries surface as a conflict.
	st.forcedDups = maxNumberRetries
	_, err = e.BookPublic(ctx, publicReq(loc.ID, testDay, "20:00", 2))
	require.ErrorIs(t, err, ErrConflict)
}

func TestAdmissionIsAtomic(t *testing.T) {
	st, e, loc, _ := engineFixture(t)
	st.auditErr = errors.New("audit table gone")

	_, err := e.BookPublic(context.Background(), publicReq(loc.ID, testDay, "18:00", 4))
	require.Error(t, err)

	// The failed admission left nothing behind.
	assert.Empty(t, st.reservations)
	assert.Empty(t, st.customers)
	assert.Empty(t, st.audits)
}

func TestUpdateStatus(t *testing.T) {
	st, e, loc, room := engineFixture(t)
	roomID := room.ID
	res := st.addReservation(model.Reservation{
		LocationID: loc.ID, RoomID: &roomID, CustomerID: 50,
		Date: testDay, Start: mustTime(t, "18:00"), DurationMinutes: 60, PartySize: 4,
	})
	actor := Actor{AdminID: 7, Role: model.RoleAdmin}
	ctx := context.Background()

	require.NoError(t, e.UpdateStatus(ctx, actor, res.ID, model.StatusNoShow))
	got, err := st.Reservation(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusNoShow, got.Status)

	var ve *ValidationError
	require.ErrorAs(t, e.UpdateStatus(ctx, actor, res.ID, "teleported"), &ve)

	var nf *NotFoundError
	require.ErrorAs(t, e.UpdateStatus(ctx, actor, 424242, model.StatusCancelled), &nf)
}

func TestReassignRoom(t *testing.T) {
	st, e, loc, room := engineFixture(t)
	other := st.addRoom(model.Room{LocationID: loc.ID, Code: "S", Name: "Salon", MaxCapacity: 10, IsActive: true})
	elsewhere := st.addLocation(model.Location{Code: "EAST", MaxGuestsPerSlot: 60, MaxReservationsPerSlot: 20})
	foreign := st.addRoom(model.Room{LocationID: elsewhere.ID, Code: "X", Name: "East Hall", MaxCapacity: 10, IsActive: true})

	roomID := room.ID
	res := st.addReservation(model.Reservation{
		LocationID: loc.ID, RoomID: &roomID, CustomerID: 50,
		Date: testDay, Start: mustTime(t, "18:00"), DurationMinutes: 60, PartySize: 8,
	})
	actor := Actor{AdminID: 7, Role: model.RoleAdmin}
	ctx := context.Background()

	// Cross-location moves are refused.
	var ve *ValidationError
	require.ErrorAs(t, e.ReassignRoom(ctx, actor, res.ID, foreign.ID), &ve)

	// Target too small once its own guests are counted.
	otherID := other.ID
	st.addReservation(model.Reservation{
		LocationID: loc.ID, RoomID: &otherID, CustomerID: 51,
		Date: testDay, Start: mustTime(t, "18:00"), DurationMinutes: 60, PartySize: 5,
	})
	var ce *CapacityError
	require.ErrorAs(t, e.ReassignRoom(ctx, actor, res.ID, other.ID), &ce)

	// Re-assigning to the current room excludes the reservation itself.
	require.NoError(t, e.ReassignRoom(ctx, actor, res.ID, room.ID))

	audits := st.audits
	require.NotEmpty(t, audits)
	assert.Equal(t, ActionRoomOverride, audits[len(audits)-1].Action)
}

func TestDeleteReservation(t *testing.T) {
	st, e, loc, room := engineFixture(t)
	roomID := room.ID
	res := st.addReservation(model.Reservation{
		LocationID: loc.ID, RoomID: &roomID, CustomerID: 50,
		Date: testDay, Start: mustTime(t, "18:00"), DurationMinutes: 60, PartySize: 4,
	})
	actor := Actor{AdminID: 7, Role: model.RoleAdmin}
	ctx := context.Background()

	require.NoError(t, e.Delete(ctx, actor, res.ID))
	_, err := st.Reservation(ctx, res.ID)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	require.Len(t, st.audits, 1)
	assert.Equal(t, ActionDeleteReservation, st.audits[0].Action)

	// Deleting again reports not found.
	require.ErrorAs(t, e.Delete(ctx, actor, res.ID), &nf)
}

func TestAvailability(t *testing.T) {
	st, e, loc, room := engineFixture(t)
	roomID := room.ID
	st.addReservation(model.Reservation{
		LocationID: loc.ID, RoomID: &roomID,
		Date: testDay, Start: mustTime(t, "18:00"), DurationMinutes: 60, PartySize: 55,
	})

	day, err := e.Availability(context.Background(), loc.ID, testDay)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-02", day.Date)
	require.Len(t, day.Slots, 12) // Wednesday: 17:00 through 22:30

	bySlot := map[string]SlotAvailability{}
	for _, s := range day.Slots {
		bySlot[s.Time] = s
	}

	// 18:00 and 18:30 overlap the 55-guest party: 5 of 60 seats left.
	assert.True(t, bySlot["18:00"].Available)
	assert.Equal(t, 5, bySlot["18:00"].GuestsAvailable)
	assert.Equal(t, 5, bySlot["18:30"].GuestsAvailable)

	// 19:00 does not overlap the hour-long window.
	assert.Equal(t, 60, bySlot["19:00"].GuestsAvailable)
	assert.Equal(t, 20, bySlot["19:00"].SlotsLeft)
}

func TestAvailabilityWithLocationBlock(t *testing.T) {
	st, e, loc, _ := engineFixture(t)
	st.blocks = append(st.blocks, model.ReservationBlock{
		LocationID: loc.ID,
		StartDate:  testDay, EndDate: testDay,
		StartTime: mustTime(t, "18:00"), EndTime: mustTime(t, "20:00"),
		BlockType: model.BlockHard,
	})

	day, err := e.Availability(context.Background(), loc.ID, testDay)
	require.NoError(t, err)

	for _, s := range day.Slots {
		start := mustTime(t, s.Time)
		blocked := start < mustTime(t, "20:00") && start.Add(60) > mustTime(t, "18:00")
		assert.Equal(t, !blocked, s.Available, "slot %s", s.Time)
	}
}

package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/iliyamo/restaurant-reservation/internal/model"
	"github.com/iliyamo/restaurant-reservation/internal/timeslot"
)

// DefaultDurationMinutes is the dining window length when the caller
// does not specify one.  Public bookings are always this long.
const DefaultDurationMinutes = 60

// SlotIntervalMinutes is the spacing of bookable slots shown on the
// availability endpoint.
const SlotIntervalMinutes = 30

// maxNumberRetries bounds the regenerate-and-retry loop on reservation
// number collisions before the insert is reported as a conflict.
const maxNumberRetries = 5

// Actor identifies the staff member performing an admin operation.
// The zero Actor is an anonymous public caller.
type Actor struct {
	AdminID uint64
	Role    string
}

func (a Actor) manager() bool { return a.Role == model.RoleManager }

// adminRef returns the actor's ID for audit entries, nil for public
// callers.
func (a Actor) adminRef() *uint64 {
	if a.AdminID == 0 {
		return nil
	}
	id := a.AdminID
	return &id
}

// Engine sequences constraint validation, block checking, room
// selection and persistence into a single admission decision.  Each
// admission runs inside one store transaction; the engine keeps no
// state between requests beyond its random source.
type Engine struct {
	store TxStore
	hours func(locationID uint64) timeslot.Hours
	now   func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// Option customises an Engine.
type Option func(*Engine)

// WithRand injects a deterministic random source for the weighted room
// draw and reservation-number generation.
func WithRand(src rand.Source) Option {
	return func(e *Engine) { e.rng = rand.New(src) }
}

// WithNow overrides the clock used for the past-date check.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithHours supplies per-location dining-hours tables.
func WithHours(hours func(locationID uint64) timeslot.Hours) Option {
	return func(e *Engine) { e.hours = hours }
}

// NewEngine builds an Engine over the given store.
func NewEngine(store TxStore, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		hours: func(uint64) timeslot.Hours { return timeslot.DefaultHours() },
		now:   time.Now,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) pick(candidates []Candidate) *Candidate {
	e.mu.Lock()
	defer e.mu.Unlock()
	return pickWeighted(e.rng, candidates)
}

func (e *Engine) newNumber(locationCode string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return reservationNumber(e.rng, locationCode)
}

// PublicRequest is an unauthenticated booking from the website.
type PublicRequest struct {
	LocationID      uint64
	Date            time.Time
	Time            string // "HH:MM"
	PartySize       int
	Name            string
	Email           string
	Phone           string
	SpecialRequests string
}

// AdminRequest is a staff booking or edit.  RoomID pins a specific
// room instead of running the selector; DurationMinutes zero means the
// default; Status empty means confirmed.
type AdminRequest struct {
	Actor           Actor
	LocationID      uint64
	Date            time.Time
	Time            string
	PartySize       int
	DurationMinutes int
	RoomID          *uint64
	Status          string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	SpecialRequests string
}

// Confirmation describes an admitted reservation.
type Confirmation struct {
	ReservationID uint64
	Number        string
	Room          model.Room
}

// BookPublic admits a website booking: party of 1–12, fixed 60-minute
// window, date not in the past and time inside dining hours.  On
// success the reservation is confirmed, a room is auto-assigned and
// the customer record upserted, all in one transaction.
func (e *Engine) BookPublic(ctx context.Context, req PublicRequest) (*Confirmation, error) {
	if req.Name == "" || req.Email == "" {
		return nil, validationf("name and email are required")
	}
	if req.PartySize < 1 || req.PartySize > MaxPublicPartySize {
		return nil, validationf("party size must be between 1 and %d for online bookings", MaxPublicPartySize)
	}
	if dateOnly(req.Date).Before(dateOnly(e.now())) {
		return nil, validationf("cannot book reservations for past dates")
	}
	if !e.hours(req.LocationID).IsValidBookingTime(req.Date, req.Time) {
		return nil, validationf("selected time is outside dining hours")
	}
	start, err := timeslot.Parse(req.Time)
	if err != nil {
		return nil, validationf("invalid time format, use HH:MM")
	}

	p := slotRequest{
		LocationID:      req.LocationID,
		Date:            dateOnly(req.Date),
		Start:           start,
		DurationMinutes: DefaultDurationMinutes,
		PartySize:       req.PartySize,
	}

	var conf *Confirmation
	err = e.store.InTx(ctx, func(st Store) error {
		if err := validateConstraints(ctx, st, p, 0, false); err != nil {
			return err
		}
		room, _, softOverride, err := e.resolveRoom(ctx, st, p, nil, Actor{}, 0)
		if err != nil {
			return err
		}
		loc, err := st.Location(ctx, p.LocationID)
		if err != nil {
			return err
		}
		customerID, err := st.UpsertCustomer(ctx, req.Name, req.Email, req.Phone)
		if err != nil {
			return err
		}
		roomID := room.ID
		res := &model.Reservation{
			CustomerID:      customerID,
			LocationID:      p.LocationID,
			RoomID:          &roomID,
			Date:            p.Date,
			Start:           p.Start,
			DurationMinutes: p.DurationMinutes,
			PartySize:       p.PartySize,
			Status:          model.StatusConfirmed,
			SpecialRequests: req.SpecialRequests,
		}
		if err := e.insertWithNumber(ctx, st, res, loc.Code); err != nil {
			return err
		}
		manual := false
		if err := recordAudit(ctx, st, nil, ActionCreateReservation, "reservation", res.ID, AuditDetails{
			Source:               "public",
			RoomID:               &roomID,
			ManualRoomAssignment: &manual,
			SoftBlockOverride:    &softOverride,
		}); err != nil {
			return err
		}
		conf = &Confirmation{ReservationID: res.ID, Number: res.Number, Room: *room}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conf, nil
}

// BookAdmin admits a staff booking: party of 1–30, optional pinned
// room, custom duration and status, no past-date restriction.
func (e *Engine) BookAdmin(ctx context.Context, req AdminRequest) (*Confirmation, error) {
	p, err := e.adminSlotRequest(&req)
	if err != nil {
		return nil, err
	}

	var conf *Confirmation
	err = e.store.InTx(ctx, func(st Store) error {
		if err := validateConstraints(ctx, st, p, 0, true); err != nil {
			return err
		}
		room, manual, softOverride, err := e.resolveRoom(ctx, st, p, req.RoomID, req.Actor, 0)
		if err != nil {
			return err
		}
		loc, err := st.Location(ctx, p.LocationID)
		if err != nil {
			return err
		}
		customerID, err := st.UpsertCustomer(ctx, req.CustomerName, req.CustomerEmail, req.CustomerPhone)
		if err != nil {
			return err
		}
		roomID := room.ID
		res := &model.Reservation{
			CustomerID:      customerID,
			LocationID:      p.LocationID,
			RoomID:          &roomID,
			Date:            p.Date,
			Start:           p.Start,
			DurationMinutes: p.DurationMinutes,
			PartySize:       p.PartySize,
			Status:          req.Status,
			SpecialRequests: req.SpecialRequests,
		}
		if err := e.insertWithNumber(ctx, st, res, loc.Code); err != nil {
			return err
		}
		if err := recordAudit(ctx, st, req.Actor.adminRef(), ActionCreateReservation, "reservation", res.ID, AuditDetails{
			Source:               "admin",
			RoomID:               &roomID,
			ManualRoomAssignment: &manual,
			SoftBlockOverride:    &softOverride,
		}); err != nil {
			return err
		}
		conf = &Confirmation{ReservationID: res.ID, Number: res.Number, Room: *room}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conf, nil
}

// UpdateDetails re-validates and rewrites an existing reservation with
// new details.  The reservation's own slot is excluded from occupancy
// sums so it never conflicts with itself.
func (e *Engine) UpdateDetails(ctx context.Context, reservationID uint64, req AdminRequest) error {
	p, err := e.adminSlotRequest(&req)
	if err != nil {
		return err
	}

	return e.store.InTx(ctx, func(st Store) error {
		res, err := st.Reservation(ctx, reservationID)
		if err != nil {
			return err
		}
		if err := validateConstraints(ctx, st, p, reservationID, true); err != nil {
			return err
		}
		room, manual, softOverride, err := e.resolveRoom(ctx, st, p, req.RoomID, req.Actor, reservationID)
		if err != nil {
			return err
		}
		customerID, err := st.UpsertCustomer(ctx, req.CustomerName, req.CustomerEmail, req.CustomerPhone)
		if err != nil {
			return err
		}
		roomID := room.ID
		res.CustomerID = customerID
		res.LocationID = p.LocationID
		res.RoomID = &roomID
		res.Date = p.Date
		res.Start = p.Start
		res.DurationMinutes = p.DurationMinutes
		res.PartySize = p.PartySize
		res.Status = req.Status
		res.SpecialRequests = req.SpecialRequests
		if err := st.UpdateReservation(ctx, res); err != nil {
			return err
		}
		return recordAudit(ctx, st, req.Actor.adminRef(), ActionUpdateDetails, "reservation", reservationID, AuditDetails{
			Source:               "admin",
			RoomID:               &roomID,
			ManualRoomAssignment: &manual,
			SoftBlockOverride:    &softOverride,
		})
	})
}

// UpdateStatus changes only the reservation status.
func (e *Engine) UpdateStatus(ctx context.Context, actor Actor, reservationID uint64, status string) error {
	if !model.ValidStatus(status) {
		return validationf("invalid status %q", status)
	}
	return e.store.InTx(ctx, func(st Store) error {
		res, err := st.Reservation(ctx, reservationID)
		if err != nil {
			return err
		}
		res.Status = status
		if err := st.UpdateReservation(ctx, res); err != nil {
			return err
		}
		return recordAudit(ctx, st, actor.adminRef(), ActionUpdateStatus, "reservation", reservationID, AuditDetails{
			NewStatus: status,
		})
	})
}

// ReassignRoom moves a reservation to another room in the same
// location, enforcing blocks and room capacity.  When the target is
// the reservation's current room its own party is excluded from the
// occupancy check.
func (e *Engine) ReassignRoom(ctx context.Context, actor Actor, reservationID, roomID uint64) error {
	return e.store.InTx(ctx, func(st Store) error {
		res, err := st.Reservation(ctx, reservationID)
		if err != nil {
			return err
		}
		room, err := st.Room(ctx, roomID)
		if err != nil {
			return err
		}
		if room.LocationID != res.LocationID {
			return validationf("cannot move reservation to a room in a different location")
		}

		win := res.Window()
		blocked, err := isRoomBlocked(ctx, st, roomID, res.Date, win, model.BlockHard)
		if err != nil {
			return err
		}
		if blocked {
			return &BlockedError{Message: "selected room is blocked (hard block) for this time"}
		}

		excludeID := uint64(0)
		if res.RoomID != nil && *res.RoomID == roomID {
			excludeID = reservationID
		}
		existing, err := st.ConfirmedByRoom(ctx, roomID, res.Date, excludeID)
		if err != nil {
			return err
		}
		guests, _ := Occupancy(existing, win)
		if guests+res.PartySize > room.MaxCapacity {
			return &CapacityError{
				Scope:   "room",
				Kind:    "guests",
				Current: guests,
				Max:     room.MaxCapacity,
				Message: roomCapacityMessage(room, guests, res.PartySize),
			}
		}

		softOverride, err := isRoomBlocked(ctx, st, roomID, res.Date, win, model.BlockSoft)
		if err != nil {
			return err
		}
		if softOverride && !actor.manager() {
			return &BlockedError{Soft: true, Message: "this room is soft-blocked, only managers can override"}
		}

		oldRoomID := res.RoomID
		res.RoomID = &roomID
		if err := st.UpdateReservation(ctx, res); err != nil {
			return err
		}
		return recordAudit(ctx, st, actor.adminRef(), ActionRoomOverride, "reservation", reservationID, AuditDetails{
			OldRoomID:         oldRoomID,
			NewRoomID:         &roomID,
			SoftBlockOverride: &softOverride,
		})
	})
}

// Delete removes a reservation permanently.
func (e *Engine) Delete(ctx context.Context, actor Actor, reservationID uint64) error {
	return e.store.InTx(ctx, func(st Store) error {
		if _, err := st.Reservation(ctx, reservationID); err != nil {
			return err
		}
		if err := st.DeleteReservation(ctx, reservationID); err != nil {
			return err
		}
		return recordAudit(ctx, st, actor.adminRef(), ActionDeleteReservation, "reservation", reservationID, AuditDetails{})
	})
}

// adminSlotRequest normalises an AdminRequest into a slotRequest,
// applying defaults and the shared input checks.
func (e *Engine) adminSlotRequest(req *AdminRequest) (slotRequest, error) {
	if req.CustomerName == "" || req.CustomerEmail == "" {
		return slotRequest{}, validationf("customer name and email are required")
	}
	if req.DurationMinutes == 0 {
		req.DurationMinutes = DefaultDurationMinutes
	}
	if req.DurationMinutes < 1 {
		return slotRequest{}, validationf("duration must be positive")
	}
	if req.Status == "" {
		req.Status = model.StatusConfirmed
	}
	if !model.ValidStatus(req.Status) {
		return slotRequest{}, validationf("invalid status %q", req.Status)
	}
	start, err := timeslot.Parse(req.Time)
	if err != nil {
		return slotRequest{}, validationf("invalid time format, use HH:MM")
	}
	if start.Add(req.DurationMinutes) > timeslot.EndOfDay {
		return slotRequest{}, validationf("reservation window cannot extend past midnight")
	}
	return slotRequest{
		LocationID:      req.LocationID,
		Date:            dateOnly(req.Date),
		Start:           start,
		DurationMinutes: req.DurationMinutes,
		PartySize:       req.PartySize,
	}, nil
}

// resolveRoom decides which room the reservation lands in.  A pinned
// room is checked for hard block, soft block (manager override) and
// capacity; otherwise the weighted selector runs and the chosen room
// gets the same soft-block gate.  Soft blocks are checked here, after
// selection, because override permission depends on the caller's role
// which the selector is agnostic to.
func (e *Engine) resolveRoom(ctx context.Context, st Store, p slotRequest, pinned *uint64, actor Actor, excludeID uint64) (room *model.Room, manual, softOverride bool, err error) {
	win := p.window()

	if pinned != nil {
		room, err = st.Room(ctx, *pinned)
		if err != nil {
			return nil, false, false, err
		}
		if room.LocationID != p.LocationID {
			return nil, false, false, validationf("selected room belongs to a different location")
		}
		blocked, err := isRoomBlocked(ctx, st, room.ID, p.Date, win, model.BlockHard)
		if err != nil {
			return nil, false, false, err
		}
		if blocked {
			return nil, false, false, &BlockedError{Message: "selected room is blocked (hard block) for this time"}
		}
		softOverride, err = isRoomBlocked(ctx, st, room.ID, p.Date, win, model.BlockSoft)
		if err != nil {
			return nil, false, false, err
		}
		if softOverride && !actor.manager() {
			return nil, false, false, &BlockedError{Soft: true, Message: "this room is soft-blocked, only managers can override"}
		}
		existing, err := st.ConfirmedByRoom(ctx, room.ID, p.Date, excludeID)
		if err != nil {
			return nil, false, false, err
		}
		guests, _ := Occupancy(existing, win)
		if guests+p.PartySize > room.MaxCapacity {
			return nil, false, false, &CapacityError{
				Scope:   "room",
				Kind:    "guests",
				Current: guests,
				Max:     room.MaxCapacity,
				Message: roomCapacityMessage(room, guests, p.PartySize),
			}
		}
		return room, true, softOverride, nil
	}

	candidates, err := candidateRooms(ctx, st, p, excludeID)
	if err != nil {
		return nil, false, false, err
	}
	chosen := e.pick(candidates)
	if chosen == nil {
		return nil, false, false, ErrNoAvailability
	}
	softOverride, err = isRoomBlocked(ctx, st, chosen.Room.ID, p.Date, win, model.BlockSoft)
	if err != nil {
		return nil, false, false, err
	}
	if softOverride && !actor.manager() {
		return nil, false, false, &BlockedError{Soft: true, Message: "auto-assignment failed: the only available room is soft-blocked and requires manager override"}
	}
	return &chosen.Room, false, softOverride, nil
}

// insertWithNumber persists the reservation, regenerating the number
// on duplicate-key collisions up to maxNumberRetries times.
func (e *Engine) insertWithNumber(ctx context.Context, st Store, res *model.Reservation, locationCode string) error {
	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		res.Number = e.newNumber(locationCode)
		err := st.InsertReservation(ctx, res)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrDuplicateNumber) {
			return err
		}
	}
	return ErrConflict
}

func roomCapacityMessage(room *model.Room, current, requested int) string {
	return fmt.Sprintf("selected room (%s) does not have enough capacity: %d seated, %d requested, max %d",
		room.Name, current, requested, room.MaxCapacity)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

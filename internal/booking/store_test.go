package booking

import (
	"context"
	"time"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// memStore is an in-memory TxStore used by the engine tests.  InTx
// snapshots the mutable state and restores it when fn fails, matching
// the rollback contract of the real store.
type memStore struct {
	locations    map[uint64]model.Location
	rooms        map[uint64]model.Room
	blocks       []model.ReservationBlock
	customers    map[uint64]model.Customer
	reservations map[uint64]model.Reservation
	audits       []model.AuditLog

	nextID      uint64
	forcedDups  int   // next N inserts report ErrDuplicateNumber
	auditErr    error // forced RecordAudit failure
	usedNumbers map[string]bool
}

func newMemStore() *memStore {
	return &memStore{
		locations:    make(map[uint64]model.Location),
		rooms:        make(map[uint64]model.Room),
		customers:    make(map[uint64]model.Customer),
		reservations: make(map[uint64]model.Reservation),
		usedNumbers:  make(map[string]bool),
		nextID:       1,
	}
}

func (m *memStore) id() uint64 {
	v := m.nextID
	m.nextID++
	return v
}

func (m *memStore) addLocation(loc model.Location) model.Location {
	if loc.ID == 0 {
		loc.ID = m.id()
	}
	m.locations[loc.ID] = loc
	return loc
}

func (m *memStore) addRoom(room model.Room) model.Room {
	if room.ID == 0 {
		room.ID = m.id()
	}
	m.rooms[room.ID] = room
	return room
}

func (m *memStore) addReservation(r model.Reservation) model.Reservation {
	if r.ID == 0 {
		r.ID = m.id()
	}
	if r.Status == "" {
		r.Status = model.StatusConfirmed
	}
	m.reservations[r.ID] = r
	if r.Number != "" {
		m.usedNumbers[r.Number] = true
	}
	return r
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (m *memStore) Location(_ context.Context, id uint64) (*model.Location, error) {
	loc, ok := m.locations[id]
	if !ok {
		return nil, &NotFoundError{Entity: "location", ID: id}
	}
	return &loc, nil
}

func (m *memStore) Room(_ context.Context, id uint64) (*model.Room, error) {
	room, ok := m.rooms[id]
	if !ok {
		return nil, &NotFoundError{Entity: "room", ID: id}
	}
	return &room, nil
}

func (m *memStore) RoomsByLocation(_ context.Context, locationID uint64) ([]model.Room, error) {
	var out []model.Room
	// Stable order by ID so weighted draws are reproducible.
	for id := uint64(0); id < m.nextID; id++ {
		if room, ok := m.rooms[id]; ok && room.LocationID == locationID {
			out = append(out, room)
		}
	}
	return out, nil
}

func (m *memStore) ConfirmedByRoom(_ context.Context, roomID uint64, date time.Time, excludeID uint64) ([]model.Reservation, error) {
	var out []model.Reservation
	for id := uint64(0); id < m.nextID; id++ {
		r, ok := m.reservations[id]
		if !ok || r.ID == excludeID || r.Status != model.StatusConfirmed {
			continue
		}
		if r.RoomID != nil && *r.RoomID == roomID && sameDate(r.Date, date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) ConfirmedByLocation(_ context.Context, locationID uint64, date time.Time, excludeID uint64) ([]model.Reservation, error) {
	var out []model.Reservation
	for id := uint64(0); id < m.nextID; id++ {
		r, ok := m.reservations[id]
		if !ok || r.ID == excludeID || r.Status != model.StatusConfirmed {
			continue
		}
		if r.LocationID == locationID && sameDate(r.Date, date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) RoomBlocks(_ context.Context, roomID uint64, date time.Time, blockType string) ([]model.ReservationBlock, error) {
	var out []model.ReservationBlock
	for _, b := range m.blocks {
		if b.RoomID != nil && *b.RoomID == roomID && b.BlockType == blockType && b.CoversDate(date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) LocationBlocks(_ context.Context, locationID uint64, date time.Time) ([]model.ReservationBlock, error) {
	var out []model.ReservationBlock
	for _, b := range m.blocks {
		if b.LocationID == locationID && b.RoomID == nil && b.BlockType == model.BlockHard && b.CoversDate(date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memStore) UpsertCustomer(_ context.Context, name, email, phone string) (uint64, error) {
	for id, c := range m.customers {
		if c.Email == email {
			c.Name = name
			c.Phone = phone
			m.customers[id] = c
			return id, nil
		}
	}
	id := m.id()
	m.customers[id] = model.Customer{ID: id, Name: name, Email: email, Phone: phone}
	return id, nil
}

func (m *memStore) Reservation(_ context.Context, id uint64) (*model.Reservation, error) {
	r, ok := m.reservations[id]
	if !ok {
		return nil, &NotFoundError{Entity: "reservation", ID: id}
	}
	return &r, nil
}

func (m *memStore) InsertReservation(_ context.Context, r *model.Reservation) error {
	if m.forcedDups > 0 {
		m.forcedDups--
		return ErrDuplicateNumber
	}
	if m.usedNumbers[r.Number] {
		return ErrDuplicateNumber
	}
	r.ID = m.id()
	m.usedNumbers[r.Number] = true
	m.reservations[r.ID] = *r
	return nil
}

func (m *memStore) UpdateReservation(_ context.Context, r *model.Reservation) error {
	if _, ok := m.reservations[r.ID]; !ok {
		return &NotFoundError{Entity: "reservation", ID: r.ID}
	}
	m.reservations[r.ID] = *r
	return nil
}

func (m *memStore) DeleteReservation(_ context.Context, id uint64) error {
	delete(m.reservations, id)
	return nil
}

func (m *memStore) RecordAudit(_ context.Context, entry *model.AuditLog) error {
	if m.auditErr != nil {
		return m.auditErr
	}
	entry.ID = m.id()
	m.audits = append(m.audits, *entry)
	return nil
}

func (m *memStore) InTx(ctx context.Context, fn func(Store) error) error {
	snapReservations := make(map[uint64]model.Reservation, len(m.reservations))
	for k, v := range m.reservations {
		snapReservations[k] = v
	}
	snapCustomers := make(map[uint64]model.Customer, len(m.customers))
	for k, v := range m.customers {
		snapCustomers[k] = v
	}
	snapNumbers := make(map[string]bool, len(m.usedNumbers))
	for k, v := range m.usedNumbers {
		snapNumbers[k] = v
	}
	snapAudits := append([]model.AuditLog(nil), m.audits...)
	snapNext := m.nextID

	if err := fn(m); err != nil {
		m.reservations = snapReservations
		m.customers = snapCustomers
		m.usedNumbers = snapNumbers
		m.audits = snapAudits
		m.nextID = snapNext
		return err
	}
	return nil
}

package model

import (
	"time"

	"github.com/iliyamo/restaurant-reservation/internal/timeslot"
)

// Block types.  A hard block is absolute; a soft block can be
// overridden only by a manager.
const (
	BlockHard = "hard"
	BlockSoft = "soft"
)

// ReservationBlock marks a room or a whole location as unavailable for
// a recurring time-of-day range over an inclusive date range.  RoomID
// nil means the block applies location-wide.  Blocks are created and
// deleted by administrators, never edited in place.
//
// Fields:
//  ID         – primary key identifier.
//  LocationID – location the block belongs to.
//  RoomID     – blocked room (nil ⇒ location-wide).
//  StartDate  – first day the block applies (inclusive).
//  EndDate    – last day the block applies (inclusive).
//  StartTime  – daily start of the blocked time range.
//  EndTime    – daily end of the blocked time range.
//  BlockType  – BlockHard or BlockSoft.
//  Reason     – free-form explanation shown to staff.
//  CreatedBy  – admin who created the block (nil if the account was removed).
//  CreatedAt  – creation timestamp.
type ReservationBlock struct {
	ID         uint64             // reservation_blocks.id
	LocationID uint64             // reservation_blocks.location_id
	RoomID     *uint64            // reservation_blocks.room_id (nullable)
	StartDate  time.Time          // reservation_blocks.start_date
	EndDate    time.Time          // reservation_blocks.end_date
	StartTime  timeslot.TimeOfDay // reservation_blocks.start_time
	EndTime    timeslot.TimeOfDay // reservation_blocks.end_time
	BlockType  string             // reservation_blocks.block_type
	Reason     string             // reservation_blocks.reason
	CreatedBy  *uint64            // reservation_blocks.created_by (nullable)
	CreatedAt  time.Time          // reservation_blocks.created_at
}

// CoversDate reports whether the block's inclusive date range contains
// the given calendar day.
func (b *ReservationBlock) CoversDate(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(b.StartDate.Truncate(24*time.Hour)) && !d.After(b.EndDate.Truncate(24*time.Hour))
}

// TimeRange returns the daily blocked window.
func (b *ReservationBlock) TimeRange() timeslot.Window {
	return timeslot.Window{Start: b.StartTime, End: b.EndTime}
}

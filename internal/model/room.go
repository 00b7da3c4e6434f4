package model

import "time"

// Room is a dining room inside a location.  Only active rooms are
// candidates for automatic assignment.  Corresponds to a row in the
// `rooms` table.
//
// Fields:
//  ID          – primary key identifier.
//  LocationID  – location the room belongs to.
//  Code        – unique room code (e.g. "R1").
//  Name        – display name of the room.
//  MaxCapacity – maximum number of guests the room seats at once.
//  IsActive    – whether the room accepts new reservations.
//  CreatedAt   – creation timestamp.
type Room struct {
	ID          uint64    // rooms.id
	LocationID  uint64    // rooms.location_id
	Code        string    // rooms.code
	Name        string    // rooms.name
	MaxCapacity int       // rooms.max_capacity
	IsActive    bool      // rooms.is_active
	CreatedAt   time.Time // rooms.created_at
}

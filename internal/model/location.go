package model

import "time"

// Location represents a restaurant location.  Each location owns a set
// of rooms and carries the per-slot limits enforced during admission.
// This struct corresponds to a row in the `locations` table.
//
// Fields:
//  ID                     – primary key identifier.
//  Code                   – short unique code used as the reservation-number prefix (e.g. "JPN").
//  Name                   – display name of the location.
//  Timezone               – IANA timezone name of the location.
//  MaxGuestsPerSlot       – location-wide guest cap for any time window.
//  MaxReservationsPerSlot – location-wide reservation-count cap for any time window.
//  CreatedAt              – timestamp when the location was created.
type Location struct {
	ID                     uint64    // locations.id
	Code                   string    // locations.code
	Name                   string    // locations.name
	Timezone               string    // locations.timezone
	MaxGuestsPerSlot       int       // locations.max_guests_per_slot
	MaxReservationsPerSlot int       // locations.max_reservations_per_slot
	CreatedAt              time.Time // locations.created_at
}

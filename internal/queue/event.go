// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when a reservation is admitted.
// It carries enough information for downstream consumers to send the
// confirmation email, log, or feed analytics without querying the
// primary database.  EventID is a UUID so consumers can deduplicate
// redelivered messages.
type ReservationConfirmedEvent struct {
	EventID           string `json:"event_id"`
	ReservationID     uint64 `json:"reservation_id"`
	ReservationNumber string `json:"reservation_number"`
	CustomerName      string `json:"customer_name"`
	CustomerEmail     string `json:"customer_email"`
	LocationID        uint64 `json:"location_id"`
	LocationName      string `json:"location_name"`
	RoomID            uint64 `json:"room_id"`
	RoomName          string `json:"room_name"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	DurationMinutes   int    `json:"duration_minutes"`
	PartySize         int    `json:"party_size"`
	SpecialRequests   string `json:"special_requests,omitempty"`
	ConfirmedAt       string `json:"confirmed_at"`
}

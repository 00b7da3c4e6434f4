package model

import "time"

// AuditLog records an administrative or engine decision.  Details is
// the JSON encoding of a booking.AuditDetails value; the column keeps
// raw bytes so readers can unmarshal into the typed structure.
//
// Fields:
//  ID         – primary key identifier.
//  AdminID    – acting admin (nil for system/public actions).
//  Action     – short action name, e.g. "create_reservation".
//  EntityType – kind of entity affected ("reservation", "reservation_block", ...).
//  EntityID   – identifier of the affected entity.
//  Details    – JSON-encoded structured details.
//  CreatedAt  – when the entry was written.
type AuditLog struct {
	ID         uint64    // audit_log.id
	AdminID    *uint64   // audit_log.admin_id (nullable)
	Action     string    // audit_log.action
	EntityType string    // audit_log.entity_type
	EntityID   uint64    // audit_log.entity_id
	Details    []byte    // audit_log.details (JSON)
	CreatedAt  time.Time // audit_log.created_at
}

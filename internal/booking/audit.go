package booking

import (
	"context"
	"encoding/json"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// Audit action names recorded by the engine.
const (
	ActionCreateReservation = "create_reservation"
	ActionUpdateStatus      = "update_status"
	ActionUpdateDetails     = "update_details"
	ActionRoomOverride      = "manual_room_override"
	ActionDeleteReservation = "delete_reservation"
)

// AuditDetails is the structured payload stored with each audit entry.
// Each action fills only the fields relevant to it; Extra carries any
// additional context without loosening the known fields into a free
// JSON blob.
type AuditDetails struct {
	Source               string                 `json:"source,omitempty"` // "public" or "admin"
	RoomID               *uint64                `json:"room_id,omitempty"`
	ManualRoomAssignment *bool                  `json:"manual_room_assignment,omitempty"`
	SoftBlockOverride    *bool                  `json:"soft_block_override,omitempty"`
	OldRoomID            *uint64                `json:"old_room_id,omitempty"`
	NewRoomID            *uint64                `json:"new_room_id,omitempty"`
	NewStatus            string                 `json:"new_status,omitempty"`
	Extra                map[string]interface{} `json:"extra,omitempty"`
}

// recordAudit marshals the details and appends an audit entry within
// the current transaction.  adminID nil marks a system/public action.
func recordAudit(ctx context.Context, st Store, adminID *uint64, action, entityType string, entityID uint64, d AuditDetails) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return st.RecordAudit(ctx, &model.AuditLog{
		AdminID:    adminID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    payload,
	})
}

package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// AuditEntry joins an audit row with the acting admin's username for
// display.
type AuditEntry struct {
	model.AuditLog
	AdminUsername string
}

// AuditRepository reads the audit trail.  Writes happen through
// BookingStore inside the admission transaction.
type AuditRepository struct {
	DB *sql.DB
}

// NewAuditRepository creates a new AuditRepository instance.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

// ListRecent returns the latest audit entries, capped at limit.
func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]AuditEntry, error) {
	const q = `SELECT a.id, a.admin_id, a.action, a.entity_type, a.entity_id, a.details, a.created_at,
	                  COALESCE(ad.username, '')
	           FROM audit_log a
	           LEFT JOIN admins ad ON ad.id = a.admin_id
	           ORDER BY a.created_at DESC, a.id DESC
	           LIMIT ?`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AuditEntry
	for rows.Next() {
		var e AuditEntry
		var adminID sql.NullInt64
		if err := rows.Scan(&e.ID, &adminID, &e.Action, &e.EntityType, &e.EntityID,
			&e.Details, &e.CreatedAt, &e.AdminUsername); err != nil {
			return nil, err
		}
		if adminID.Valid {
			id := uint64(adminID.Int64)
			e.AdminID = &id
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

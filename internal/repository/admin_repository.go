package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/restaurant-reservation/internal/model"
)

// AdminRepository manages admin accounts and their refresh tokens.
type AdminRepository struct {
	DB *sql.DB
}

// NewAdminRepository creates a new AdminRepository instance.
func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

const adminColumns = `id, username, password_hash, full_name, role, created_at`

func scanAdmin(scan func(dest ...interface{}) error) (*model.Admin, error) {
	var a model.Admin
	if err := scan(&a.ID, &a.Username, &a.PasswordHash, &a.FullName, &a.Role, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByUsername fetches an admin for login, or ErrNotFound.
func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*model.Admin, error) {
	q := `SELECT ` + adminColumns + ` FROM admins WHERE username = ?`
	a, err := scanAdmin(r.DB.QueryRowContext(ctx, q, username).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID fetches an admin or ErrNotFound.
func (r *AdminRepository) GetByID(ctx context.Context, id uint64) (*model.Admin, error) {
	q := `SELECT ` + adminColumns + ` FROM admins WHERE id = ?`
	a, err := scanAdmin(r.DB.QueryRowContext(ctx, q, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateFullName changes the admin's display name.
func (r *AdminRepository) UpdateFullName(ctx context.Context, id uint64, fullName string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE admins SET full_name = ? WHERE id = ?`, fullName, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the admin's password hash.
func (r *AdminRepository) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE admins SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// StoreRefreshToken persists the hash of a freshly issued refresh
// token.
func (r *AdminRepository) StoreRefreshToken(ctx context.Context, adminID uint64, tokenHash string, expiresAt time.Time) error {
	const q = `INSERT INTO admin_refresh_tokens (admin_id, token_hash, expires_at) VALUES (?, ?, ?)`
	_, err := r.DB.ExecContext(ctx, q, adminID, tokenHash, expiresAt)
	return err
}

// FindValidRefreshToken returns the stored token row when the hash
// exists, has not expired and has not been revoked.
func (r *AdminRepository) FindValidRefreshToken(ctx context.Context, tokenHash string) (*model.AdminRefreshToken, error) {
	const q = `SELECT id, admin_id, token_hash, expires_at, revoked_at, created_at
	           FROM admin_refresh_tokens
	           WHERE token_hash = ? AND expires_at > NOW() AND revoked_at IS NULL`
	var t model.AdminRefreshToken
	var revoked sql.NullTime
	err := r.DB.QueryRowContext(ctx, q, tokenHash).Scan(
		&t.ID, &t.AdminID, &t.TokenHash, &t.ExpiresAt, &revoked, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if revoked.Valid {
		t.RevokedAt = &revoked.Time
	}
	return &t, nil
}

// RevokeRefreshToken invalidates a single token, used on rotation and
// logout.
func (r *AdminRepository) RevokeRefreshToken(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE admin_refresh_tokens SET revoked_at = NOW() WHERE id = ? AND revoked_at IS NULL`, id)
	return err
}

// RevokeAllRefreshTokens invalidates every live token of an admin,
// used after a password change.
func (r *AdminRepository) RevokeAllRefreshTokens(ctx context.Context, adminID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE admin_refresh_tokens SET revoked_at = NOW() WHERE admin_id = ? AND revoked_at IS NULL`, adminID)
	return err
}

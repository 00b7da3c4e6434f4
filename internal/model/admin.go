package model

import "time"

// Admin roles.  Managers may override soft blocks; plain admins may
// not.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// Admin is a staff account.  Only staff authenticate; public bookings
// are anonymous.  Corresponds to a row in the `admins` table.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login name.
//  PasswordHash – bcrypt hash of the password.
//  FullName     – display name.
//  Role         – RoleAdmin or RoleManager.
//  CreatedAt    – creation timestamp.
type Admin struct {
	ID           uint64    // admins.id
	Username     string    // admins.username
	PasswordHash string    // admins.password_hash
	FullName     string    // admins.full_name
	Role         string    // admins.role
	CreatedAt    time.Time // admins.created_at
}

// AdminRefreshToken models an entry in the `admin_refresh_tokens`
// table.  Only the SHA-256 hash of the token is stored.
//
// Fields:
//  ID        – primary key identifier.
//  AdminID   – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp.
//  RevokedAt – when the token was revoked (nil if still active).
//  CreatedAt – creation timestamp.
type AdminRefreshToken struct {
	ID        uint64     // admin_refresh_tokens.id
	AdminID   uint64     // admin_refresh_tokens.admin_id
	TokenHash string     // admin_refresh_tokens.token_hash
	ExpiresAt time.Time  // admin_refresh_tokens.expires_at
	RevokedAt *time.Time // admin_refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // admin_refresh_tokens.created_at
}

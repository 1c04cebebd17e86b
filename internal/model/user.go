package model

import "time"

// Role is the account type stored in users.role.  It decides which
// route groups a token may reach and which profile shape belongs to
// the account.
type Role string

const (
	RoleSeeker   Role = "seeker"
	RoleEmployer Role = "employer"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSeeker, RoleEmployer, RoleAdmin:
		return true
	}
	return false
}

// User represents an application user record as stored in the
// `users` table.  Users are never hard-deleted; an admin ban only
// flips the Banned flag.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Name         – display name shown on public profiles.
//	Email        – unique, lower-cased email address.
//	PasswordHash – bcrypt hashed password, never serialized.
//	Role         – seeker, employer or admin.
//	Banned       – soft-ban flag set by an admin.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id"`         // users.id
	Name         string    `json:"name"`       // users.name
	Email        string    `json:"email"`      // users.email
	PasswordHash string    `json:"-"`          // users.password_hash
	Role         Role      `json:"role"`       // users.role
	Banned       bool      `json:"banned"`     // users.banned
	CreatedAt    time.Time `json:"created_at"` // users.created_at
	UpdatedAt    time.Time `json:"updated_at"` // users.updated_at
}

// Identity is the authenticated caller extracted from a verified
// access token.  Every ownership decision compares resource owner ids
// against Identity.ID; client supplied owner fields are ignored.
type Identity struct {
	ID    uint64 `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// RevokedToken models an entry in the `revoked_tokens` table.  A
// token listed here is rejected by the authenticator even while its
// signature and expiry are still valid.  Rows whose ExpiresAt has
// passed are reclaimed by the periodic sweep.
type RevokedToken struct {
	Token     string    // revoked_tokens.token
	ExpiresAt time.Time // revoked_tokens.expires_at
	RevokedAt time.Time // revoked_tokens.revoked_at
}

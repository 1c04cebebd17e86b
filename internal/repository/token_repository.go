package repository

import (
	"context"
	"database/sql"
	"time"
)

// TokenRepo is the revocation ledger backed by `revoked_tokens`.
// Lookups are existence-only, so recording the same token twice is
// harmless.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// Revoke records token as revoked until expiresAt.
func (r *TokenRepo) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO revoked_tokens (token, expires_at) VALUES (?,?)",
		token, expiresAt.UTC())
	return err
}

// IsRevoked reports whether token appears in the ledger.
func (r *TokenRepo) IsRevoked(ctx context.Context, token string) (bool, error) {
	var found int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM revoked_tokens WHERE token=? LIMIT 1", token).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteExpired removes ledger rows whose expiry is before now and
// returns how many were removed.  Unexpired rows are never touched.
func (r *TokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM revoked_tokens WHERE expires_at < ?", now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

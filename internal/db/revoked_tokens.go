package db

import (
	"context"
	"fmt"
	"time"
)

// RevokedTokenRepository is the SQL-backed token denylist.
type RevokedTokenRepository struct {
	db *DB
}

func NewRevokedTokenRepository(db *DB) *RevokedTokenRepository {
	return &RevokedTokenRepository{db: db}
}

// Revoke is idempotent: revoking an already revoked token keeps the first row.
func (r *RevokedTokenRepository) Revoke(ctx context.Context, tokenID, userID string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, r.db.rebind(
		`INSERT INTO revoked_tokens (token_id, user_id, expires_at, revoked_at) VALUES (?, ?, ?, ?)
         ON CONFLICT (token_id) DO NOTHING`),
		tokenID, userID, expiresAt.UTC(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

func (r *RevokedTokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, r.db.rebind(
		`SELECT COUNT(*) FROM revoked_tokens WHERE token_id = ?`), tokenID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking revoked token: %w", err)
	}
	return count > 0, nil
}

// DeleteExpired drops rows for tokens that can no longer validate anyway.
func (r *RevokedTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, r.db.rebind(
		`DELETE FROM revoked_tokens WHERE expires_at < ?`), time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting expired revoked tokens: %w", err)
	}
	return result.RowsAffected()
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pushauth/internal/models"
)

const deviceTokenColumns = `id, user_id, device_token, device_type, created_at, updated_at`

type DeviceTokenRepository struct {
	db *DB
}

func NewDeviceTokenRepository(db *DB) *DeviceTokenRepository {
	return &DeviceTokenRepository{db: db}
}

// CreateDeviceToken inserts a new binding. A binding for the same token and
// type that already exists yields ErrDuplicate.
func (r *DeviceTokenRepository) CreateDeviceToken(ctx context.Context, token *models.DeviceToken) error {
	id, err := GenerateID("dvt")
	if err != nil {
		return fmt.Errorf("generating device token ID: %w", err)
	}
	now := time.Now().UTC()

	_, err = r.db.ExecContext(ctx, r.db.rebind(
		`INSERT INTO device_tokens (`+deviceTokenColumns+`) VALUES (?, ?, ?, ?, ?, ?)`),
		id, token.UserID, token.DeviceToken, int(token.DeviceType), now, now,
	)
	if err != nil {
		if IsUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("creating device token: %w", err)
	}

	token.ID = id
	token.CreatedAt = now
	token.UpdatedAt = now
	return nil
}

// UpsertDeviceToken binds (device_token, device_type) to token.UserID,
// taking the row over from any previous owner. The stored row is written
// back into token.
func (r *DeviceTokenRepository) UpsertDeviceToken(ctx context.Context, token *models.DeviceToken) error {
	id, err := GenerateID("dvt")
	if err != nil {
		return fmt.Errorf("generating device token ID: %w", err)
	}
	now := time.Now().UTC()

	_, err = r.db.ExecContext(ctx, r.db.rebind(
		`INSERT INTO device_tokens (`+deviceTokenColumns+`) VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT (device_token, device_type)
         DO UPDATE SET user_id = excluded.user_id, updated_at = excluded.updated_at`),
		id, token.UserID, token.DeviceToken, int(token.DeviceType), now, now,
	)
	if err != nil {
		return fmt.Errorf("upserting device token: %w", err)
	}

	stored, err := r.FindDeviceToken(ctx, token.DeviceToken, token.DeviceType)
	if err != nil {
		return fmt.Errorf("reading upserted device token: %w", err)
	}
	*token = *stored
	return nil
}

// DeleteDeviceToken removes the caller's bindings for a device token across
// device types. Deleting nothing is not an error.
func (r *DeviceTokenRepository) DeleteDeviceToken(ctx context.Context, deviceToken, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, r.db.rebind(
		`DELETE FROM device_tokens WHERE device_token = ? AND user_id = ?`),
		deviceToken, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("deleting device token: %w", err)
	}
	return result.RowsAffected()
}

func (r *DeviceTokenRepository) FindDeviceToken(ctx context.Context, deviceToken string, deviceType models.DeviceType) (*models.DeviceToken, error) {
	var (
		t  models.DeviceToken
		dt int
	)

	err := r.db.QueryRowContext(ctx, r.db.rebind(
		`SELECT `+deviceTokenColumns+` FROM device_tokens WHERE device_token = ? AND device_type = ?`),
		deviceToken, int(deviceType),
	).Scan(&t.ID, &t.UserID, &t.DeviceToken, &dt, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying device token: %w", err)
	}

	t.DeviceType = models.DeviceType(dt)
	return &t, nil
}

func (r *DeviceTokenRepository) ListDeviceTokensForUser(ctx context.Context, userID string) ([]*models.DeviceToken, error) {
	rows, err := r.db.QueryContext(ctx, r.db.rebind(
		`SELECT `+deviceTokenColumns+` FROM device_tokens WHERE user_id = ? ORDER BY created_at`),
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []*models.DeviceToken
	for rows.Next() {
		var (
			t  models.DeviceToken
			dt int
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.DeviceToken, &dt, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning device token: %w", err)
		}
		t.DeviceType = models.DeviceType(dt)
		tokens = append(tokens, &t)
	}

	return tokens, rows.Err()
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pushauth/internal/models"
)

const userColumns = `id, name, email, password_hash, blocked, created_at, updated_at`

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts the user and fills in its ID and timestamps. A taken
// email yields ErrDuplicate.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	id, err := GenerateID("usr")
	if err != nil {
		return fmt.Errorf("generating user ID: %w", err)
	}
	now := time.Now().UTC()

	_, err = r.db.ExecContext(ctx, r.db.rebind(
		`INSERT INTO users (id, name, email, password_hash, blocked, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`),
		id, user.Name, user.Email, user.PasswordHash, user.Blocked, now, now,
	)
	if err != nil {
		if IsUniqueConstraintError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("creating user: %w", err)
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// FindUserByEmail matches case-insensitively.
func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower(?)`, email)
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, r.db.rebind(
		`SELECT COUNT(*) FROM users WHERE lower(email) = lower(?)`), email,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking email availability: %w", err)
	}
	return count > 0, nil
}

// SetBlocked is used by administrative tooling; the API never calls it.
func (r *UserRepository) SetBlocked(ctx context.Context, id string, blocked bool) error {
	result, err := r.db.ExecContext(ctx, r.db.rebind(
		`UPDATE users SET blocked = ?, updated_at = ? WHERE id = ?`),
		blocked, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("updating blocked flag: %w", err)
	}
	return checkRowsAffected(result)
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	var u models.User

	err := r.db.QueryRowContext(ctx, r.db.rebind(query), args...).Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Blocked,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	return &u, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/msomdec/inkpost/internal/domain"
)

// UserRepository implements domain.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.SqlDB}
}

const userColumns = `id, uid, email, username, password_hash, created_at, updated_at`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	uid := uuid.NewString()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (uid, email, username, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uid, user.Email, nullString(user.Username), user.PasswordHash, now, now,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	user.ID = id
	user.UID = uid
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*domain.User, error) {
	return r.getOne(ctx, "uid", uid)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email", email)
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// getOne looks a user up by a single column; column is never caller-supplied.
func (r *UserRepository) getOne(ctx context.Context, column string, value any) (*domain.User, error) {
	user := &domain.User{}
	var username sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+column+` = ?`, value,
	).Scan(&user.ID, &user.UID, &user.Email, &username, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query user by %s: %w", column, err)
	}
	user.Username = nullableString(username)
	return user, nil
}

// isUniqueConstraintError checks if the error is a SQLite unique constraint violation.
func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func nullableString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

// nullString and nullInt64 turn optional fields into bind values, nil meaning NULL.
func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullInt64(n *int64) any {
	if n == nil {
		return nil
	}
	return *n
}

func nullableInt64(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	return &n.Int64
}

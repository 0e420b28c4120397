package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bioauth/internal/common"
	"github.com/dmitrijs2005/bioauth/internal/dbx"
	"github.com/dmitrijs2005/bioauth/internal/server/models"
	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// SQLiteRepository stores users in SQLite. Timestamps are kept as
// RFC 3339 text with nanoseconds, in UTC.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO users (id, email, password_hash, biometric_key, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)
		 `

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, nullString(user.BiometricKey),
		formatTime(user.CreatedAt), formatTime(user.UpdatedAt))

	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLiteRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, biometric_key, created_at, updated_at FROM users
		 WHERE id = ?
		 `
	return r.getOne(ctx, query, id)
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, biometric_key, created_at, updated_at FROM users
		 WHERE email = ?
		 `
	return r.getOne(ctx, query, email)
}

func (r *SQLiteRepository) GetUserByBiometricKey(ctx context.Context, key string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, biometric_key, created_at, updated_at FROM users
		 WHERE biometric_key = ?
		 `
	return r.getOne(ctx, query, key)
}

func (r *SQLiteRepository) UpdateBiometricKey(ctx context.Context, id, key string, updatedAt time.Time) (*models.User, error) {
	query :=
		`UPDATE users SET biometric_key = ?, updated_at = ?
		 WHERE id = ?
		 RETURNING id, email, password_hash, biometric_key, created_at, updated_at
		 `

	user, err := scanSQLiteUser(r.db.QueryRowContext(ctx, query, key, formatTime(updatedAt), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		if isSQLiteUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLiteRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user, err := scanSQLiteUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func scanSQLiteUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var bio sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &bio, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if bio.Valid {
		user.BiometricKey = &bio.String
	}

	var err error
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if user.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return user, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

func isSQLiteUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

package users

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/bioauth/internal/common"
	"github.com/dmitrijs2005/bioauth/internal/dbx"
	"github.com/dmitrijs2005/bioauth/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sqliteSchema = `CREATE TABLE users (
    id            TEXT PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    biometric_key TEXT UNIQUE,
    created_at    TEXT NOT NULL,
    updated_at    TEXT NOT NULL
)`

func newSQLiteRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := dbx.Open(context.Background(), dbx.DriverSQLite, filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(sqliteSchema)
	require.NoError(t, err)
	return NewSQLiteRepository(db), db
}

func TestSQLite_CreateAndGet(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	now := time.Date(2025, 3, 1, 10, 0, 0, 123456789, time.UTC)
	created, err := repo.Create(ctx, &models.User{
		Email: "a@x.com", PasswordHash: "hash", BiometricKey: strptr("bioA"), CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	byEmail, err := repo.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)
	assert.True(t, byEmail.CreatedAt.Equal(now), "created_at round-trip: %v", byEmail.CreatedAt)

	byID, err := repo.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)

	byKey, err := repo.GetUserByBiometricKey(ctx, "bioA")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byKey.ID)

	_, err = repo.GetUserByBiometricKey(ctx, "bioZ")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_UniqueViolations(t *testing.T) {
	repo, db := newSQLiteRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	_, err := repo.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: "h", BiometricKey: strptr("bioA"), CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: "h", CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists, "duplicate email")

	_, err = repo.Create(ctx, &models.User{Email: "b@x.com", PasswordHash: "h", BiometricKey: strptr("bioA"), CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists, "duplicate biometric key")

	// several users without a key are fine
	_, err = repo.Create(ctx, &models.User{Email: "c@x.com", PasswordHash: "h", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.User{Email: "d@x.com", PasswordHash: "h", CreatedAt: now, UpdatedAt: now})
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM users`).Scan(&count))
	assert.Equal(t, 3, count)
}

func TestSQLite_UpdateBiometricKey(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()
	t0 := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	a, err := repo.Create(ctx, &models.User{Email: "a@x.com", PasswordHash: "h", BiometricKey: strptr("bioA"), CreatedAt: t0, UpdatedAt: t0})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.User{Email: "b@x.com", PasswordHash: "h", BiometricKey: strptr("bioB"), CreatedAt: t0, UpdatedAt: t0})
	require.NoError(t, err)

	t1 := t0.Add(time.Minute)
	updated, err := repo.UpdateBiometricKey(ctx, a.ID, "bioC", t1)
	require.NoError(t, err)
	assert.Equal(t, "bioC", *updated.BiometricKey)
	assert.True(t, updated.UpdatedAt.Equal(t1))
	assert.True(t, updated.CreatedAt.Equal(t0))

	_, err = repo.GetUserByBiometricKey(ctx, "bioA")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.UpdateBiometricKey(ctx, a.ID, "bioB", t1)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = repo.UpdateBiometricKey(ctx, "missing", "bioD", t1)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestIsSQLiteUniqueViolation_MessageFallback(t *testing.T) {
	assert.True(t, isSQLiteUniqueViolation(errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)")))
	assert.False(t, isSQLiteUniqueViolation(errors.New("disk I/O error")))
}

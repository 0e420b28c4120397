// Package users persists identity records in Postgres or SQLite.
//
// Every implementation reports unique-constraint violations as
// common.ErrorAlreadyExists and missing rows as common.ErrorNotFound. Any
// other failure is wrapped with "db error".
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/bioauth/internal/server/models"
)

type Repository interface {
	// Create inserts user, assigning a new ID when empty.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByBiometricKey(ctx context.Context, key string) (*models.User, error)
	UpdateBiometricKey(ctx context.Context, id, key string, updatedAt time.Time) (*models.User, error)
}

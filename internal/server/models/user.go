package models

import "time"

// User is the persisted identity record.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	BiometricKey *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

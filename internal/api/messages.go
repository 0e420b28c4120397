package api

import "time"

type RegisterRequest struct {
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	BiometricKey *string `json:"biometricKey,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type BiometricLoginRequest struct {
	BiometricKey string `json:"biometricKey"`
}

// UpdateBiometricKeyRequest must be sent with "authorization: Bearer <token>"
// metadata.
type UpdateBiometricKeyRequest struct {
	NewBiometricKey string `json:"newBiometricKey"`
}

// User is the public view of an identity record. Secrets are never exposed.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpdateBiometricKeyResponse struct {
	User User `json:"user"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

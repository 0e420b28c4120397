package client

import (
	"context"

	"github.com/dmitrijs2005/bioauth/internal/api"
)

// Client is the transport-agnostic view of the auth backend used by the CLI.
type Client interface {
	Close() error
	Register(ctx context.Context, email string, password []byte, biometricKey *string) (*api.User, error)
	Login(ctx context.Context, email string, password []byte) (*api.User, error)
	BiometricLogin(ctx context.Context, biometricKey string) (*api.User, error)
	UpdateBiometricKey(ctx context.Context, biometricKey string) (*api.User, error)
	Ping(ctx context.Context) error
	Logout()
	Token() string
}

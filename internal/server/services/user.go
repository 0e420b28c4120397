// Package services contains server-side business logic. This file implements
// UserService, which handles registration, password and biometric login,
// biometric key rotation and bearer token authentication.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bioauth/internal/common"
	"github.com/dmitrijs2005/bioauth/internal/server/auth"
	"github.com/dmitrijs2005/bioauth/internal/server/config"
	"github.com/dmitrijs2005/bioauth/internal/server/models"
	"github.com/dmitrijs2005/bioauth/internal/server/password"
	"github.com/dmitrijs2005/bioauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bioauth/internal/server/validation"
	"github.com/google/uuid"
)

// AuthResult is returned by every successful authentication.
type AuthResult struct {
	Token string
	User  *models.User
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) (bool, error)
}

// TokenIssuer mints and validates access tokens.
type TokenIssuer interface {
	Mint(userID string) (string, error)
	Validate(token string) (string, error)
}

// UserService provides authentication-related operations:
// - Register: create users
// - Login / BiometricLogin: verify credentials and mint tokens
// - UpdateBiometricKey: rotate the caller's biometric key
// - Authenticate: resolve a bearer token to its user
//
// It holds no mutable state and is safe for concurrent use. Uniqueness is
// left to the database constraints.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	issuer      TokenIssuer
	now         func() time.Time
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      password.NewHasher(cfg.BcryptCost),
		issuer:      auth.NewIssuer([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration),
		now:         time.Now,
	}
}

// Register creates a user and returns a token for it. Input is expected to
// be validated already. A taken email or biometric key yields
// common.ErrDuplicateIdentity without saying which one.
func (s *UserService) Register(ctx context.Context, email, plainPassword string, biometricKey *string) (*AuthResult, error) {
	hash, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return nil, internal(err)
	}

	now := s.now().UTC()
	user := &models.User{
		Email:        validation.NormalizeEmail(email),
		PasswordHash: hash,
		BiometricKey: biometricKey,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrDuplicateIdentity
		}
		return nil, internal(fmt.Errorf("error creating user: %w", err))
	}

	return s.issue(u)
}

// Login verifies email and password. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, plainPassword string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, internal(err)
	}

	ok, err := s.hasher.Compare(user.PasswordHash, plainPassword)
	if err != nil {
		return nil, internal(err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	return s.issue(user)
}

// BiometricLogin authenticates by exact biometric key match.
func (s *UserService) BiometricLogin(ctx context.Context, biometricKey string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByBiometricKey(ctx, biometricKey)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidBiometricKey
		}
		return nil, internal(err)
	}

	return s.issue(user)
}

// UpdateBiometricKey replaces the biometric key of userID, who must already
// be authenticated by the caller. A userID that is not a UUID matches no user.
func (s *UserService) UpdateBiometricKey(ctx context.Context, userID, newBiometricKey string) (*models.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, common.ErrorNotFound
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.UpdateBiometricKey(ctx, userID, newBiometricKey, s.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists):
			return nil, common.ErrDuplicateIdentity
		case errors.Is(err, common.ErrorNotFound):
			return nil, common.ErrorNotFound
		default:
			return nil, internal(fmt.Errorf("error updating biometric key: %w", err))
		}
	}
	return user, nil
}

// Authenticate resolves token to an existing user. Bad, expired or orphaned
// tokens yield common.ErrorUnauthorized, as do signed tokens whose userId is
// not a UUID.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.issuer.Validate(token)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, internal(err)
	}
	return user, nil
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.issuer.Mint(user.ID)
	if err != nil {
		return nil, internal(fmt.Errorf("error minting token: %w", err))
	}
	return &AuthResult{Token: token, User: user}, nil
}

// internal marks err as common.ErrorInternal while keeping the cause for logs.
func internal(err error) error {
	return fmt.Errorf("%w: %w", common.ErrorInternal, err)
}

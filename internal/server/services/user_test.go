package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/bioauth/internal/common"
	"github.com/dmitrijs2005/bioauth/internal/dbx"
	"github.com/dmitrijs2005/bioauth/internal/server/auth"
	"github.com/dmitrijs2005/bioauth/internal/server/config"
	"github.com/dmitrijs2005/bioauth/internal/server/models"
	usersrepo "github.com/dmitrijs2005/bioauth/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

const userID = "3f2b8c1e-6d4a-4e7b-9a1c-2d5e8f0b7a64"

func mint(t *testing.T, secret string, ttl time.Duration, id string) string {
	t.Helper()
	tok, err := auth.NewIssuer([]byte(secret), ttl).Mint(id)
	require.NoError(t, err)
	return tok
}

func newUserService(t *testing.T, u *fakeUsersRepo) *UserService {
	t.Helper()
	cfg := &config.Config{
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
		BcryptCost:                  10,
	}
	s := NewUserService(newSQLMockDB(t), &fakeRepoManager{u: u}, cfg)
	s.hasher = fakeHasher{}
	s.now = func() time.Time { return fixedNow }
	return s
}

type fakeUsersRepo struct {
	created *models.User
	createErr error

	getOut *models.User
	getErr error

	updateID   string
	updateKey  string
	updateAt   time.Time
	updateOut  *models.User
	updateErr  error
	lookupArgs []string
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = userID
	f.created = u
	return u, nil
}

func (f *fakeUsersRepo) get(arg string) (*models.User, error) {
	f.lookupArgs = append(f.lookupArgs, arg)
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return f.get(id)
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.get(email)
}

func (f *fakeUsersRepo) GetUserByBiometricKey(ctx context.Context, key string) (*models.User, error) {
	return f.get(key)
}

func (f *fakeUsersRepo) UpdateBiometricKey(ctx context.Context, id, key string, at time.Time) (*models.User, error) {
	f.updateID, f.updateKey, f.updateAt = id, key, at
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateOut, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }

type fakeHasher struct{}

func (fakeHasher) Hash(p string) (string, error) {
	if p == "explode" {
		return "", errors.New("hash failure")
	}
	return "hashed:" + p, nil
}

func (fakeHasher) Compare(hash, p string) (bool, error) {
	return hash == "hashed:"+p, nil
}

func strptr(s string) *string { return &s }

// --- Register ---

func TestRegister_Success(t *testing.T) {
	repo := &fakeUsersRepo{}
	s := newUserService(t, repo)

	res, err := s.Register(context.Background(), "  A@X.com ", "Str0ngP@ss", strptr("bioA"))
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", repo.created.Email)
	assert.Equal(t, "hashed:Str0ngP@ss", repo.created.PasswordHash)
	assert.Equal(t, "bioA", *repo.created.BiometricKey)
	assert.Equal(t, fixedNow, repo.created.CreatedAt)
	assert.Equal(t, fixedNow, repo.created.UpdatedAt)

	id, err := auth.NewIssuer([]byte("k"), time.Hour).Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, id)
	assert.Equal(t, userID, res.User.ID)
}

func TestRegister_Duplicate(t *testing.T) {
	s := newUserService(t, &fakeUsersRepo{createErr: common.ErrorAlreadyExists})

	_, err := s.Register(context.Background(), "a@x.com", "Str0ngP@ss", nil)
	assert.Equal(t, common.ErrDuplicateIdentity, err)
}

func TestRegister_StorageError(t *testing.T) {
	s := newUserService(t, &fakeUsersRepo{createErr: errors.New("db error: boom")})

	_, err := s.Register(context.Background(), "a@x.com", "Str0ngP@ss", nil)
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.NotErrorIs(t, err, common.ErrDuplicateIdentity)
}

func TestRegister_HashError(t *testing.T) {
	repo := &fakeUsersRepo{}
	s := newUserService(t, repo)

	_, err := s.Register(context.Background(), "a@x.com", "explode", nil)
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.Nil(t, repo.created, "nothing must be persisted")
}

// --- Login ---

func TestLogin_Success(t *testing.T) {
	repo := &fakeUsersRepo{getOut: &models.User{ID: "u-7", Email: "a@x.com", PasswordHash: "hashed:Str0ngP@ss"}}
	s := newUserService(t, repo)

	res, err := s.Login(context.Background(), "A@x.com", "Str0ngP@ss")
	require.NoError(t, err)
	assert.Equal(t, "u-7", res.User.ID)
	assert.Equal(t, []string{"a@x.com"}, repo.lookupArgs)
}

func TestLogin_UnknownEmailAndWrongPasswordAreIdentical(t *testing.T) {
	unknown := newUserService(t, &fakeUsersRepo{getErr: common.ErrorNotFound})
	_, errUnknown := unknown.Login(context.Background(), "nobody@x.com", "Str0ngP@ss")

	wrong := newUserService(t, &fakeUsersRepo{getOut: &models.User{ID: "u-7", PasswordHash: "hashed:Str0ngP@ss"}})
	_, errWrong := wrong.Login(context.Background(), "a@x.com", "nope")

	assert.Equal(t, common.ErrInvalidCredentials, errUnknown)
	assert.Equal(t, common.ErrInvalidCredentials, errWrong)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestLogin_StorageError(t *testing.T) {
	s := newUserService(t, &fakeUsersRepo{getErr: errors.New("db error: down")})

	_, err := s.Login(context.Background(), "a@x.com", "x")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

// --- BiometricLogin ---

func TestBiometricLogin(t *testing.T) {
	repo := &fakeUsersRepo{getOut: &models.User{ID: "u-9"}}
	s := newUserService(t, repo)

	res, err := s.BiometricLogin(context.Background(), "bioA")
	require.NoError(t, err)
	assert.Equal(t, "u-9", res.User.ID)
	assert.Equal(t, []string{"bioA"}, repo.lookupArgs)

	s = newUserService(t, &fakeUsersRepo{getErr: common.ErrorNotFound})
	_, err = s.BiometricLogin(context.Background(), "bioZ")
	assert.Equal(t, common.ErrInvalidBiometricKey, err)
}

// --- UpdateBiometricKey ---

func TestUpdateBiometricKey(t *testing.T) {
	repo := &fakeUsersRepo{updateOut: &models.User{ID: userID, BiometricKey: strptr("bioB")}}
	s := newUserService(t, repo)

	u, err := s.UpdateBiometricKey(context.Background(), userID, "bioB")
	require.NoError(t, err)
	assert.Equal(t, "bioB", *u.BiometricKey)
	assert.Equal(t, userID, repo.updateID)
	assert.Equal(t, "bioB", repo.updateKey)
	assert.Equal(t, fixedNow, repo.updateAt)
}

func TestUpdateBiometricKey_Errors(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		want    error
	}{
		{name: "duplicate", repoErr: common.ErrorAlreadyExists, want: common.ErrDuplicateIdentity},
		{name: "not found", repoErr: common.ErrorNotFound, want: common.ErrorNotFound},
		{name: "other", repoErr: errors.New("db error: x"), want: common.ErrorInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newUserService(t, &fakeUsersRepo{updateErr: tt.repoErr})
			_, err := s.UpdateBiometricKey(context.Background(), userID, "bioB")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdateBiometricKey_NonUUIDUserID(t *testing.T) {
	repo := &fakeUsersRepo{updateErr: errors.New("invalid input syntax for type uuid")}
	s := newUserService(t, repo)

	_, err := s.UpdateBiometricKey(context.Background(), "not-a-uuid", "bioB")
	assert.Equal(t, common.ErrorNotFound, err)
	assert.Empty(t, repo.updateID, "storage must not be queried")
}

// --- Authenticate ---

func TestAuthenticate(t *testing.T) {
	repo := &fakeUsersRepo{getOut: &models.User{ID: userID}}
	s := newUserService(t, repo)

	u, err := s.Authenticate(context.Background(), mint(t, "k", time.Hour, userID))
	require.NoError(t, err)
	assert.Equal(t, userID, u.ID)
	assert.Equal(t, []string{userID}, repo.lookupArgs)
}

func TestAuthenticate_NonUUIDSubject(t *testing.T) {
	repo := &fakeUsersRepo{getErr: errors.New("invalid input syntax for type uuid")}
	s := newUserService(t, repo)

	_, err := s.Authenticate(context.Background(), mint(t, "k", time.Hour, "not-a-uuid"))
	assert.Equal(t, common.ErrorUnauthorized, err)
	assert.Empty(t, repo.lookupArgs, "storage must not be queried")
}

func TestAuthenticate_Failures(t *testing.T) {
	good := mint(t, "k", time.Hour, userID)
	expired := mint(t, "k", -time.Minute, userID)
	foreign := mint(t, "other", time.Hour, userID)

	tests := []struct {
		name  string
		token string
		repo  *fakeUsersRepo
	}{
		{name: "malformed", token: "garbage", repo: &fakeUsersRepo{}},
		{name: "expired", token: expired, repo: &fakeUsersRepo{}},
		{name: "wrong secret", token: foreign, repo: &fakeUsersRepo{}},
		{name: "user vanished", token: good, repo: &fakeUsersRepo{getErr: common.ErrorNotFound}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newUserService(t, tt.repo)
			_, err := s.Authenticate(context.Background(), tt.token)
			assert.Equal(t, common.ErrorUnauthorized, err)
		})
	}
}

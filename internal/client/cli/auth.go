package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bioauth/internal/api"
	"github.com/dmitrijs2005/bioauth/internal/client/client"
	"github.com/dmitrijs2005/bioauth/internal/common"
)

// getSimpleText, getPassword and getBiometricKey are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getBiometricKey = GetBiometricKey

// Register prompts for an email, a password and an optional biometric key
// (empty input means none) and creates a new account. On success the
// session is opened with the returned token.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.writer())
	if err != nil {
		return err
	}

	password, err := getPassword(a.writer())
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	bio, err := getBiometricKey(a.writer())
	if err != nil {
		return err
	}
	defer common.WipeByteArray(bio)

	var key *string
	if len(bio) > 0 {
		k := string(bio)
		key = &k
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	user, err := a.client.Register(ctx, email, password, key)
	if err != nil {
		return err
	}

	a.setUser(user)
	printlnFn("Registered as", user.Email)
	return nil
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.writer())
	if err != nil {
		return err
	}

	password, err := getPassword(a.writer())
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	user, err := a.client.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.setUser(user)
	printlnFn("Logged in as", user.Email)
	return nil
}

// BiometricLogin prompts for a biometric key and opens a session.
func (a *App) BiometricLogin(ctx context.Context) error {
	bio, err := getBiometricKey(a.writer())
	if err != nil {
		return err
	}
	defer common.WipeByteArray(bio)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	user, err := a.client.BiometricLogin(ctx, string(bio))
	if err != nil {
		return err
	}

	a.setUser(user)
	printlnFn("Logged in as", user.Email)
	return nil
}

// SetBiometricKey replaces the biometric key of the logged-in user.
func (a *App) SetBiometricKey(ctx context.Context) error {
	if !a.isLoggedIn() {
		return client.ErrNotLoggedIn
	}

	bio, err := getBiometricKey(a.writer())
	if err != nil {
		return err
	}
	defer common.WipeByteArray(bio)

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	user, err := a.client.UpdateBiometricKey(ctx, string(bio))
	if err != nil {
		return err
	}

	a.setUser(user)
	printlnFn("Biometric key updated")
	return nil
}

// WhoAmI prints the identity of the current session.
func (a *App) WhoAmI(_ context.Context) error {
	if !a.isLoggedIn() || a.user == nil {
		return client.ErrNotLoggedIn
	}

	printlnFn(fmt.Sprintf("id: %s\nemail: %s\ncreated: %s", a.user.ID, a.user.Email, a.user.CreatedAt.Format("2006-01-02 15:04:05Z07:00")))
	return nil
}

// Logout drops the in-memory token and identity.
func (a *App) Logout(_ context.Context) error {
	if a.client != nil {
		a.client.Logout()
	}
	a.user = nil
	printlnFn("Logged out")
	return nil
}

func (a *App) setUser(u *api.User) {
	a.user = u
}

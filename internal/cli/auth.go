package cli

import (
	"context"
	"errors"

	"github.com/apotekhub/storefront/internal/api"
)

// Login prompts for credentials, exchanges them with the backend, and on
// success installs the session. Failures never clear an existing session.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	token, user, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			a.printf("Invalid email or password.")
			return nil
		}
		a.showError(ctx, err)
		return nil
	}

	if err := a.session.SetSession(ctx, token, user); err != nil {
		a.log.Error(ctx, "failed to persist session", "error", err)
		a.printf("Logged in, but the session could not be saved for next time.")
		return nil
	}
	a.printf("Welcome back, %s!", user.Name)
	return nil
}

// Register creates a buyer account. The password confirmation is checked
// locally first for a friendlier error; the backend enforces it anyway.
func (a *App) Register(ctx context.Context, _ []string) error {
	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	a.printf("Confirm your password.")
	confirm, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	if string(password) != string(confirm) {
		a.printf("Passwords do not match.")
		return nil
	}

	in := api.RegisterInput{
		Name:                 name,
		Email:                email,
		Password:             string(password),
		PasswordConfirmation: string(confirm),
	}
	if err := a.api.Register(ctx, in); err != nil {
		a.showError(ctx, err)
		return nil
	}

	a.printf("Account created. Log in to start shopping.")
	return a.Login(ctx, nil)
}

// Logout invalidates the credential server-side (best effort) and clears
// the local session either way.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if !a.isLoggedIn() {
		a.printf("You are not logged in.")
		return nil
	}

	if err := a.api.Logout(ctx); err != nil {
		a.log.Warn(ctx, "server-side logout failed", "error", err)
	}
	if err := a.session.Clear(ctx); err != nil {
		a.log.Error(ctx, "failed to clear session", "error", err)
	}
	a.cart = nil
	a.printf("Logged out.")
	return nil
}

package cli

import (
	"context"
	"errors"

	"github.com/hitenchhabria09/film-folio-pro/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for name, email and password and creates an account.
// A successful registration also logs the new user in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.session.Register(ctx, email, password, name); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return errors.New("an account with this email already exists")
		}
		return err
	}

	a.printf("Welcome, %s!\n", a.displayName())
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			return errors.New("invalid email or password")
		}
		return err
	}

	a.printf("Welcome back, %s!\n", a.displayName())
	return nil
}

// Logout ends the session. The session is cleared even if the stored
// token could not be removed.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.println("You are not logged in.")
		return nil
	}
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}

// WhoAmI prints the current profile.
func (a *App) WhoAmI(ctx context.Context) error {
	p, ok := a.session.Current()
	if !ok {
		a.println("Not logged in.")
		return nil
	}
	a.printf("%s <%s>\n  id: %s\n  favorites: %d\n", p.Name, p.Email, p.ID, len(p.Favorites))
	return nil
}

func (a *App) displayName() string {
	p, ok := a.session.Current()
	if !ok {
		return ""
	}
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}

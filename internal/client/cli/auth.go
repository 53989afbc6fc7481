package cli

import (
	"context"

	"github.com/dmitrijs2005/tapcard/internal/client/models"
	"github.com/dmitrijs2005/tapcard/internal/client/validate"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for username, email and password, creates the account and
// signs in with it.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
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
	defer wipe(password)

	creds := models.Credentials{Username: username, Email: email, Password: string(password)}
	if err := validate.Struct(creds); err != nil {
		return err
	}

	if err := a.session.Register(ctx, creds); err != nil {
		return err
	}
	a.println("Account created.")
	a.ToHome(ctx)
	return nil
}

// Login prompts for email and password and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	if err := validate.Field("email", email, "required"); err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)
	if err := validate.Field("password", string(password), "required"); err != nil {
		return err
	}

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		return err
	}
	a.ToHome(ctx)
	return nil
}

// Logout ends the session. The session calls back into ToLogin.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	return nil
}

// WhoAmI prints the signed-in account.
func (a *App) WhoAmI(ctx context.Context) error {
	snap := a.session.Snapshot()
	if snap.Email == "" {
		a.printf("signed in (%s)\n", snap.State)
		return nil
	}
	a.printf("%s (%s)\n", snap.Email, snap.State)
	return nil
}

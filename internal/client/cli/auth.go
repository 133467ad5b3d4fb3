package cli

import (
	"context"
	"errors"
	"fmt"
)

var errPasswordMismatch = errors.New("passwords do not match")

func (a *App) SignUp(ctx context.Context, _ []string) error {
	email, err := a.prompt.Ask("Email")
	if err != nil {
		return err
	}
	name, err := a.prompt.Ask("Your name")
	if err != nil {
		return err
	}
	password, err := a.prompt.Password("Password")
	if err != nil {
		return err
	}
	confirm, err := a.prompt.Password("Repeat password")
	if err != nil {
		return err
	}
	if password != confirm {
		return errPasswordMismatch
	}

	sess, err := a.sessions.SignUp(ctx, email, password, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Account created for %s. We sent you a verification link.\n", sess.Email)
	return nil
}

func (a *App) SignIn(ctx context.Context, _ []string) error {
	email, err := a.prompt.Ask("Email")
	if err != nil {
		return err
	}
	password, err := a.prompt.Password("Password")
	if err != nil {
		return err
	}

	sess, err := a.sessions.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", sess.Email)
	return nil
}

func (a *App) SignOut(ctx context.Context, _ []string) error {
	if err := a.sessions.SignOut(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

package cli

import (
	"context"
	"fmt"
)

// CheckVerified reloads the session right away instead of waiting for the
// next poll.
func (a *App) CheckVerified(ctx context.Context, _ []string) error {
	sess, err := a.sessions.Reload(ctx)
	if err != nil {
		return err
	}
	if !sess.EmailVerified {
		fmt.Fprintf(a.out, "%s is not verified yet. Open the link we emailed you.\n", sess.Email)
	}
	return nil
}

func (a *App) ResendVerification(ctx context.Context, _ []string) error {
	if err := a.verification.Resend(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Verification email sent. You can resend in %d seconds.\n", a.verification.Gate().Seconds())
	return nil
}

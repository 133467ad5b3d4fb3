package cli

import (
	"context"
	"fmt"

	"github.com/couplediaries/couplediaries/internal/client/navigation"
	"github.com/couplediaries/couplediaries/internal/client/services"
)

// currentWizard returns the wizard of the signed-in user, starting one if
// needed.
func (a *App) currentWizard() (wizard, string) {
	sess := a.sessions.Current()
	userID := ""
	if sess != nil {
		userID = sess.UserID
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.wizard == nil || a.wizardUser != userID {
		a.wizard = a.newWizard()
		a.wizardUser = userID
	}
	return a.wizard, userID
}

// Setup walks the wizard from its current step to the end. A failed step
// is reported and can be retried with another "setup".
func (a *App) Setup(ctx context.Context, _ []string) error {
	w, userID := a.currentWizard()

	for {
		switch w.Step() {
		case services.StepAboutYou:
			fmt.Fprintln(a.out, "Step 1 of 3: about you")
			in, err := a.askAboutYou()
			if err != nil {
				return err
			}
			if err := w.SubmitAboutYou(in); err != nil {
				return err
			}

		case services.StepPartner:
			fmt.Fprintln(a.out, "Step 2 of 3: your partner")
			in, err := a.askPartner()
			if err != nil {
				return err
			}
			p, err := w.SubmitPartner(ctx, in)
			if err != nil {
				return err
			}
			a.store.SetProfile(*p)

		case services.StepDone:
			fmt.Fprintln(a.out, "Step 3 of 3: all set")
			ok, err := a.prompt.Confirm("Start using Couple Diaries?")
			if err != nil || !ok {
				return err
			}
			p, err := w.Complete(ctx)
			if err != nil {
				return err
			}
			a.store.SetProfile(*p)
			a.guard.RecordSetup(userID, true)
			a.guard.Evaluate(ctx, navigation.Inputs{
				UserID:  userID,
				Session: navigation.SessionStateOf(a.sessions.Current()),
				Setup:   navigation.SetupTrue,
			})
			return nil
		}
	}
}

func (a *App) askAboutYou() (services.AboutYou, error) {
	var in services.AboutYou
	var err error
	if in.Name, err = a.prompt.Ask("Your name"); err != nil {
		return in, err
	}
	if in.Age, err = a.prompt.Ask("Your age"); err != nil {
		return in, err
	}
	if in.Gender, err = a.prompt.Ask("Gender (optional)"); err != nil {
		return in, err
	}
	if in.ImagePath, err = a.prompt.Ask("Profile picture file (optional)"); err != nil {
		return in, err
	}
	return in, nil
}

func (a *App) askPartner() (services.Partner, error) {
	var in services.Partner
	var err error
	if in.Name, err = a.prompt.Ask("Partner's name"); err != nil {
		return in, err
	}
	if in.Email, err = a.prompt.Ask("Partner's email (optional)"); err != nil {
		return in, err
	}
	if in.Date, err = a.prompt.Ask("When did you start dating? (YYYY-MM-DD)"); err != nil {
		return in, err
	}
	return in, nil
}

func (a *App) WizardBack(context.Context, []string) error {
	w, _ := a.currentWizard()
	fmt.Fprintf(a.out, "Back on step %d of 3\n", w.Back())
	return nil
}

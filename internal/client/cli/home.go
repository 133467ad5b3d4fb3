package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/couplediaries/couplediaries/internal/client/models"
	"github.com/couplediaries/couplediaries/internal/client/services"
	"github.com/couplediaries/couplediaries/internal/client/store"
)

var errUsage = errors.New("missing argument, see 'help'")

func (a *App) ShowHome(ctx context.Context, _ []string) error {
	st := a.store.Snapshot()
	cd := st.Countdown
	if cd.Next.IsZero() {
		cd = a.ticker.Tick()
	}

	if st.Profile.PartnerName != "" {
		fmt.Fprintf(a.out, "%s & %s\n", st.Profile.Name, st.Profile.PartnerName)
	}
	fmt.Fprintf(a.out, "%d days %d hours %d minutes until your anniversary on %s\n",
		cd.Days, cd.Hours, cd.Minutes, cd.Next.Format("January 2"))
	if cd.Years > 0 {
		fmt.Fprintf(a.out, "Together for %d years\n", cd.Years)
	}
	if cd.Fallback {
		fmt.Fprintln(a.out, "(no valid start date saved, showing the default; use 'edit date YYYY-MM-DD')")
	}
	return nil
}

func (a *App) SwitchTab(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	c, ok := store.ParseContent(args[0])
	if !ok {
		return fmt.Errorf("unknown tab %q", args[0])
	}
	a.store.SetContent(c)

	switch c {
	case store.ContentCards:
		return a.ListCards(ctx, nil)
	case store.ContentChat:
		return a.ListMessages(ctx, nil)
	case store.ContentProfile:
		return a.ShowProfile(ctx, nil)
	default:
		return a.ShowHome(ctx, nil)
	}
}

func (a *App) ListCards(context.Context, []string) error {
	cards := a.store.Snapshot().Cards
	if len(cards) == 0 {
		fmt.Fprintln(a.out, "No cards yet. Add one with 'addcard'.")
		return nil
	}
	for _, c := range cards {
		line := fmt.Sprintf("#%s  %s  mood: %s", c.ID, c.Date, c.Mood)
		if c.Location != "" {
			line += "  at " + c.Location
		}
		if c.Temperature != "" {
			line += "  " + c.Temperature
		}
		if c.Photo != "" {
			line += "  photo: " + strings.TrimPrefix(c.Photo, models.AssetPrefix)
		}
		if c.Pending {
			line += "  (not synced)"
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

// notAvailable is printed for card fields left blank.
const notAvailable = "N/A"

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

// cardPhoto names the image a card shows: a bundled asset, a stored file,
// or the default photo when the card has none or its file is gone.
func cardPhoto(c models.Card) string {
	switch {
	case c.Photo == "":
	case c.IsAssetPhoto():
		return strings.TrimPrefix(c.Photo, models.AssetPrefix)
	default:
		if _, err := os.Stat(c.Photo); err == nil {
			return c.Photo
		}
	}
	return strings.TrimPrefix(models.DefaultPhoto, models.AssetPrefix) + " (default)"
}

// ShowCard prints one card from the current list.
func (a *App) ShowCard(_ context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	id := strings.TrimPrefix(args[0], "#")
	for _, c := range a.store.Snapshot().Cards {
		if c.ID != id {
			continue
		}
		fmt.Fprintf(a.out, "Card #%s\n", c.ID)
		fmt.Fprintf(a.out, "  Date:        %s\n", orNA(c.Date))
		fmt.Fprintf(a.out, "  Mood:        %s\n", orNA(c.Mood))
		fmt.Fprintf(a.out, "  Location:    %s\n", orNA(c.Location))
		fmt.Fprintf(a.out, "  Temperature: %s\n", orNA(c.Temperature))
		fmt.Fprintf(a.out, "  Photo:       %s\n", cardPhoto(c))
		if c.Pending {
			fmt.Fprintln(a.out, "  (not synced)")
		}
		return nil
	}
	return fmt.Errorf("no card #%s", id)
}

func (a *App) AddCard(ctx context.Context, _ []string) error {
	var in services.NewCard
	var err error
	if in.Mood, err = a.prompt.AskDefault("Mood", services.DefaultMood); err != nil {
		return err
	}
	if in.Location, err = a.prompt.Ask("Location"); err != nil {
		return err
	}
	if in.Temperature, err = a.prompt.Ask("Temperature (empty to look it up)"); err != nil {
		return err
	}
	if in.Temperature == "" && in.Location != "" && a.weather.Enabled() {
		t, err := a.weather.Temperature(ctx, in.Location)
		if err != nil {
			a.alert("Could not look up the temperature", err)
		} else {
			in.Temperature = t
		}
	}
	if in.Photo, err = a.prompt.Ask("Photo file or asset:<name> (optional)"); err != nil {
		return err
	}

	c, err := a.cards.Create(ctx, in)
	if err != nil && c.ID == "" {
		return err
	}
	if err != nil {
		a.alert("Card saved on this device, it will sync later", err)
		return nil
	}
	fmt.Fprintf(a.out, "Card #%s added\n", c.ID)
	return nil
}

func (a *App) SyncCards(ctx context.Context, _ []string) error {
	cards, err := a.cards.Sync(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d cards in sync\n", len(cards))
	return nil
}

func (a *App) SendMessage(ctx context.Context, args []string) error {
	m, ok := a.store.AppendMessage(strings.Join(args, " "))
	if !ok {
		return errUsage
	}
	a.logger.Debug(ctx, "message to partner", "id", m.ID)
	fmt.Fprintln(a.out, "Sent")
	return nil
}

func (a *App) ListMessages(context.Context, []string) error {
	msgs := a.store.Snapshot().Messages
	if len(msgs) == 0 {
		fmt.Fprintln(a.out, "No messages yet. Say hi with 'send <message>'.")
		return nil
	}
	for _, m := range msgs {
		fmt.Fprintf(a.out, "> %s\n", m.Text)
	}
	return nil
}

func (a *App) Weather(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	t, err := a.weather.Temperature(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, t)
	return nil
}

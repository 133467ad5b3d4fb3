package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/couplediaries/couplediaries/internal/client/client"
	"github.com/couplediaries/couplediaries/internal/client/config"
	"github.com/couplediaries/couplediaries/internal/client/countdown"
	"github.com/couplediaries/couplediaries/internal/client/localdb"
	"github.com/couplediaries/couplediaries/internal/client/models"
	"github.com/couplediaries/couplediaries/internal/client/navigation"
	"github.com/couplediaries/couplediaries/internal/client/services"
	"github.com/couplediaries/couplediaries/internal/client/store"
	"github.com/couplediaries/couplediaries/internal/client/weather"
	"github.com/couplediaries/couplediaries/internal/filex"
	"github.com/couplediaries/couplediaries/internal/logging"
	"github.com/couplediaries/couplediaries/internal/netx"
)

type sessionService interface {
	Current() *models.Session
	Subscribe(fn func(*models.Session)) func()
	Restore(ctx context.Context) (*models.Session, error)
	SignUp(ctx context.Context, email, password, displayName string) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context) error
	Reload(ctx context.Context) (*models.Session, error)
	Ping(ctx context.Context) error
}

type verificationService interface {
	Poll(ctx context.Context) error
	Resend(ctx context.Context) error
	Gate() *services.ResendGate
}

type cardService interface {
	Create(ctx context.Context, in services.NewCard) (models.Card, error)
	Load(ctx context.Context) ([]models.Card, error)
	Sync(ctx context.Context) ([]models.Card, error)
}

type profileAPI interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
	MergeProfile(ctx context.Context, fields map[string]any) (*models.Profile, error)
	ReadProfileFields(ctx context.Context, names ...string) (map[string]any, error)
	GetSetupStatus(ctx context.Context) (bool, error)
}

type wizard interface {
	Step() services.WizardStep
	Back() services.WizardStep
	SubmitAboutYou(in services.AboutYou) error
	SubmitPartner(ctx context.Context, in services.Partner) (*models.Profile, error)
	Complete(ctx context.Context) (*models.Profile, error)
}

type weatherLookup interface {
	Enabled() bool
	Temperature(ctx context.Context, city string) (string, error)
}

// App is the interactive client. It implements navigation.Navigator: the
// guard calls Navigate to switch the REPL to another command set.
type App struct {
	cfg *config.Config

	sessions     sessionService
	verification verificationService
	cards        cardService
	profiles     profileAPI
	newWizard    func() wizard
	weather      weatherLookup
	store        *store.Store
	guard        *navigation.Guard
	ticker       *countdown.Ticker
	logger       logging.Logger

	closers []io.Closer

	prompt *prompter
	out    io.Writer

	mu         sync.Mutex
	ctx        context.Context
	group      navigation.Group
	stopPoll   context.CancelFunc
	wizard     wizard
	wizardUser string
}

// NewApp wires the client: local database, gRPC client, services, store,
// guard and countdown.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogFormat, c.LogLevel)

	if _, err := filex.EnsureDir(c.DataDir, ""); err != nil {
		return nil, err
	}

	db, err := localdb.Open(ctx, c.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("open local database: %w", err)
	}

	api, err := client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	st := store.New(nil)
	sessions := services.NewSessionService(api, db, logger)
	uploader := netx.NewUploader(c.RequestTimeout)

	a := &App{
		cfg:          c,
		sessions:     sessions,
		verification: services.NewVerificationService(sessions, c.VerificationPollInterval, nil, logger),
		cards:        services.NewCardService(api, db, st, c.PhotosDir(), nil, logger),
		profiles:     api,
		newWizard:    func() wizard { return services.NewWizard(api, uploader, logger) },
		weather:      weather.New(c.WeatherBaseURL, c.WeatherAPIKey, c.RequestTimeout),
		store:        st,
		logger:       logger.With("module", "cli"),
		closers:      []io.Closer{api, db},
		prompt:       &prompter{in: bufio.NewReader(os.Stdin), out: os.Stdout},
		out:          os.Stdout,
	}
	a.wire(c, logger)
	return a, nil
}

// wire builds the guard and the countdown ticker on top of a's services.
func (a *App) wire(c *config.Config, logger logging.Logger) {
	a.guard = navigation.NewGuard(a, a.lookupSetup, c.GuardCooldown, nil, logger)
	a.ticker = countdown.NewTicker(c.CountdownInterval, nil,
		func() string { return a.store.Snapshot().Profile.Date },
		a.store.SetCountdown)
}

func (a *App) lookupSetup(ctx context.Context, _ string) (bool, error) {
	return a.profiles.GetSetupStatus(ctx)
}

// Run restores the saved session and runs the REPL until the user quits or
// ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.close()

	a.mu.Lock()
	a.ctx = ctx
	a.mu.Unlock()

	unsubscribe := a.sessions.Subscribe(func(sess *models.Session) {
		a.onSession(ctx, sess)
	})
	defer unsubscribe()

	go a.ticker.Run(ctx)

	fmt.Fprintln(a.out, "Welcome to Couple Diaries (type 'help' for commands)")

	if err := a.sessions.Ping(ctx); err != nil {
		a.alert("Server is not reachable", err)
	}
	sess, err := a.sessions.Restore(ctx)
	if err != nil {
		a.alert("Could not restore your session", err)
	}
	a.onSession(ctx, sess)

	runREPL(ctx, a, a.out, a.prompt.in)

	a.guard.Wait()
	return nil
}

func (a *App) close() {
	a.mu.Lock()
	if a.stopPoll != nil {
		a.stopPoll()
		a.stopPoll = nil
	}
	a.mu.Unlock()

	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn(context.Background(), "close", "error", err)
		}
	}
}

// onSession feeds a session change to the guard.
func (a *App) onSession(ctx context.Context, sess *models.Session) {
	in := navigation.Inputs{Session: navigation.SessionStateOf(sess)}
	if sess != nil {
		in.UserID = sess.UserID
		a.store.SetSession(*sess)
	} else {
		a.store.Reset()
	}
	a.guard.Evaluate(ctx, in)
}

// Group is the screen group currently shown.
func (a *App) Group() navigation.Group {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.group
}

// Navigate switches the REPL to g and starts whatever the new screen runs
// in the background.
func (a *App) Navigate(ctx context.Context, g navigation.Group) {
	a.mu.Lock()
	a.group = g
	if a.stopPoll != nil {
		a.stopPoll()
		a.stopPoll = nil
	}
	if g != navigation.Onboarding {
		a.wizard = nil
	}
	root := a.ctx
	if root == nil {
		root = ctx
	}
	a.mu.Unlock()

	fmt.Fprintf(a.out, "\n== %s ==\n", screenTitle(g))
	printHelp(a.out, g)

	switch g {
	case navigation.EmailVerification:
		a.startPolling(root)
	case navigation.Home:
		go a.enterHome(root)
	}
}

func (a *App) startPolling(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	a.mu.Lock()
	a.stopPoll = cancel
	a.mu.Unlock()

	go func() {
		defer cancel()
		if err := a.verification.Poll(ctx); err != nil && ctx.Err() == nil {
			a.logger.Warn(ctx, "verification polling stopped", "error", err)
		}
	}()
}

// enterHome loads the profile and cards for the home screen.
func (a *App) enterHome(ctx context.Context) {
	if _, err := a.refreshProfile(ctx); err != nil {
		a.alert("Could not load your profile", err)
	}
	if _, err := a.cards.Load(ctx); err != nil {
		a.alert("Could not load saved cards", err)
	}
	if _, err := a.cards.Sync(ctx); err != nil {
		a.logger.Warn(ctx, "card sync failed", "error", err)
	}
}

func (a *App) refreshProfile(ctx context.Context) (*models.Profile, error) {
	p, err := a.profiles.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	a.store.SetProfile(*p)
	a.guard.RecordSetup(p.UserID, p.SetupCompleted)
	return p, nil
}

// alert reports a failed action to the user.
func (a *App) alert(title string, err error) {
	fmt.Fprintf(a.out, "! %s: %v\n", title, err)
}

func (a *App) status() string {
	sess := a.sessions.Current()
	if sess == nil {
		return a.Group().String()
	}
	return a.Group().String() + " " + sess.Email
}

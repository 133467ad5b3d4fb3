package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/couplediaries/couplediaries/internal/client/config"
	"github.com/couplediaries/couplediaries/internal/client/models"
	"github.com/couplediaries/couplediaries/internal/client/navigation"
	"github.com/couplediaries/couplediaries/internal/client/services"
	"github.com/couplediaries/couplediaries/internal/client/store"
	"github.com/couplediaries/couplediaries/internal/logging"
)

type fakeSessions struct {
	mu      sync.Mutex
	current *models.Session

	signInEmail, signInPassword string
	signUpName                  string
	authErr                     error
	signOuts                    int
	reloadRet                   *models.Session
}

func (f *fakeSessions) Current() *models.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current == nil {
		return nil
	}
	c := *f.current
	return &c
}

func (f *fakeSessions) Subscribe(fn func(*models.Session)) func() { return func() {} }

func (f *fakeSessions) Restore(ctx context.Context) (*models.Session, error) { return f.Current(), nil }

func (f *fakeSessions) SignUp(ctx context.Context, email, password, name string) (*models.Session, error) {
	f.signUpName = name
	return f.SignIn(ctx, email, password)
}

func (f *fakeSessions) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	f.signInEmail, f.signInPassword = email, password
	if f.authErr != nil {
		return nil, f.authErr
	}
	f.mu.Lock()
	f.current = &models.Session{UserID: "u1", Email: email}
	f.mu.Unlock()
	return f.Current(), nil
}

func (f *fakeSessions) SignOut(ctx context.Context) error {
	f.mu.Lock()
	f.current = nil
	f.signOuts++
	f.mu.Unlock()
	return nil
}

func (f *fakeSessions) Reload(ctx context.Context) (*models.Session, error) {
	if f.reloadRet != nil {
		return f.reloadRet, nil
	}
	return f.Current(), nil
}

func (f *fakeSessions) Ping(ctx context.Context) error { return nil }

type fakeVerification struct {
	gate    *services.ResendGate
	resends int

	mu        sync.Mutex
	polling   bool
	cancelled bool
}

func (f *fakeVerification) Poll(ctx context.Context) error {
	f.mu.Lock()
	f.polling = true
	f.mu.Unlock()

	<-ctx.Done()

	f.mu.Lock()
	f.polling = false
	f.cancelled = true
	f.mu.Unlock()
	return ctx.Err()
}

func (f *fakeVerification) state() (polling, cancelled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.polling, f.cancelled
}

func (f *fakeVerification) Resend(ctx context.Context) error {
	f.resends++
	f.gate.MarkSent()
	return nil
}

func (f *fakeVerification) Gate() *services.ResendGate { return f.gate }

type fakeCards struct {
	mu        sync.Mutex
	createErr error
	created   []services.NewCard
	loads     int
	syncs     int
	st        *store.Store
}

func (f *fakeCards) Create(ctx context.Context, in services.NewCard) (models.Card, error) {
	f.mu.Lock()
	f.created = append(f.created, in)
	err := f.createErr
	f.mu.Unlock()
	if err != nil {
		return models.Card{}, err
	}
	return f.st.AppendCard(models.Card{Mood: in.Mood, Location: in.Location, Temperature: in.Temperature}), nil
}

func (f *fakeCards) Load(ctx context.Context) ([]models.Card, error) {
	f.mu.Lock()
	f.loads++
	f.mu.Unlock()
	return nil, nil
}

func (f *fakeCards) Sync(ctx context.Context) ([]models.Card, error) {
	f.mu.Lock()
	f.syncs++
	f.mu.Unlock()
	return f.st.Snapshot().Cards, nil
}

func (f *fakeCards) counts() (loads, syncs int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads, f.syncs
}

// fakeProfiles serves both the cli profile calls and the wizard.
type fakeProfiles struct {
	mu      sync.Mutex
	profile models.Profile
	merged  []map[string]any
	fields  map[string]any
	setup   bool
}

func (f *fakeProfiles) GetProfile(ctx context.Context) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.profile
	return &p, nil
}

func (f *fakeProfiles) MergeProfile(ctx context.Context, fields map[string]any) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.merged = append(f.merged, fields)
	if v, ok := fields["name"].(string); ok {
		f.profile.Name = v
	}
	if v, ok := fields["date"].(string); ok {
		f.profile.Date = v
	}
	if v, ok := fields["partner_name"].(string); ok {
		f.profile.PartnerName = v
	}
	p := f.profile
	return &p, nil
}

func (f *fakeProfiles) ReadProfileFields(ctx context.Context, names ...string) (map[string]any, error) {
	return f.fields, nil
}

func (f *fakeProfiles) GetSetupStatus(ctx context.Context) (bool, error) { return f.setup, nil }

func (f *fakeProfiles) CompleteSetup(ctx context.Context) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profile.SetupCompleted = true
	p := f.profile
	return &p, nil
}

func (f *fakeProfiles) ProfileImageUploadURL(ctx context.Context, contentType string) (string, string, error) {
	return "key", "http://upload.test", nil
}

func (f *fakeProfiles) ConfirmProfileImage(ctx context.Context, key string) (*models.Profile, error) {
	return f.GetProfile(ctx)
}

type nopUploader struct{}

func (nopUploader) Put(ctx context.Context, url string, body []byte, contentType string) error {
	return nil
}

type fakeWeather struct {
	enabled bool
	temp    string
}

func (f *fakeWeather) Enabled() bool { return f.enabled }

func (f *fakeWeather) Temperature(ctx context.Context, city string) (string, error) {
	return f.temp, nil
}

// syncBuffer is a bytes.Buffer safe for the background screen output.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type testApp struct {
	*App
	out      *syncBuffer
	sessions *fakeSessions
	verify   *fakeVerification
	cards    *fakeCards
	profiles *fakeProfiles
	weather  *fakeWeather
}

// enterOnboarding lets the guard route a verified user without setup to
// the onboarding screen.
func enterOnboarding(t *testing.T, a *testApp, userID string) {
	t.Helper()
	a.guard.Evaluate(context.Background(), navigation.Inputs{
		UserID:  userID,
		Session: navigation.SessionVerified,
		Setup:   navigation.SetupFalse,
	})
	a.guard.Wait()
	require.Equal(t, navigation.Onboarding, a.Group())
}

func newTestApp(t *testing.T, input ...string) *testApp {
	t.Helper()

	oldIsTerminal := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = oldIsTerminal })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	st := store.New(nil)
	out := &syncBuffer{}
	ta := &testApp{
		out:      out,
		sessions: &fakeSessions{},
		verify:   &fakeVerification{gate: services.NewResendGate(time.Minute, nil)},
		cards:    &fakeCards{st: st},
		profiles: &fakeProfiles{},
		weather:  &fakeWeather{},
	}

	in := strings.Join(input, "\n")
	if len(input) > 0 {
		in += "\n"
	}

	ta.App = &App{
		cfg:          cfg,
		sessions:     ta.sessions,
		verification: ta.verify,
		cards:        ta.cards,
		profiles:     ta.profiles,
		newWizard:    func() wizard { return services.NewWizard(ta.profiles, nopUploader{}, logging.Nop()) },
		weather:      ta.weather,
		store:        st,
		logger:       logging.Nop(),
		prompt:       &prompter{in: bufio.NewReader(strings.NewReader(in)), out: out},
		out:          out,
	}
	ta.App.wire(cfg, logging.Nop())
	return ta
}

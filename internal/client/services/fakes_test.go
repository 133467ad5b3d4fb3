package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/couplediaries/couplediaries/internal/client/localdb"
	"github.com/couplediaries/couplediaries/internal/client/models"
)

func openDB(t *testing.T) *localdb.DB {
	t.Helper()
	db, err := localdb.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeAPI implements client.Client for the service tests.
type fakeAPI struct {
	mu sync.Mutex

	access, refresh string
	onRefresh       func(access, refresh string)

	AuthRet    *models.AuthResult
	AuthErr    error
	SignOutErr error
	ResendErr  error
	ResendN    int

	ReloadRet []*models.Session
	ReloadErr []error
	ReloadN   int

	Merged         map[string]any
	MergeErr       error
	CompleteN      int
	CompleteErr    error
	UploadKey      string
	UploadURL      string
	UploadType     string
	UploadURLErr   error
	ConfirmedKey   string
	ConfirmErr     error
	SignUpName     string
	LastSignInMail string

	Created   []models.Card
	CreateErr error
	Remote    []models.Card
	ListErr   error
}

func (f *fakeAPI) Close() error                   { return nil }
func (f *fakeAPI) Ping(ctx context.Context) error { return nil }

func (f *fakeAPI) SetTokens(access, refresh string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.access, f.refresh = access, refresh
}

func (f *fakeAPI) Tokens() (string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.access, f.refresh
}

func (f *fakeAPI) OnTokensRefreshed(fn func(access, refresh string)) { f.onRefresh = fn }

func (f *fakeAPI) SignUp(ctx context.Context, email, password, displayName string) (*models.AuthResult, error) {
	f.SignUpName = displayName
	return f.AuthRet, f.AuthErr
}

func (f *fakeAPI) SignIn(ctx context.Context, email, password string) (*models.AuthResult, error) {
	f.LastSignInMail = email
	return f.AuthRet, f.AuthErr
}

func (f *fakeAPI) SignOut(ctx context.Context) error {
	f.SetTokens("", "")
	return f.SignOutErr
}

func (f *fakeAPI) SendVerificationEmail(ctx context.Context) error {
	f.ResendN++
	return f.ResendErr
}

func (f *fakeAPI) ReloadSession(ctx context.Context) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.ReloadN
	f.ReloadN++
	var sess *models.Session
	var err error
	if i < len(f.ReloadRet) {
		sess = f.ReloadRet[i]
	} else if len(f.ReloadRet) > 0 {
		sess = f.ReloadRet[len(f.ReloadRet)-1]
	}
	if i < len(f.ReloadErr) {
		err = f.ReloadErr[i]
	}
	return sess, err
}

func (f *fakeAPI) GetProfile(ctx context.Context) (*models.Profile, error) {
	return &models.Profile{}, nil
}

func (f *fakeAPI) MergeProfile(ctx context.Context, fields map[string]any) (*models.Profile, error) {
	if f.MergeErr != nil {
		return nil, f.MergeErr
	}
	f.Merged = fields
	name, _ := fields["name"].(string)
	return &models.Profile{UserID: "u1", Name: name}, nil
}

func (f *fakeAPI) ReadProfileFields(ctx context.Context, names ...string) (map[string]any, error) {
	return map[string]any{}, nil
}

func (f *fakeAPI) CompleteSetup(ctx context.Context) (*models.Profile, error) {
	f.CompleteN++
	if f.CompleteErr != nil {
		return nil, f.CompleteErr
	}
	return &models.Profile{UserID: "u1", SetupCompleted: true}, nil
}

func (f *fakeAPI) GetSetupStatus(ctx context.Context) (bool, error) { return false, nil }

func (f *fakeAPI) ProfileImageUploadURL(ctx context.Context, contentType string) (string, string, error) {
	f.UploadType = contentType
	return f.UploadKey, f.UploadURL, f.UploadURLErr
}

func (f *fakeAPI) ConfirmProfileImage(ctx context.Context, key string) (*models.Profile, error) {
	f.ConfirmedKey = key
	return &models.Profile{}, f.ConfirmErr
}

func (f *fakeAPI) CreateCard(ctx context.Context, card models.Card) (*models.Card, error) {
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.Created = append(f.Created, card)
	return &card, nil
}

func (f *fakeAPI) ListCards(ctx context.Context) ([]models.Card, error) {
	return f.Remote, f.ListErr
}

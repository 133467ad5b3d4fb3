package grpc

import (
	"context"

	"github.com/couplediaries/couplediaries/internal/server/models"
	"github.com/couplediaries/couplediaries/internal/server/services"
)

type fakeUsers struct {
	signUpResp *services.AuthResult
	signInResp *services.AuthResult
	tokens     *services.TokenPair
	user       *models.User
	err        error

	gotEmail        string
	gotPassword     string
	gotDisplayName  string
	gotToken        string
	gotUserID       string
	signOutCalls    int
	verifyCalls     int
	resendCalls     int
	reloadCalls     int
	refreshRequests []string
}

func (f *fakeUsers) SignUp(ctx context.Context, email, password, displayName string) (*services.AuthResult, error) {
	f.gotEmail, f.gotPassword, f.gotDisplayName = email, password, displayName
	return f.signUpResp, f.err
}

func (f *fakeUsers) SignIn(ctx context.Context, email, password string) (*services.AuthResult, error) {
	f.gotEmail, f.gotPassword = email, password
	return f.signInResp, f.err
}

func (f *fakeUsers) SignOut(ctx context.Context, refreshToken string) error {
	f.signOutCalls++
	f.gotToken = refreshToken
	return f.err
}

func (f *fakeUsers) RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	f.refreshRequests = append(f.refreshRequests, refreshToken)
	return f.tokens, f.err
}

func (f *fakeUsers) SendVerificationEmail(ctx context.Context, userID string) error {
	f.resendCalls++
	f.gotUserID = userID
	return f.err
}

func (f *fakeUsers) VerifyEmail(ctx context.Context, token string) error {
	f.verifyCalls++
	f.gotToken = token
	return f.err
}

func (f *fakeUsers) ReloadSession(ctx context.Context, userID string) (*models.User, error) {
	f.reloadCalls++
	f.gotUserID = userID
	return f.user, f.err
}

type fakeProfiles struct {
	view      *services.ProfileView
	fields    map[string]any
	completed bool
	key, url  string
	err       error

	gotUserID      string
	gotFields      map[string]any
	gotNames       []string
	gotContentType string
	gotKey         string
}

func (f *fakeProfiles) Get(ctx context.Context, userID string) (*services.ProfileView, error) {
	f.gotUserID = userID
	return f.view, f.err
}

func (f *fakeProfiles) Merge(ctx context.Context, userID string, fields map[string]any) (*services.ProfileView, error) {
	f.gotUserID, f.gotFields = userID, fields
	return f.view, f.err
}

func (f *fakeProfiles) ReadFields(ctx context.Context, userID string, names []string) (map[string]any, error) {
	f.gotUserID, f.gotNames = userID, names
	return f.fields, f.err
}

func (f *fakeProfiles) CompleteSetup(ctx context.Context, userID string) (*services.ProfileView, error) {
	f.gotUserID = userID
	return f.view, f.err
}

func (f *fakeProfiles) SetupStatus(ctx context.Context, userID string) (bool, error) {
	f.gotUserID = userID
	return f.completed, f.err
}

func (f *fakeProfiles) ImageUploadURL(ctx context.Context, userID, contentType string) (string, string, error) {
	f.gotUserID, f.gotContentType = userID, contentType
	return f.key, f.url, f.err
}

func (f *fakeProfiles) ConfirmImage(ctx context.Context, userID, key string) (*services.ProfileView, error) {
	f.gotUserID, f.gotKey = userID, key
	return f.view, f.err
}

type fakeCards struct {
	list []*models.Card
	err  error

	gotUserID string
	gotCard   *models.Card
}

func (f *fakeCards) Create(ctx context.Context, userID string, card *models.Card) (*models.Card, error) {
	f.gotUserID, f.gotCard = userID, card
	if f.err != nil {
		return nil, f.err
	}
	out := *card
	out.UserID = userID
	if out.ID == "" {
		out.ID = "generated"
	}
	f.list = append(f.list, &out)
	return &out, nil
}

func (f *fakeCards) List(ctx context.Context, userID string) ([]*models.Card, error) {
	f.gotUserID = userID
	return f.list, f.err
}

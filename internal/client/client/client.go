package client

import (
	"context"

	"github.com/couplediaries/couplediaries/internal/client/models"
)

// Client is the backend API as seen by the client components.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	// SetTokens installs a token pair, e.g. one restored from disk.
	SetTokens(accessToken, refreshToken string)
	Tokens() (accessToken, refreshToken string)
	// OnTokensRefreshed registers fn to be called after a transparent refresh.
	OnTokensRefreshed(fn func(accessToken, refreshToken string))

	SignUp(ctx context.Context, email, password, displayName string) (*models.AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*models.AuthResult, error)
	SignOut(ctx context.Context) error
	SendVerificationEmail(ctx context.Context) error
	ReloadSession(ctx context.Context) (*models.Session, error)

	GetProfile(ctx context.Context) (*models.Profile, error)
	MergeProfile(ctx context.Context, fields map[string]any) (*models.Profile, error)
	ReadProfileFields(ctx context.Context, names ...string) (map[string]any, error)
	CompleteSetup(ctx context.Context) (*models.Profile, error)
	GetSetupStatus(ctx context.Context) (bool, error)
	ProfileImageUploadURL(ctx context.Context, contentType string) (key, url string, err error)
	ConfirmProfileImage(ctx context.Context, key string) (*models.Profile, error)

	CreateCard(ctx context.Context, card models.Card) (*models.Card, error)
	ListCards(ctx context.Context) ([]models.Card, error)
}

// Package services contains server-side business logic: the auth provider
// (UserService), the profile document store (ProfileService), the card store
// (CardService) and presigned blob storage.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/couplediaries/couplediaries/internal/common"
	"github.com/couplediaries/couplediaries/internal/cryptox"
	"github.com/couplediaries/couplediaries/internal/dbx"
	"github.com/couplediaries/couplediaries/internal/logging"
	"github.com/couplediaries/couplediaries/internal/server/auth"
	"github.com/couplediaries/couplediaries/internal/server/config"
	"github.com/couplediaries/couplediaries/internal/server/mailer"
	"github.com/couplediaries/couplediaries/internal/server/models"
	"github.com/couplediaries/couplediaries/internal/server/repositories/profiles"
	"github.com/couplediaries/couplediaries/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthResult is returned by SignUp and SignIn.
type AuthResult struct {
	User   *models.User
	Tokens *TokenPair
}

// UserService is the authentication provider: accounts, sessions, tokens and
// email verification.
type UserService struct {
	db                                *sql.DB
	repomanager                       repomanager.RepositoryManager
	mailer                            mailer.Mailer
	logger                            logging.Logger
	jwtSecret                         []byte
	accessTokenValidityDuration       time.Duration
	refreshTokenValidityDuration      time.Duration
	verificationTokenValidityDuration time.Duration
	publicBaseURL                     string
	now                               func() time.Time
}

// NewUserService constructs the account service.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, ml mailer.Mailer, l logging.Logger, cfg *config.Config) *UserService {
	return &UserService{
		db:                                db,
		repomanager:                       m,
		mailer:                            ml,
		logger:                            l.With("module", "user_service"),
		jwtSecret:                         []byte(cfg.SecretKey),
		accessTokenValidityDuration:       cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration:      cfg.RefreshTokenValidityDuration,
		verificationTokenValidityDuration: cfg.VerificationTokenValidityDuration,
		publicBaseURL:                     cfg.PublicBaseURL,
		now:                               time.Now,
	}
}

// SignUp creates the account and its profile document, mails a verification
// link and signs the new user in.
func (s *UserService) SignUp(ctx context.Context, email, password, displayName string) (*AuthResult, error) {
	email, ok := common.NormalizeEmail(email)
	if !ok {
		return nil, fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if len(password) < common.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, common.MinPasswordLength)
	}

	now := s.now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: cryptox.HashPassword([]byte(password)),
	}

	var result *AuthResult
	var link string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}

		doc := profiles.Document{
			models.FieldUserID:         u.ID,
			models.FieldEmail:          u.Email,
			models.FieldSetupCompleted: false,
			models.FieldIsLoggedIn:     true,
			models.FieldLastLoginTime:  now.Format(time.RFC3339),
			models.FieldCreatedAt:      now.Format(time.RFC3339),
		}
		if name := strings.TrimSpace(displayName); name != "" {
			doc[models.FieldName] = name
		}
		if err := s.repomanager.Profiles(tx).Create(ctx, u.ID, doc); err != nil {
			return err
		}

		if link, err = s.issueVerification(ctx, tx, u.ID, now); err != nil {
			return err
		}

		pair, err := s.generateTokenPair(ctx, u.ID, tx)
		if err != nil {
			return err
		}
		result = &AuthResult{User: u, Tokens: pair}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}

	// The account exists at this point; a failed mail can be resent.
	if err := s.mailer.SendVerification(ctx, email, link); err != nil {
		s.logger.Warn(ctx, "verification email not sent", "user_id", user.ID, "error", err)
	}

	return result, nil
}

// SignIn checks the password and returns a fresh token pair. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (s *UserService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	email, ok := common.NormalizeEmail(email)
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("sign in: %w", err)
	}

	match, err := cryptox.VerifyPassword([]byte(password), user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if !match {
		return nil, common.ErrorUnauthorized
	}

	pair, err := s.generateTokenPair(ctx, user.ID, s.db)
	if err != nil {
		return nil, err
	}

	s.markLoggedIn(ctx, user.ID, true)

	return &AuthResult{User: user, Tokens: pair}, nil
}

// SignOut revokes refreshToken. Unknown tokens are ignored.
func (s *UserService) SignOut(ctx context.Context, refreshToken string) error {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return fmt.Errorf("sign out: %w", err)
	}

	if err := repo.Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}

	s.markLoggedIn(ctx, token.UserID, false)
	return nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	repo := s.repomanager.RefreshTokens(s.db)

	token, err := repo.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(s.now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	return dbx.WithTxResult(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*TokenPair, error) {
		repoTx := s.repomanager.RefreshTokens(tx)
		if err := repoTx.Delete(ctx, refreshToken); err != nil {
			return nil, fmt.Errorf("error deleting refresh token: %w", err)
		}
		if _, err := repoTx.DeleteExpired(ctx, token.UserID); err != nil {
			return nil, fmt.Errorf("error pruning refresh tokens: %w", err)
		}
		return s.generateTokenPair(ctx, token.UserID, tx)
	})
}

// SendVerificationEmail mails a new verification link to userID, at most
// once per common.VerificationResendCooldown. Verified users get nothing.
func (s *UserService) SendVerificationEmail(ctx context.Context, userID string) error {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("send verification: %w", err)
	}
	if user.EmailVerified {
		return nil
	}

	now := s.now().UTC()
	last, err := s.repomanager.Verifications(s.db).LastSentAt(ctx, userID)
	switch {
	case err == nil && now.Sub(last) < common.VerificationResendCooldown:
		return common.ErrResendTooSoon
	case err != nil && !errors.Is(err, common.ErrorNotFound):
		return fmt.Errorf("send verification: %w", err)
	}

	link, err := s.issueVerification(ctx, s.db, userID, now)
	if err != nil {
		return fmt.Errorf("send verification: %w", err)
	}

	return s.mailer.SendVerification(ctx, user.Email, link)
}

// VerifyEmail consumes a verification token and marks its user verified.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	vt, err := s.repomanager.Verifications(s.db).Find(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return fmt.Errorf("verify email: %w", err)
	}
	if s.now().After(vt.ExpiresAt) {
		return common.ErrVerificationTokenExpired
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).MarkEmailVerified(ctx, vt.UserID); err != nil {
			return err
		}
		return s.repomanager.Verifications(tx).DeleteByUser(ctx, vt.UserID)
	})
}

// ReloadSession returns the current state of userID's account.
func (s *UserService) ReloadSession(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("reload session: %w", err)
	}
	return user, nil
}

// --- helpers below ---

func (s *UserService) markLoggedIn(ctx context.Context, userID string, loggedIn bool) {
	fields := profiles.Document{models.FieldIsLoggedIn: loggedIn}
	if loggedIn {
		fields[models.FieldLastLoginTime] = s.now().UTC().Format(time.RFC3339)
	}
	if _, err := s.repomanager.Profiles(s.db).Merge(ctx, userID, fields); err != nil {
		s.logger.Warn(ctx, "login state not recorded", "user_id", userID, "error", err)
	}
}

func (s *UserService) issueVerification(ctx context.Context, db dbx.DBTX, userID string, now time.Time) (string, error) {
	token, err := common.MakeRandHexString(32)
	if err != nil {
		return "", common.ErrorInternal
	}

	vt := &models.VerificationToken{
		UserID:    userID,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.verificationTokenValidityDuration),
	}
	if err := s.repomanager.Verifications(db).Create(ctx, vt); err != nil {
		return "", err
	}

	return strings.TrimRight(s.publicBaseURL, "/") + "/verify?token=" + url.QueryEscape(token), nil
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	err = s.repomanager.RefreshTokens(tx).Create(ctx, &models.RefreshToken{
		UserID:  userID,
		Token:   refresh,
		Expires: s.now().Add(s.refreshTokenValidityDuration),
	})
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/couplediaries/couplediaries/internal/client/client"
	"github.com/couplediaries/couplediaries/internal/client/localdb"
	"github.com/couplediaries/couplediaries/internal/client/models"
	"github.com/couplediaries/couplediaries/internal/client/repositories/cards"
	"github.com/couplediaries/couplediaries/internal/client/repositories/metadata"
	"github.com/couplediaries/couplediaries/internal/common"
	"github.com/couplediaries/couplediaries/internal/dbx"
	"github.com/couplediaries/couplediaries/internal/logging"
)

// SessionService owns the signed-in session. Tokens are kept in the local
// metadata table so the session survives restarts, and every change is
// published to subscribers.
type SessionService struct {
	api    client.Client
	db     *localdb.DB
	logger logging.Logger

	mu      sync.Mutex
	current *models.Session

	subsMu sync.Mutex
	subs   map[int]func(*models.Session)
	nextID int
}

// NewSessionService constructs a session service and persists tokens the
// client refreshes on its own.
func NewSessionService(api client.Client, db *localdb.DB, l logging.Logger) *SessionService {
	s := &SessionService{
		api:    api,
		db:     db,
		logger: l.With("module", "session"),
		subs:   make(map[int]func(*models.Session)),
	}
	api.OnTokensRefreshed(func(access, refresh string) {
		ctx := context.Background()
		err := metadata.SetStrings(ctx, db.Metadata, map[string]string{
			metadata.KeyAccessToken:  access,
			metadata.KeyRefreshToken: refresh,
		})
		if err != nil {
			s.logger.Error(ctx, "persisting refreshed tokens", "error", err)
		}
	})
	return s
}

// Current returns a copy of the session, or nil when signed out.
func (s *SessionService) Current() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	c := *s.current
	return &c
}

// Subscribe registers fn for session changes. fn receives nil on sign-out.
func (s *SessionService) Subscribe(fn func(*models.Session)) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// set stores sess and notifies subscribers when it differs from the current one.
func (s *SessionService) set(sess *models.Session) {
	s.mu.Lock()
	changed := !sameSession(s.current, sess)
	if sess != nil {
		c := *sess
		s.current = &c
	} else {
		s.current = nil
	}
	s.mu.Unlock()

	if !changed {
		return
	}

	s.subsMu.Lock()
	subs := make([]func(*models.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range subs {
		fn(s.Current())
	}
}

func sameSession(a, b *models.Session) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Restore loads saved tokens and asks the server who they belong to. With
// no saved tokens the session stays absent. Rejected tokens are wiped.
func (s *SessionService) Restore(ctx context.Context) (*models.Session, error) {
	access, err := metadata.GetString(ctx, s.db.Metadata, metadata.KeyAccessToken)
	if err != nil {
		return nil, fmt.Errorf("read saved session: %w", err)
	}
	refresh, err := metadata.GetString(ctx, s.db.Metadata, metadata.KeyRefreshToken)
	if err != nil {
		return nil, fmt.Errorf("read saved session: %w", err)
	}
	if access == "" && refresh == "" {
		s.set(nil)
		return nil, nil
	}

	s.api.SetTokens(access, refresh)

	sess, err := s.api.ReloadSession(ctx)
	if errors.Is(err, client.ErrUnauthorized) {
		s.logger.Info(ctx, "saved session rejected, signing out locally")
		if err := s.clearLocal(ctx); err != nil {
			return nil, err
		}
		s.api.SetTokens("", "")
		s.set(nil)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}

	s.set(sess)
	return s.Current(), nil
}

func (s *SessionService) SignUp(ctx context.Context, email, password, displayName string) (*models.Session, error) {
	email, ok := common.NormalizeEmail(email)
	if !ok {
		return nil, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	res, err := s.api.SignUp(ctx, email, password, displayName)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, res)
}

func (s *SessionService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	email, ok := common.NormalizeEmail(email)
	if !ok {
		return nil, ErrInvalidEmail
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}

	res, err := s.api.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.establish(ctx, res)
}

// establish persists the new tokens and identity in one transaction.
func (s *SessionService) establish(ctx context.Context, res *models.AuthResult) (*models.Session, error) {
	err := dbx.WithTx(ctx, s.db.SQL, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.SetStrings(ctx, metadata.NewSQLiteRepository(tx), map[string]string{
			metadata.KeyAccessToken:  res.AccessToken,
			metadata.KeyRefreshToken: res.RefreshToken,
			metadata.KeyUserID:       res.Session.UserID,
			metadata.KeyEmail:        res.Session.Email,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	s.set(&res.Session)
	return s.Current(), nil
}

// SignOut ends the session on the server and wipes local data. Local data
// is wiped even when the server call fails.
func (s *SessionService) SignOut(ctx context.Context) error {
	remoteErr := s.api.SignOut(ctx)
	if remoteErr != nil {
		s.logger.Warn(ctx, "server sign-out failed", "error", remoteErr)
	}

	if err := s.clearLocal(ctx); err != nil {
		return err
	}
	s.set(nil)
	return nil
}

func (s *SessionService) clearLocal(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db.SQL, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := metadata.NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		return cards.NewSQLiteRepository(tx).Clear(ctx)
	})
	if err != nil {
		return fmt.Errorf("clear local data: %w", err)
	}
	return nil
}

// Reload refreshes the session from the server, e.g. to notice that the
// email was verified.
func (s *SessionService) Reload(ctx context.Context) (*models.Session, error) {
	if s.Current() == nil {
		return nil, ErrNotSignedIn
	}
	sess, err := s.api.ReloadSession(ctx)
	if err != nil {
		return nil, err
	}
	s.set(sess)
	return s.Current(), nil
}

func (s *SessionService) ResendVerification(ctx context.Context) error {
	if s.Current() == nil {
		return ErrNotSignedIn
	}
	return s.api.SendVerificationEmail(ctx)
}

// Ping checks that the server is reachable.
func (s *SessionService) Ping(ctx context.Context) error {
	return s.api.Ping(ctx)
}

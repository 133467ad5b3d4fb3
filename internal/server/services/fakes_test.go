package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/couplediaries/couplediaries/internal/common"
	"github.com/couplediaries/couplediaries/internal/dbx"
	"github.com/couplediaries/couplediaries/internal/server/models"
	"github.com/couplediaries/couplediaries/internal/server/repositories/cards"
	"github.com/couplediaries/couplediaries/internal/server/repositories/profiles"
	"github.com/couplediaries/couplediaries/internal/server/repositories/refreshtokens"
	"github.com/couplediaries/couplediaries/internal/server/repositories/users"
	"github.com/couplediaries/couplediaries/internal/server/repositories/verifications"
	"github.com/stretchr/testify/require"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// memStore backs every fake repository. fail maps an operation name such as
// "users.Create" to the error it should return.
type memStore struct {
	mu      sync.Mutex
	users   map[string]*models.User
	refresh map[string]*models.RefreshToken
	verifs  map[string]*models.VerificationToken
	docs    map[string]profiles.Document
	cards   []*models.Card
	fail    map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		users:   map[string]*models.User{},
		refresh: map[string]*models.RefreshToken{},
		verifs:  map[string]*models.VerificationToken{},
		docs:    map[string]profiles.Document{},
		fail:    map[string]error{},
	}
}

func (m *memStore) failed(op string) error { return m.fail[op] }

type fakeRepoManager struct{ s *memStore }

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (f *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return memUsers{f.s} }
func (f *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return memRefresh{f.s} }
func (f *fakeRepoManager) Verifications(dbx.DBTX) verifications.Repository { return memVerifs{f.s} }
func (f *fakeRepoManager) Profiles(dbx.DBTX) profiles.Repository           { return memProfiles{f.s} }
func (f *fakeRepoManager) Cards(dbx.DBTX) cards.Repository                 { return memCards{f.s} }

type memUsers struct{ *memStore }

func (r memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if err := r.failed("users.Create"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.CreatedAt = time.Now()
	cp := *u
	r.users[u.ID] = &cp
	return u, nil
}

func (r memUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := r.failed("users.GetByEmail"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) MarkEmailVerified(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.EmailVerified = true
	return nil
}

type memRefresh struct{ *memStore }

func (r memRefresh) Create(ctx context.Context, t *models.RefreshToken) error {
	if err := r.failed("refresh.Create"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.refresh[t.Token] = &cp
	return nil
}

func (r memRefresh) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if err := r.failed("refresh.Find"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.refresh[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (r memRefresh) Delete(ctx context.Context, token string) error {
	if err := r.failed("refresh.Delete"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.refresh, token)
	return nil
}

func (r memRefresh) DeleteExpired(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for k, t := range r.refresh {
		if t.UserID == userID && t.Expires.Before(time.Now()) {
			delete(r.refresh, k)
			n++
		}
	}
	return n, nil
}

type memVerifs struct{ *memStore }

func (r memVerifs) Create(ctx context.Context, t *models.VerificationToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.verifs[t.Token] = &cp
	return nil
}

func (r memVerifs) Find(ctx context.Context, token string) (*models.VerificationToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.verifs[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (r memVerifs) LastSentAt(ctx context.Context, userID string) (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var last time.Time
	for _, t := range r.verifs {
		if t.UserID == userID && t.CreatedAt.After(last) {
			last = t.CreatedAt
		}
	}
	if last.IsZero() {
		return time.Time{}, common.ErrorNotFound
	}
	return last, nil
}

func (r memVerifs) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, t := range r.verifs {
		if t.UserID == userID {
			delete(r.verifs, k)
		}
	}
	return nil
}

// tokensOf returns the verification tokens currently stored for userID.
func (m *memStore) tokensOf(userID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for k, t := range m.verifs {
		if t.UserID == userID {
			out = append(out, k)
		}
	}
	return out
}

type memProfiles struct{ *memStore }

func (r memProfiles) Create(ctx context.Context, userID string, doc profiles.Document) error {
	if err := r.failed("profiles.Create"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[userID]; ok {
		return common.ErrorAlreadyExists
	}
	cp := profiles.Document{}
	for k, v := range doc {
		cp[k] = v
	}
	r.docs[userID] = cp
	return nil
}

func (r memProfiles) Get(ctx context.Context, userID string) (profiles.Document, error) {
	if err := r.failed("profiles.Get"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := profiles.Document{}
	for k, v := range doc {
		cp[k] = v
	}
	return cp, nil
}

func (r memProfiles) Merge(ctx context.Context, userID string, fields profiles.Document) (profiles.Document, error) {
	if err := r.failed("profiles.Merge"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	doc, ok := r.docs[userID]
	if !ok {
		doc = profiles.Document{}
		r.docs[userID] = doc
	}
	for k, v := range fields {
		doc[k] = v
	}
	r.mu.Unlock()
	return r.Get(ctx, userID)
}

type memCards struct{ *memStore }

func (r memCards) Create(ctx context.Context, c *models.Card) (*models.Card, error) {
	if err := r.failed("cards.Create"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.cards {
		if existing.UserID == c.UserID && existing.ID == c.ID {
			return nil, common.ErrorAlreadyExists
		}
	}
	c.CreatedAt = time.Now()
	cp := *c
	r.cards = append(r.cards, &cp)
	return c, nil
}

func (r memCards) ListByUser(ctx context.Context, userID string) ([]*models.Card, error) {
	if err := r.failed("cards.List"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Card
	for _, c := range r.cards {
		if c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

type sentMail struct {
	to   string
	link string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) SendVerification(ctx context.Context, to, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, link: link})
	return nil
}

type fakeStorage struct {
	putErr error
	getErr error
}

func (f *fakeStorage) PresignPut(ctx context.Context, key, contentType string) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	return "http://s3/put/" + key, nil
}

func (f *fakeStorage) PresignGet(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	return "http://s3/get/" + key, nil
}

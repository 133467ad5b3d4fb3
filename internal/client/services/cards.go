package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/couplediaries/couplediaries/internal/client/client"
	"github.com/couplediaries/couplediaries/internal/client/localdb"
	"github.com/couplediaries/couplediaries/internal/client/models"
	"github.com/couplediaries/couplediaries/internal/client/store"
	"github.com/couplediaries/couplediaries/internal/common"
	"github.com/couplediaries/couplediaries/internal/dbx"
	"github.com/couplediaries/couplediaries/internal/filex"
	"github.com/couplediaries/couplediaries/internal/logging"
	"github.com/couplediaries/couplediaries/internal/timex"
)

// DefaultMood is used for cards created without one.
const DefaultMood = "Curious"

type cardAPI interface {
	CreateCard(ctx context.Context, card models.Card) (*models.Card, error)
	ListCards(ctx context.Context) ([]models.Card, error)
}

// NewCard is what the user enters on the "add card" screen. Blank fields get
// defaults.
type NewCard struct {
	Mood        string
	Location    string
	Temperature string
	// Photo is a bundled asset ("asset:beach") or a path to a picked file.
	Photo string
}

// CardService keeps the card list in the store, the local database and the
// server in step. Cards are written locally first and stay pending until
// the server accepts them.
type CardService struct {
	api       cardAPI
	db        *localdb.DB
	store     *store.Store
	photosDir string
	clock     timex.Clock
	logger    logging.Logger
}

// NewCardService constructs a card service. Picked photos are moved into
// photosDir; a nil clock means the wall clock.
func NewCardService(api cardAPI, db *localdb.DB, st *store.Store, photosDir string, clock timex.Clock, l logging.Logger) *CardService {
	if clock == nil {
		clock = timex.SystemClock
	}
	return &CardService{
		api:       api,
		db:        db,
		store:     st,
		photosDir: photosDir,
		clock:     clock,
		logger:    l.With("module", "cards"),
	}
}

// Create adds a card at the end of the list. The card is kept locally even
// when the server cannot be reached; the returned error then says so and
// the card stays pending until the next Sync. If the local write fails the
// card is dropped again and a zero Card is returned.
func (s *CardService) Create(ctx context.Context, in NewCard) (models.Card, error) {
	now := s.clock()
	c := models.Card{
		Date:        now.Format(common.CardDateLayout),
		Mood:        strings.TrimSpace(in.Mood),
		Location:    strings.TrimSpace(in.Location),
		Temperature: strings.TrimSpace(in.Temperature),
		Photo:       strings.TrimSpace(in.Photo),
		Pending:     true,
	}
	if c.Mood == "" {
		c.Mood = DefaultMood
	}

	if c.Photo != "" && !c.IsAssetPhoto() {
		stored, err := s.storePhoto(c.Photo, now.UnixNano())
		if err != nil {
			return models.Card{}, err
		}
		c.Photo = stored
	}

	c = s.store.AppendCard(c)

	if err := s.db.Cards.Insert(ctx, &c); err != nil {
		s.store.RemoveCard(c.ID)
		return models.Card{}, fmt.Errorf("save card: %w", err)
	}

	if err := s.push(ctx, c); err != nil {
		s.logger.Warn(ctx, "card kept offline", "card_id", c.ID, "error", err)
		return c, fmt.Errorf("card saved on this device only: %w", err)
	}
	c.Pending = false
	return c, nil
}

// storePhoto moves a picked file into the photos directory.
func (s *CardService) storePhoto(src string, stamp int64) (string, error) {
	dir, err := filex.EnsureDir(s.photosDir, "")
	if err != nil {
		return "", fmt.Errorf("photos dir: %w", err)
	}
	dst := filepath.Join(dir, strconv.FormatInt(stamp, 10)+"-"+filepath.Base(src))
	if err := filex.MoveFile(src, dst); err != nil {
		return "", fmt.Errorf("store photo: %w", err)
	}
	return dst, nil
}

// push sends c to the server and marks it synced. A card the server already
// has counts as pushed; that happens when an earlier reply was lost.
func (s *CardService) push(ctx context.Context, c models.Card) error {
	if _, err := s.api.CreateCard(ctx, c); err != nil && !errors.Is(err, client.ErrAlreadyExists) {
		return err
	}
	if err := s.db.Cards.MarkSynced(ctx, c.ID); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	s.store.MarkSynced(c.ID)
	return nil
}

// Load fills the store from the local database.
func (s *CardService) Load(ctx context.Context) ([]models.Card, error) {
	cards, err := s.db.Cards.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}
	s.store.ReplaceCards(cards)
	return cards, nil
}

// Sync pushes pending cards, then replaces the synced ones with the server
// list. Pending cards that still fail to push are kept.
func (s *CardService) Sync(ctx context.Context) ([]models.Card, error) {
	pending, err := s.db.Cards.GetAllPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("load pending cards: %w", err)
	}
	for _, c := range pending {
		if err := s.push(ctx, c); err != nil {
			s.logger.Warn(ctx, "pending card not pushed", "card_id", c.ID, "error", err)
		}
	}

	remote, err := s.api.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	err = dbx.WithTx(ctx, s.db.SQL, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.db.CardsTx(tx).ReplaceSynced(ctx, remote)
	})
	if err != nil {
		return nil, fmt.Errorf("save cards: %w", err)
	}

	return s.Load(ctx)
}

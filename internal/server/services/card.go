package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/couplediaries/couplediaries/internal/common"
	"github.com/couplediaries/couplediaries/internal/server/models"
	"github.com/couplediaries/couplediaries/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// CardService stores diary cards. Cards can only be appended.
type CardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

// NewCardService constructs a card service over the given database.
func NewCardService(db *sql.DB, m repomanager.RepositoryManager) *CardService {
	return &CardService{db: db, repomanager: m, now: time.Now}
}

// Create appends card to the list of userID, filling in the id, date label
// and mood when blank.
func (s *CardService) Create(ctx context.Context, userID string, card *models.Card) (*models.Card, error) {
	c := &models.Card{
		ID:          strings.TrimSpace(card.ID),
		UserID:      userID,
		Date:        strings.TrimSpace(card.Date),
		Mood:        strings.TrimSpace(card.Mood),
		Location:    strings.TrimSpace(card.Location),
		Temperature: strings.TrimSpace(card.Temperature),
		Photo:       strings.TrimSpace(card.Photo),
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Date == "" {
		c.Date = s.now().Format(common.CardDateLayout)
	}
	if c.Mood == "" {
		c.Mood = common.DefaultCardMood
	}

	created, err := s.repomanager.Cards(s.db).Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create card: %w", err)
	}
	return created, nil
}

// List returns the cards of userID in the order they were created.
func (s *CardService) List(ctx context.Context, userID string) ([]*models.Card, error) {
	cards, err := s.repomanager.Cards(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

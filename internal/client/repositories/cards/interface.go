package cards

import (
	"context"

	"github.com/couplediaries/couplediaries/internal/client/models"
)

// Repository stores cards locally. Listings are always in insertion order.
type Repository interface {
	// Insert appends a card. Inserting an id that already exists is a no-op.
	Insert(ctx context.Context, card *models.Card) error

	// GetAll returns every card, oldest first.
	GetAll(ctx context.Context) ([]models.Card, error)

	// GetAllPending returns cards not yet accepted by the server.
	GetAllPending(ctx context.Context) ([]models.Card, error)

	// MarkSynced clears the pending flag of a card.
	MarkSynced(ctx context.Context, id string) error

	// ReplaceSynced makes the local copy match the server list: synced cards
	// missing from cards are dropped, known ids are updated in place (pending
	// ones become synced) and new ids are appended. Existing rows keep their
	// position.
	ReplaceSynced(ctx context.Context, cards []models.Card) error

	// Clear removes everything, used on sign-out.
	Clear(ctx context.Context) error
}

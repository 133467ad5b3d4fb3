// Package cards stores diary cards. Cards are append-only.
package cards

import (
	"context"

	"github.com/couplediaries/couplediaries/internal/server/models"
)

// Repository persists diary cards per user.
type Repository interface {
	// Create appends card. A reused (user, id) pair yields common.ErrorAlreadyExists.
	Create(ctx context.Context, card *models.Card) (*models.Card, error)
	// ListByUser returns the cards of userID in insertion order.
	ListByUser(ctx context.Context, userID string) ([]*models.Card, error)
}

// Package verifications stores email verification tokens.
package verifications

import (
	"context"
	"time"

	"github.com/couplediaries/couplediaries/internal/server/models"
)

// Repository persists email verification tokens, one live token per user.
type Repository interface {
	Create(ctx context.Context, token *models.VerificationToken) error
	// Find returns common.ErrorNotFound for unknown tokens.
	Find(ctx context.Context, token string) (*models.VerificationToken, error)
	// LastSentAt returns when the newest token of userID was issued, or
	// common.ErrorNotFound if none was.
	LastSentAt(ctx context.Context, userID string) (time.Time, error)
	DeleteByUser(ctx context.Context, userID string) error
}

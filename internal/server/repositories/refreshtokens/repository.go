// Package refreshtokens stores the opaque refresh tokens handed out at sign-in.
package refreshtokens

import (
	"context"

	"github.com/couplediaries/couplediaries/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking refresh tokens.
type Repository interface {
	// Create stores token. UserID, Token and Expires must be set.
	Create(ctx context.Context, token *models.RefreshToken) error

	// Find looks up a refresh token by its opaque string. Absent tokens yield
	// common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a refresh token. Deleting a missing token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired drops the tokens of userID whose expiry has passed and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, userID string) (int64, error)
}

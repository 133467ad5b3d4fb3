// Package users declares the account repository of the auth provider.
package users

import (
	"context"

	"github.com/couplediaries/couplediaries/internal/server/models"
)

// Repository persists user accounts.
type Repository interface {
	// Create inserts user and fills in CreatedAt. A taken email yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	MarkEmailVerified(ctx context.Context, id string) error
}

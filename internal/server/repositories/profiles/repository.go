// Package profiles persists the per-user profile document as JSONB.
package profiles

import "context"

// Document is an untyped profile document.
type Document map[string]any

// Repository persists profile documents keyed by user id.
type Repository interface {
	// Create stores the initial document of userID.
	Create(ctx context.Context, userID string, doc Document) error
	// Get returns common.ErrorNotFound when userID has no profile.
	Get(ctx context.Context, userID string) (Document, error)
	// Merge shallow-merges fields into the stored document, creating it when
	// missing, and returns the result.
	Merge(ctx context.Context, userID string, fields Document) (Document, error)
}

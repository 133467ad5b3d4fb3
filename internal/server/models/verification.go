package models

import "time"

// VerificationToken is the secret embedded into an email verification link.
type VerificationToken struct {
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

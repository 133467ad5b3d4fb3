package models

import "time"

// RefreshToken is a stored refresh token and its expiry.
type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}

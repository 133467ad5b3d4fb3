// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account row.
type User struct {
	ID            string
	Email         string
	PasswordHash  string
	EmailVerified bool
	CreatedAt     time.Time
}

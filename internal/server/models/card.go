package models

import "time"

// Card is a diary entry. Cards are append-only and listed in insertion order.
type Card struct {
	ID          string
	UserID      string
	Date        string
	Mood        string
	Location    string
	Temperature string
	Photo       string
	CreatedAt   time.Time
}

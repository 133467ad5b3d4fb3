package models

// Profile is a snapshot of the user's profile document.
type Profile struct {
	UserID          string
	Email           string
	Name            string
	Age             int
	Gender          string
	PartnerName     string
	PartnerEmail    string
	Date            string
	ProfileImage    string
	ProfileImageURL string
	SetupCompleted  bool
	IsLoggedIn      bool
	LastLoginTime   string
	CreatedAt       string
}

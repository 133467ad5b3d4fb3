// Package models holds the client-side view of sessions, profiles and cards.
package models

// Session is the signed-in user as last reported by the server.
type Session struct {
	UserID        string
	Email         string
	EmailVerified bool
}

// AuthResult is what SignUp and SignIn hand back to the session manager.
type AuthResult struct {
	Session      Session
	AccessToken  string
	RefreshToken string
}
